// Package ogg implements Ogg container parsing for Vorbis and Opus streams.
package ogg

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/simonhull/loopmeta/internal/binary"
	"github.com/simonhull/loopmeta/internal/loops"
	"github.com/simonhull/loopmeta/internal/registry"
	"github.com/simonhull/loopmeta/internal/types"
	"github.com/simonhull/loopmeta/internal/vorbis"
)

// pageSync is the capture pattern starting every Ogg page.
var pageSync = []byte("OggS")

// granuleUnset is the reserved "no position" sentinel.
const granuleUnset = ^uint64(0)

// opusRate is the Opus granule clock; Opus granule positions always
// count 48kHz samples regardless of the input rate.
const opusRate = 48000

// scanWindow is the read size used by the sync scanner.
const scanWindow = 64 * 1024

// parser implements the registry.ContainerParser interface for Ogg
// streams, both Vorbis and Opus.
type parser struct{}

// scanState carries per-stream facts across the page scan.
type scanState struct {
	identSeen  bool
	opus       bool
	preSkip    uint16
	maxGranule uint64
	pages      int
}

// Parse scans the whole stream for Ogg pages and populates info.
//
// The scan is resynchronizing: it searches byte-by-byte for the "OggS"
// capture pattern, so garbage between pages (or before the first one)
// only costs the bytes it occupies. Overlapping candidate positions are
// not skipped. Every located page gets a diagnostic entry; payloads are
// interpreted only when fully present before end of stream.
func (p *parser) Parse(r io.ReaderAt, size int64, info *types.AudioFileInfo, opts registry.Options) error {
	sr := binary.NewSafeReader(r, size, info.Path)

	ogg := &types.OggMetadata{}
	info.Ogg = ogg
	resolver := loops.NewResolver(info.LoopPoints)
	state := &scanState{}

	pos := int64(0)
	for {
		syncPos, found, err := findSync(sr, pos)
		if err != nil || !found {
			break
		}

		next, perr := p.parsePage(sr, syncPos, info, ogg, resolver, state)
		if perr != nil {
			if state.pages == 0 {
				// The first page header is a mandatory structure.
				return fmt.Errorf("read first Ogg page: %w", perr)
			}
			// A sync pattern with no complete header behind it; keep
			// scanning from the next byte.
			pos = syncPos + 1
			continue
		}
		state.pages++
		pos = next
	}

	if state.pages == 0 {
		return &types.CorruptedFileError{
			Path:   info.Path,
			Offset: 0,
			Reason: "no Ogg pages found",
		}
	}

	info.LoopPoints = resolver.Points()
	deriveDuration(info, state)
	return nil
}

// findSync locates the next "OggS" pattern at or after pos. Windows
// overlap by len(pageSync)-1 bytes so a pattern straddling a window
// boundary is still found.
func findSync(sr *binary.SafeReader, pos int64) (int64, bool, error) {
	size := sr.Size()
	for pos+int64(len(pageSync)) <= size {
		n := int64(scanWindow)
		if pos+n > size {
			n = size - pos
		}
		buf := make([]byte, n)
		if err := sr.ReadAt(buf, pos, "sync scan window"); err != nil {
			return 0, false, err
		}
		if i := bytes.Index(buf, pageSync); i >= 0 {
			return pos + int64(i), true, nil
		}
		pos += n - int64(len(pageSync)-1)
	}
	return 0, false, nil
}

// parsePage parses the fixed page header at syncPos, records the page,
// and dispatches the payload. Returns the offset just past the payload.
func (p *parser) parsePage(sr *binary.SafeReader, syncPos int64, info *types.AudioFileInfo, ogg *types.OggMetadata, resolver *loops.Resolver, state *scanState) (int64, error) {
	cur := binary.NewReader(sr, syncPos+4)

	if _, err := binary.ReadValueLE[uint8](cur, "page version"); err != nil {
		return 0, err
	}
	headerType, err := binary.ReadValueLE[uint8](cur, "page header type")
	if err != nil {
		return 0, err
	}
	granule, err := binary.ReadValueLE[uint64](cur, "granule position")
	if err != nil {
		return 0, err
	}
	serial, err := binary.ReadValueLE[uint32](cur, "stream serial number")
	if err != nil {
		return 0, err
	}
	sequence, err := binary.ReadValueLE[uint32](cur, "page sequence number")
	if err != nil {
		return 0, err
	}
	if _, err := binary.ReadValueLE[uint32](cur, "page checksum"); err != nil {
		return 0, err
	}
	segCount, err := binary.ReadValueLE[uint8](cur, "segment count")
	if err != nil {
		return 0, err
	}

	segments, err := cur.ReadBytes(int(segCount), "segment table")
	if err != nil {
		return 0, err
	}
	payloadSize := 0
	for _, seg := range segments {
		payloadSize += int(seg)
	}

	if len(ogg.Pages) < types.MaxDiagnosticPages {
		ogg.Pages = append(ogg.Pages, types.OggPageInfo{
			SequenceNumber: sequence,
			HeaderType:     headerType,
			SerialNumber:   serial,
			PayloadSize:    payloadSize,
		})
	}

	if granule != granuleUnset && granule > state.maxGranule {
		state.maxGranule = granule
	}

	payloadStart := cur.Offset()
	payloadEnd := payloadStart + int64(payloadSize)

	if payloadSize > 0 && payloadEnd <= sr.Size() {
		payload, err := cur.ReadBytes(payloadSize, "page payload")
		if err == nil {
			p.dispatchPayload(payload, info, ogg, resolver, state)
		}
	}

	return payloadEnd, nil
}

// dispatchPayload identifies a page payload by its leading signature.
// Unrecognized payloads (audio pages, setup headers) are ignored.
func (p *parser) dispatchPayload(payload []byte, info *types.AudioFileInfo, ogg *types.OggMetadata, resolver *loops.Resolver, state *scanState) {
	switch {
	case len(payload) >= 16 && payload[0] == 0x01 && string(payload[1:7]) == "vorbis":
		if !state.identSeen {
			state.identSeen = true
			parseVorbisIdentification(payload, info)
		}

	case len(payload) >= 19 && string(payload[0:8]) == "OpusHead":
		if !state.identSeen {
			state.identSeen = true
			state.opus = true
			state.preSkip = parseOpusHead(payload, info)
		}

	case len(payload) >= 7 && payload[0] == 0x03 && string(payload[1:7]) == "vorbis":
		if vc := vorbis.ParseBody(payload[7:], info, resolver); vc != nil {
			ogg.VorbisComment = vc
		}

	case len(payload) >= 8 && string(payload[0:8]) == "OpusTags":
		if vc := vorbis.ParseBody(payload[8:], info, resolver); vc != nil {
			ogg.VorbisComment = vc
		}
	}
}

// parseVorbisIdentification decodes the Vorbis identification header:
// a version, a channel count and the sample rate, all little-endian.
func parseVorbisIdentification(payload []byte, info *types.AudioFileInfo) {
	// payload[7:11] is the Vorbis version; nothing downstream needs it.
	channels := payload[11]
	sampleRate := uint32(payload[12]) | uint32(payload[13])<<8 | uint32(payload[14])<<16 | uint32(payload[15])<<24

	info.Format = types.FormatOgg
	info.Channels = int(channels)
	info.SampleRate = int(sampleRate)
}

// parseOpusHead decodes the OpusHead identification header and returns
// the pre-skip sample count.
//
// The input sample rate is informational; Opus audio is always clocked
// at 48kHz for granule-position math. Bits-per-sample defaults to 16
// when nothing else has set it.
func parseOpusHead(payload []byte, info *types.AudioFileInfo) uint16 {
	channels := payload[9]
	preSkip := uint16(payload[10]) | uint16(payload[11])<<8
	inputRate := uint32(payload[12]) | uint32(payload[13])<<8 | uint32(payload[14])<<16 | uint32(payload[15])<<24
	// Output gain (int16) and channel mapping family follow; neither is
	// needed for the metadata model.

	info.Format = types.FormatOpus
	info.Channels = int(channels)
	if inputRate > 0 {
		info.SampleRate = int(inputRate)
	} else {
		info.SampleRate = opusRate
	}
	if info.BitsPerSample == 0 {
		info.BitsPerSample = 16
	}

	return preSkip
}

// deriveDuration computes the stream duration from the maximum granule
// position observed. For Opus the granule is reduced by the pre-skip
// count (floored at zero) and divided by the fixed 48kHz clock; for
// Vorbis it is divided by the discovered sample rate, defaulting to
// 48kHz when the identification header was never seen.
func deriveDuration(info *types.AudioFileInfo, state *scanState) {
	if state.maxGranule == 0 {
		return
	}

	granule := state.maxGranule
	var rate float64

	if state.opus {
		if skip := uint64(state.preSkip); granule > skip {
			granule -= skip
		} else {
			granule = 0
		}
		rate = opusRate
	} else {
		rate = float64(info.SampleRate)
		if rate <= 0 {
			rate = opusRate
		}
	}

	seconds := float64(granule) / rate
	info.Duration = time.Duration(seconds * float64(time.Second))
}

// init registers the Ogg parser for both Vorbis and Opus formats.
func init() {
	p := &parser{}
	registry.Register(types.FormatOgg, p)
	registry.Register(types.FormatOpus, p)
}
