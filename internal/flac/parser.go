// Package flac implements FLAC metadata-block parsing.
package flac

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/icza/bitio"

	"github.com/simonhull/loopmeta/internal/binary"
	"github.com/simonhull/loopmeta/internal/loops"
	"github.com/simonhull/loopmeta/internal/registry"
	"github.com/simonhull/loopmeta/internal/types"
	"github.com/simonhull/loopmeta/internal/vorbis"
)

// hexDumpLimit caps the bytes captured for unrecognized block types.
const hexDumpLimit = 256

// streamInfoSize is the fixed size of a STREAMINFO block.
const streamInfoSize = 34

// parser implements the registry.ContainerParser interface for FLAC files.
type parser struct{}

// Parse walks the FLAC metadata blocks and populates info.
//
// Each block header is one byte (top bit: is-last flag, low 7 bits:
// type) plus a 3-byte big-endian size. After dispatching, the cursor is
// unconditionally repositioned to the block start plus the declared
// size. The walk stops after the block whose is-last flag is set, or at
// end of stream.
func (p *parser) Parse(r io.ReaderAt, size int64, info *types.AudioFileInfo, opts registry.Options) error {
	sr := binary.NewSafeReader(r, size, info.Path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return fmt.Errorf("read FLAC magic: %w", err)
	}
	if string(magic) != "fLaC" {
		return &types.CorruptedFileError{
			Path:   info.Path,
			Offset: 0,
			Reason: "invalid FLAC magic bytes",
		}
	}

	flac := &types.FlacMetadata{}
	info.Flac = flac
	resolver := loops.NewResolver(info.LoopPoints)

	offset := int64(4)
	for offset+4 <= size {
		header, err := binary.ReadBE[uint32](sr, offset, "metadata block header")
		if err != nil {
			info.Warn("container", fmt.Sprintf("failed to read metadata block header: %v", err), offset)
			break
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		blockStart := offset + 4

		if err := p.parseBlock(sr, blockStart, blockType, blockLength, info, flac, resolver, opts); err != nil {
			// STREAMINFO is the one mandatory structure.
			if blockType == types.FlacBlockStreamInfo {
				return err
			}
			info.Warn("container", fmt.Sprintf("failed to parse %s block: %v", types.FlacBlockTypeName(blockType), err), blockStart)
		}

		// Reposition unconditionally; clamp rather than seek past EOF.
		next := blockStart + blockLength
		if next > size {
			info.Warn("container", fmt.Sprintf("%s block declares %d bytes but only %d remain",
				types.FlacBlockTypeName(blockType), blockLength, size-blockStart), blockStart)
			break
		}
		offset = next

		if isLast {
			break
		}
	}

	info.LoopPoints = resolver.Points()

	if si := flac.StreamInfo; si != nil && si.SampleRate > 0 {
		seconds := float64(si.TotalSamples) / float64(si.SampleRate)
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	return nil
}

// parseBlock dispatches one metadata block by type. Unrecognized types
// get a bounded diagnostic capture.
func (p *parser) parseBlock(sr *binary.SafeReader, start int64, blockType uint8, length int64, info *types.AudioFileInfo, flac *types.FlacMetadata, resolver *loops.Resolver, opts registry.Options) error {
	switch blockType {
	case types.FlacBlockStreamInfo:
		return parseStreamInfo(sr, start, length, info, flac)
	case types.FlacBlockApplication:
		return parseApplication(sr, start, length, flac)
	case types.FlacBlockVorbisComment:
		return parseVorbisComment(sr, start, length, info, flac, resolver)
	case types.FlacBlockCueSheet:
		return parseCueSheet(sr, start, length, flac)
	case types.FlacBlockPicture:
		return parsePicture(sr, start, length, flac, opts)
	case types.FlacBlockPadding, types.FlacBlockSeekTable:
		// Recognized but carry nothing we model beyond the raw entry.
		fallthrough
	default:
		n := length
		if n > hexDumpLimit {
			n = hexDumpLimit
		}
		if end := sr.Size() - start; n > end {
			n = end
		}
		block := types.RawBlock{Type: blockType, Size: uint32(length)}
		if n > 0 {
			buf := make([]byte, n)
			if err := sr.ReadAt(buf, start, "metadata block data"); err != nil {
				return err
			}
			block.Data = buf
		}
		flac.RawBlocks = append(flac.RawBlocks, block)
		return nil
	}
}

// parseStreamInfo decodes the fixed 34-byte STREAMINFO block and
// populates the unified sample-rate/channels/bits fields.
//
// The last 8 bytes before the MD5 signature are bit-packed, from the
// most significant bit down: 20 bits sample rate, 3 bits channels-1,
// 5 bits bits-per-sample-1, 36 bits total sample count.
func parseStreamInfo(sr *binary.SafeReader, start, length int64, info *types.AudioFileInfo, flac *types.FlacMetadata) error {
	if length != streamInfoSize {
		return &types.CorruptedFileError{
			Path:   sr.Path(),
			Offset: start,
			Reason: fmt.Sprintf("invalid STREAMINFO size: %d (expected %d)", length, streamInfoSize),
		}
	}

	data := make([]byte, streamInfoSize)
	if err := sr.ReadAt(data, start, "STREAMINFO block"); err != nil {
		return err
	}

	si := &types.StreamInfo{
		MinBlockSize: uint16(data[0])<<8 | uint16(data[1]),
		MaxBlockSize: uint16(data[2])<<8 | uint16(data[3]),
		MinFrameSize: uint32(data[4])<<16 | uint32(data[5])<<8 | uint32(data[6]),
		MaxFrameSize: uint32(data[7])<<16 | uint32(data[8])<<8 | uint32(data[9]),
	}

	br := bitio.NewReader(bytes.NewReader(data[10:18]))
	sampleRate, err := br.ReadBits(20)
	if err != nil {
		return fmt.Errorf("read sample rate bits: %w", err)
	}
	channels, err := br.ReadBits(3)
	if err != nil {
		return fmt.Errorf("read channel bits: %w", err)
	}
	bitsPerSample, err := br.ReadBits(5)
	if err != nil {
		return fmt.Errorf("read bits-per-sample bits: %w", err)
	}
	totalSamples, err := br.ReadBits(36)
	if err != nil {
		return fmt.Errorf("read total-samples bits: %w", err)
	}

	si.SampleRate = uint32(sampleRate)
	si.Channels = int(channels) + 1
	si.BitsPerSample = int(bitsPerSample) + 1
	si.TotalSamples = totalSamples

	flac.StreamInfo = si
	info.SampleRate = int(si.SampleRate)
	info.Channels = si.Channels
	info.BitsPerSample = si.BitsPerSample
	return nil
}

// parseApplication decodes an APPLICATION block: a 4-byte id followed by
// the raw payload. Blocks whose id is "riff" (any case) carry foreign
// RIFF metadata preserved by the reference encoder.
func parseApplication(sr *binary.SafeReader, start, length int64, flac *types.FlacMetadata) error {
	if length < 4 {
		return fmt.Errorf("APPLICATION block too short: %d bytes", length)
	}

	cur := binary.NewReader(sr, start)
	id, err := cur.ReadString(4, "application id")
	if err != nil {
		return err
	}

	var data []byte
	if length > 4 {
		data, err = cur.ReadBytes(int(length-4), "application data")
		if err != nil {
			return err
		}
	}

	flac.Applications = append(flac.Applications, types.ApplicationBlock{
		ID:              id,
		Data:            data,
		ForeignMetadata: strings.EqualFold(id, "riff"),
	})
	return nil
}

// parseVorbisComment decodes a VORBIS_COMMENT block body.
func parseVorbisComment(sr *binary.SafeReader, start, length int64, info *types.AudioFileInfo, flac *types.FlacMetadata, resolver *loops.Resolver) error {
	body := make([]byte, length)
	if err := sr.ReadAt(body, start, "VORBIS_COMMENT block"); err != nil {
		return err
	}

	if vc := vorbis.ParseBody(body, info, resolver); vc != nil {
		flac.VorbisComment = vc
	}
	return nil
}

// cueSheetTrackCountOffset is the position of the track-count byte
// relative to the CUESHEET block start: 128 bytes catalog number,
// 8 bytes lead-in, 1 byte flags, 259 bytes reserved.
const cueSheetTrackCountOffset = 396

// parseCueSheet decodes the CUESHEET catalog number and track count.
// Lead-in and per-track records are diagnostic-only and not parsed.
func parseCueSheet(sr *binary.SafeReader, start, length int64, flac *types.FlacMetadata) error {
	if length < cueSheetTrackCountOffset+1 {
		return fmt.Errorf("CUESHEET block too short: %d bytes", length)
	}

	catalog := make([]byte, 128)
	if err := sr.ReadAt(catalog, start, "media catalog number"); err != nil {
		return err
	}

	trackCount, err := binary.ReadBE[uint8](sr, start+cueSheetTrackCountOffset, "track count")
	if err != nil {
		return err
	}

	flac.CueSheet = &types.CueSheet{
		CatalogNumber: strings.TrimRight(string(catalog), "\x00"),
		TrackCount:    trackCount,
	}
	return nil
}

// parsePicture decodes a PICTURE block. The picture bytes are retained
// only when the declared length is within the configured cap; otherwise
// the cursor is advanced past them without buffering.
func parsePicture(sr *binary.SafeReader, start, length int64, flac *types.FlacMetadata, opts registry.Options) error {
	cur := binary.NewReader(sr, start)

	picType, err := binary.ReadValueBE[uint32](cur, "picture type")
	if err != nil {
		return err
	}

	mimeLen, err := binary.ReadValueBE[uint32](cur, "MIME type length")
	if err != nil {
		return err
	}
	mime, err := cur.ReadString(int(mimeLen), "MIME type")
	if err != nil {
		return err
	}

	descLen, err := binary.ReadValueBE[uint32](cur, "description length")
	if err != nil {
		return err
	}
	desc := ""
	if descLen > 0 {
		desc, err = cur.ReadString(int(descLen), "description")
		if err != nil {
			return err
		}
	}

	width, err := binary.ReadValueBE[uint32](cur, "width")
	if err != nil {
		return err
	}
	height, err := binary.ReadValueBE[uint32](cur, "height")
	if err != nil {
		return err
	}
	colorDepth, err := binary.ReadValueBE[uint32](cur, "color depth")
	if err != nil {
		return err
	}
	// Indexed-color count: read and discarded.
	if _, err := binary.ReadValueBE[uint32](cur, "indexed color count"); err != nil {
		return err
	}
	dataLen, err := binary.ReadValueBE[uint32](cur, "picture data length")
	if err != nil {
		return err
	}

	pic := types.Picture{
		Type:        picType,
		MIMEType:    mime,
		Description: desc,
		Width:       width,
		Height:      height,
		ColorDepth:  colorDepth,
		DataLength:  dataLen,
	}

	if int(dataLen) <= opts.PictureLimit {
		pic.Data, err = cur.ReadBytes(int(dataLen), "picture data")
		if err != nil {
			return err
		}
	}

	flac.Pictures = append(flac.Pictures, pic)
	return nil
}

// init registers the FLAC parser.
func init() {
	registry.Register(types.FormatFLAC, &parser{})
}
