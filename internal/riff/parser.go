// Package riff implements RIFF/WAVE container parsing.
package riff

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/simonhull/loopmeta/internal/binary"
	"github.com/simonhull/loopmeta/internal/registry"
	"github.com/simonhull/loopmeta/internal/types"
)

// hexDumpLimit caps the bytes captured for chunks we don't interpret.
const hexDumpLimit = 256

// parser implements the registry.ContainerParser interface for WAV files.
type parser struct{}

// Parse walks the RIFF chunk list and populates info.
//
// Each chunk is dispatched by id; regardless of the dispatch outcome the
// cursor is repositioned to the chunk start plus the declared size, so a
// sub-parser that misjudges its own field layout cannot derail the walk.
// Odd-sized chunks are followed by one pad byte (RIFF word alignment).
func (p *parser) Parse(r io.ReaderAt, size int64, info *types.AudioFileInfo, opts registry.Options) error {
	sr := binary.NewSafeReader(r, size, info.Path)

	hdr := binary.NewReader(sr, 0)
	chunkID, err := hdr.ReadString(4, "RIFF chunk id")
	if err != nil {
		return fmt.Errorf("read RIFF header: %w", err)
	}
	if chunkID != "RIFF" {
		return &types.CorruptedFileError{
			Path:   info.Path,
			Offset: 0,
			Reason: "invalid RIFF magic bytes",
		}
	}
	chunkSize, err := binary.ReadValueLE[uint32](hdr, "RIFF chunk size")
	if err != nil {
		return fmt.Errorf("read RIFF header: %w", err)
	}
	format, err := hdr.ReadString(4, "RIFF format")
	if err != nil {
		return fmt.Errorf("read RIFF header: %w", err)
	}

	wav := &types.WavMetadata{
		ChunkID:   chunkID,
		ChunkSize: chunkSize,
		Format:    format,
	}
	info.Wav = wav

	// Chunk walk. Terminates when fewer than 8 bytes remain.
	offset := int64(12)
	for offset+8 <= size {
		cur := binary.NewReader(sr, offset)
		id, err := cur.ReadString(4, "chunk id")
		if err != nil {
			info.Warn("container", fmt.Sprintf("failed to read chunk id: %v", err), offset)
			break
		}
		declared, err := binary.ReadValueLE[uint32](cur, "chunk size")
		if err != nil {
			info.Warn("container", fmt.Sprintf("failed to read chunk size: %v", err), offset)
			break
		}

		chunkStart := cur.Offset()
		raw := types.RawChunkInfo{ID: id, Size: declared, Offset: chunkStart}

		if err := p.parseChunk(sr, chunkStart, id, declared, info, wav, &raw); err != nil {
			info.Warn("container", fmt.Sprintf("failed to parse %q chunk: %v", id, err), chunkStart)
		}
		wav.RawChunks = append(wav.RawChunks, raw)

		// Reposition unconditionally; clamp rather than seek past EOF.
		next := chunkStart + int64(declared)
		if next > size {
			info.Warn("container", fmt.Sprintf("chunk %q declares %d bytes but only %d remain", id, declared, size-chunkStart), chunkStart)
			break
		}
		if declared%2 == 1 && next < size {
			next++ // pad byte
		}
		offset = next
	}

	deriveDuration(info, wav)
	return nil
}

// parseChunk dispatches one chunk by id. Unrecognized chunks get a
// bounded diagnostic capture and no further interpretation.
func (p *parser) parseChunk(sr *binary.SafeReader, start int64, id string, size uint32, info *types.AudioFileInfo, wav *types.WavMetadata, raw *types.RawChunkInfo) error {
	switch id {
	case "fmt ":
		return parseFmt(sr, start, size, info, wav)
	case "data":
		wav.DataSize = size
		return nil
	case "cue ":
		return parseCue(sr, start, size, info)
	case "smpl":
		return parseSmpl(sr, start, size, info, wav)
	case "LIST":
		return parseList(sr, start, size, info)
	case "bext":
		return parseBext(sr, start, size, wav)
	case "fact":
		return parseFact(sr, start, wav)
	default:
		n := int64(size)
		if n > hexDumpLimit {
			n = hexDumpLimit
		}
		if end := sr.Size() - start; n > end {
			n = end
		}
		if n > 0 {
			buf := make([]byte, n)
			if err := sr.ReadAt(buf, start, "chunk data"); err != nil {
				return err
			}
			raw.Data = buf
		}
		return nil
	}
}

// parseFmt decodes the "fmt " chunk and populates the unified
// sample-rate/channels/bits fields.
func parseFmt(sr *binary.SafeReader, start int64, size uint32, info *types.AudioFileInfo, wav *types.WavMetadata) error {
	if size < 16 {
		return fmt.Errorf("fmt chunk too short: %d bytes", size)
	}

	cur := binary.NewReader(sr, start)
	f := &types.FmtChunk{}
	var err error
	if f.AudioFormat, err = binary.ReadValueLE[uint16](cur, "audio format"); err != nil {
		return err
	}
	if f.Channels, err = binary.ReadValueLE[uint16](cur, "channel count"); err != nil {
		return err
	}
	if f.SampleRate, err = binary.ReadValueLE[uint32](cur, "sample rate"); err != nil {
		return err
	}
	if f.ByteRate, err = binary.ReadValueLE[uint32](cur, "byte rate"); err != nil {
		return err
	}
	if f.BlockAlign, err = binary.ReadValueLE[uint16](cur, "block align"); err != nil {
		return err
	}
	if f.BitsPerSample, err = binary.ReadValueLE[uint16](cur, "bits per sample"); err != nil {
		return err
	}

	wav.Fmt = f
	info.SampleRate = int(f.SampleRate)
	info.Channels = int(f.Channels)
	info.BitsPerSample = int(f.BitsPerSample)
	return nil
}

// parseCue decodes the "cue " chunk: a count followed by 24-byte records.
func parseCue(sr *binary.SafeReader, start int64, size uint32, info *types.AudioFileInfo) error {
	if size < 4 {
		return fmt.Errorf("cue chunk too short: %d bytes", size)
	}

	cur := binary.NewReader(sr, start)
	count, err := binary.ReadValueLE[uint32](cur, "cue point count")
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		var cp types.CuePoint
		if cp.ID, err = binary.ReadValueLE[uint32](cur, "cue point id"); err != nil {
			return err
		}
		if cp.Position, err = binary.ReadValueLE[uint32](cur, "cue point position"); err != nil {
			return err
		}
		if cp.FccChunk, err = cur.ReadString(4, "cue point chunk id"); err != nil {
			return err
		}
		if cp.ChunkStart, err = binary.ReadValueLE[uint32](cur, "cue point chunk start"); err != nil {
			return err
		}
		if cp.BlockStart, err = binary.ReadValueLE[uint32](cur, "cue point block start"); err != nil {
			return err
		}
		if cp.SampleOffset, err = binary.ReadValueLE[uint32](cur, "cue point sample offset"); err != nil {
			return err
		}
		info.CuePoints = append(info.CuePoints, cp)
	}
	return nil
}

// parseSmpl decodes the sampler chunk header and its trailing loop
// records, which become the file's native loop points.
func parseSmpl(sr *binary.SafeReader, start int64, size uint32, info *types.AudioFileInfo, wav *types.WavMetadata) error {
	if size < 36 {
		return fmt.Errorf("smpl chunk too short: %d bytes", size)
	}

	cur := binary.NewReader(sr, start)
	s := &types.SmplChunk{}
	fields := []*uint32{
		&s.Manufacturer, &s.Product, &s.SamplePeriod,
		&s.MIDIUnityNote, &s.MIDIPitchFraction,
		&s.SMPTEFormat, &s.SMPTEOffset,
		&s.NumSampleLoops, &s.SamplerDataLength,
	}
	for _, field := range fields {
		v, err := binary.ReadValueLE[uint32](cur, "smpl header field")
		if err != nil {
			return err
		}
		*field = v
	}
	wav.Smpl = s

	for i := uint32(0); i < s.NumSampleLoops; i++ {
		var lp types.LoopPoint
		var err error
		if lp.CuePointID, err = binary.ReadValueLE[uint32](cur, "loop cue point id"); err != nil {
			return err
		}
		if lp.Type, err = binary.ReadValueLE[uint32](cur, "loop type"); err != nil {
			return err
		}
		start32, err := binary.ReadValueLE[uint32](cur, "loop start")
		if err != nil {
			return err
		}
		end32, err := binary.ReadValueLE[uint32](cur, "loop end")
		if err != nil {
			return err
		}
		lp.Start = uint64(start32)
		lp.End = uint64(end32)
		if lp.Fraction, err = binary.ReadValueLE[uint32](cur, "loop fraction"); err != nil {
			return err
		}
		playCount, err := binary.ReadValueLE[uint32](cur, "loop play count")
		if err != nil {
			return err
		}
		lp.PlayCount = int32(playCount)
		info.LoopPoints = append(info.LoopPoints, lp)
	}
	return nil
}

// parseList decodes a LIST chunk. Only the INFO list type is processed;
// each inner entry is a 4-character tag id, a size and a NUL-trimmed
// value, independently pad-aligned.
func parseList(sr *binary.SafeReader, start int64, size uint32, info *types.AudioFileInfo) error {
	if size < 4 {
		return fmt.Errorf("LIST chunk too short: %d bytes", size)
	}

	cur := binary.NewReader(sr, start)
	listType, err := cur.ReadString(4, "LIST type")
	if err != nil {
		return err
	}
	if listType != "INFO" {
		return nil
	}

	end := start + int64(size)
	for cur.Offset()+8 <= end {
		tagID, err := cur.ReadString(4, "INFO tag id")
		if err != nil {
			return err
		}
		tagSize, err := binary.ReadValueLE[uint32](cur, "INFO tag size")
		if err != nil {
			return err
		}
		if cur.Offset()+int64(tagSize) > end {
			return fmt.Errorf("INFO tag %q overruns LIST chunk", tagID)
		}
		value, err := cur.ReadString(int(tagSize), "INFO tag value")
		if err != nil {
			return err
		}
		info.AddTag(tagID, strings.TrimRight(value, "\x00"))

		if tagSize%2 == 1 {
			cur.Skip(1)
		}
	}
	return nil
}

// parseBext decodes the Broadcast Wave extension chunk's fixed-width
// text fields and the two time-reference words.
func parseBext(sr *binary.SafeReader, start int64, size uint32, wav *types.WavMetadata) error {
	if size < 346 {
		return fmt.Errorf("bext chunk too short: %d bytes", size)
	}

	cur := binary.NewReader(sr, start)
	b := &types.BextChunk{}

	read := func(n int, what string) (string, error) {
		s, err := cur.ReadString(n, what)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(s, "\x00"), nil
	}

	var err error
	if b.Description, err = read(256, "bext description"); err != nil {
		return err
	}
	if b.Originator, err = read(32, "bext originator"); err != nil {
		return err
	}
	if b.OriginatorReference, err = read(32, "bext originator reference"); err != nil {
		return err
	}
	if b.OriginationDate, err = read(10, "bext origination date"); err != nil {
		return err
	}
	if b.OriginationTime, err = read(8, "bext origination time"); err != nil {
		return err
	}
	if b.TimeReferenceLow, err = binary.ReadValueLE[uint32](cur, "bext time reference low"); err != nil {
		return err
	}
	if b.TimeReferenceHigh, err = binary.ReadValueLE[uint32](cur, "bext time reference high"); err != nil {
		return err
	}

	wav.Bext = b
	return nil
}

// parseFact decodes the single sample-length value of a "fact" chunk.
func parseFact(sr *binary.SafeReader, start int64, wav *types.WavMetadata) error {
	v, err := binary.ReadLE[uint32](sr, start, "fact sample length")
	if err != nil {
		return err
	}
	wav.Fact = &types.FactChunk{SampleLength: v}
	return nil
}

// deriveDuration computes the stream duration from the data chunk size,
// once the walk is complete and all three parameters are known.
func deriveDuration(info *types.AudioFileInfo, wav *types.WavMetadata) {
	if info.SampleRate <= 0 || info.Channels <= 0 || info.BitsPerSample <= 0 {
		return
	}
	bytesPerFrame := (info.BitsPerSample / 8) * info.Channels
	if bytesPerFrame <= 0 || wav.DataSize == 0 {
		return
	}
	seconds := float64(wav.DataSize) / float64(bytesPerFrame) / float64(info.SampleRate)
	info.Duration = time.Duration(seconds * float64(time.Second))
}

// init registers the WAV parser.
func init() {
	registry.Register(types.FormatWAV, &parser{})
}
