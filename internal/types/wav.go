package types

import "fmt"

// WavMetadata holds RIFF/WAVE container details.
type WavMetadata struct {
	// RIFF header fields.
	ChunkID   string
	ChunkSize uint32
	Format    string

	// Fmt is the decoded "fmt " chunk, nil if the chunk was absent.
	Fmt *FmtChunk

	// DataSize is the declared size of the "data" chunk payload. The
	// payload itself is never retained.
	DataSize uint32

	// Bext is the Broadcast Wave extension chunk, if present.
	Bext *BextChunk

	// Smpl is the sampler chunk header, if present. Its loop records
	// are promoted to AudioFileInfo.LoopPoints.
	Smpl *SmplChunk

	// Fact is the "fact" chunk, if present.
	Fact *FactChunk

	// RawChunks lists every chunk encountered, in file order. Data is
	// captured only for chunks not otherwise understood.
	RawChunks []RawChunkInfo
}

// FmtChunk is the decoded "fmt " chunk.
type FmtChunk struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// FormatName returns the display name for the audio format code.
func (f FmtChunk) FormatName() string {
	return WavFormatName(f.AudioFormat)
}

// WavFormatName maps a WAVE format code to its display name.
func WavFormatName(code uint16) string {
	switch code {
	case 0x0001:
		return "PCM"
	case 0x0003:
		return "IEEE Float"
	case 0x0006:
		return "A-law"
	case 0x0007:
		return "µ-law"
	case 0x0011:
		return "IMA ADPCM"
	case 0x0016:
		return "G.723 ADPCM"
	case 0x0031:
		return "GSM 6.10"
	case 0x0040:
		return "G.721 ADPCM"
	case 0x0050:
		return "MPEG"
	case 0xFFFE:
		return "Extensible"
	default:
		return fmt.Sprintf("Unknown (0x%04X)", code)
	}
}

// BextChunk is the Broadcast Wave extension chunk. Text fields are
// trimmed of trailing NULs.
type BextChunk struct {
	Description         string
	Originator          string
	OriginatorReference string
	OriginationDate     string
	OriginationTime     string
	TimeReferenceLow    uint32
	TimeReferenceHigh   uint32
}

// SmplChunk is the sampler chunk header. NumSampleLoops records follow
// it in the stream and are decoded into LoopPoint values.
type SmplChunk struct {
	Manufacturer      uint32
	Product           uint32
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	SamplerDataLength uint32
}

// FactChunk carries the "fact" chunk sample length.
type FactChunk struct {
	SampleLength uint32
}

// RawChunkInfo records one RIFF chunk as encountered during the walk.
type RawChunkInfo struct {
	// ID is the 4-character chunk identifier.
	ID string

	// Size is the declared chunk payload size.
	Size uint32

	// Offset is the file position of the chunk payload.
	Offset int64

	// Data holds the first min(Size, 256) payload bytes for chunks not
	// otherwise understood, nil for recognized chunks.
	Data []byte
}
