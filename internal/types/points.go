package types

import "fmt"

// CuePoint is a sample-accurate marker from a WAV "cue " chunk.
//
// The JSON field names form the round-trip contract used by the export
// path and by compatible tools; do not rename them.
type CuePoint struct {
	ID           uint32 `json:"id"`
	Position     uint32 `json:"position"`
	FccChunk     string `json:"fccChunk"`
	ChunkStart   uint32 `json:"chunkStart"`
	BlockStart   uint32 `json:"blockStart"`
	SampleOffset uint32 `json:"sampleOffset"`
}

// Loop type codes from the WAV "smpl" chunk, shared by the tag-based
// loop encodings.
const (
	LoopTypeForward  = 0
	LoopTypePingPong = 1
	LoopTypeReverse  = 2
)

// LoopPoint is a start/end sample range with a play count and loop type,
// sourced from a WAV "smpl" chunk or from Vorbis/Opus comment tags.
//
// PlayCount is signed: -1 means infinite, 0 means play once, N means
// N+1 total passes. Start <= End is not enforced anywhere in the parse
// path; values are passed through as found.
//
// The JSON field names form the round-trip contract used by the export
// path and by compatible tools; do not rename them.
type LoopPoint struct {
	CuePointID uint32 `json:"cuePointID"`
	Type       uint32 `json:"type"`
	Start      uint64 `json:"start"`
	End        uint64 `json:"end"`
	Fraction   uint32 `json:"fraction"`
	PlayCount  int32  `json:"playCount"`
}

// TypeName returns the display name for the loop type code.
func (l LoopPoint) TypeName() string {
	switch l.Type {
	case LoopTypeForward:
		return "Forward"
	case LoopTypePingPong:
		return "Ping-Pong"
	case LoopTypeReverse:
		return "Reverse"
	default:
		return fmt.Sprintf("Unknown (%d)", l.Type)
	}
}
