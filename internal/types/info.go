// Package types provides core data structures for audio container metadata.
//
// This package defines the AudioFileInfo tree produced by a single parse:
// unified technical parameters, the ordered tag list, cue points, loop
// points, and exactly one of the per-container metadata structs.
package types

import (
	"fmt"
	"time"
)

// AudioFileInfo is the unified result of analyzing one audio file.
//
// The tree is fully built by a single parse invocation and is not
// mutated afterwards by this library. Exactly one of Wav, Flac, Ogg is
// non-nil, matching the detected container.
type AudioFileInfo struct {
	// Path to the audio file.
	Path string

	// Name is the base file name (no directory).
	Name string

	// Size is the file size in bytes.
	Size int64

	// Format is the detected container type.
	Format Format

	// Unified technical parameters. Zero means "unknown".
	SampleRate    int
	Channels      int
	BitsPerSample int

	// Duration of the audio stream, when derivable.
	Duration time.Duration

	// Tags holds every discovered key/value pair in discovery order.
	// Keys are not required to be unique.
	Tags []MetadataTag

	// CuePoints from a WAV "cue " chunk, in file order.
	CuePoints []CuePoint

	// LoopPoints merged from the WAV "smpl" chunk and tag-based
	// encodings. Start/end ordering is not validated; values are
	// passed through as found.
	LoopPoints []LoopPoint

	// Exactly one of these is non-nil.
	Wav  *WavMetadata
	Flac *FlacMetadata
	Ogg  *OggMetadata

	// Warnings encountered during parsing (non-fatal issues).
	Warnings []Warning
}

// MetadataTag is a single key/value pair from a LIST/INFO chunk or a
// Vorbis/Opus comment.
type MetadataTag struct {
	Key   string
	Value string
}

// AddTag appends a key/value pair, preserving discovery order.
func (i *AudioFileInfo) AddTag(key, value string) {
	i.Tags = append(i.Tags, MetadataTag{Key: key, Value: value})
}

// Warn records a non-fatal parsing issue.
func (i *AudioFileInfo) Warn(stage, message string, offset int64) {
	i.Warnings = append(i.Warnings, Warning{
		Stage:   stage,
		Message: message,
		Offset:  offset,
	})
}

// String returns a short human-readable summary.
// Example output: "FLAC 44.1kHz 16-bit stereo 3m12s".
func (i *AudioFileInfo) String() string {
	parts := []string{i.Format.String()}

	if i.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(i.SampleRate)/1000))
	}
	if i.BitsPerSample > 0 {
		parts = append(parts, fmt.Sprintf("%d-bit", i.BitsPerSample))
	}
	if desc := channelDescription(i.Channels); desc != "" {
		parts = append(parts, desc)
	}
	if i.Duration > 0 {
		parts = append(parts, i.Duration.Round(time.Second).String())
	}

	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 4:
		return "quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
