// Package registry manages format-specific parsers for audio container types.
package registry

import (
	"io"

	"github.com/simonhull/loopmeta/internal/types"
)

// ContainerParser is the interface all container parsers implement.
type ContainerParser interface {
	// Parse extracts metadata from an audio file into info.
	// Path, Name, Format and Size are set by the caller.
	Parse(r io.ReaderAt, size int64, info *types.AudioFileInfo, opts Options) error
}

// Options carries caller-tunable parsing limits.
type Options struct {
	// PictureLimit is the maximum FLAC picture payload retained in
	// memory, in bytes.
	PictureLimit int
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]ContainerParser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser ContainerParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) ContainerParser {
	return parsers[format]
}
