package types

import (
	"fmt"

	"github.com/simonhull/loopmeta/internal/binary"
)

// UnsupportedFormatError is returned when the magic bytes match none of
// the supported containers. Magic carries the raw bytes for diagnostics.
type UnsupportedFormatError struct {
	Path   string
	Reason string
	Magic  [4]byte
}

func (e *UnsupportedFormatError) Error() string {
	if e.Magic != [4]byte{} {
		return fmt.Sprintf("%s: unsupported format: %s (magic %q)", e.Path, e.Reason, string(e.Magic[:]))
	}
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when a mandatory structure is invalid
// or truncated (RIFF header, STREAMINFO, first Ogg page header).
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// OutOfBoundsError is an alias for the bounds-check failure raised by
// the binary reading layer. Re-exported here so the whole error taxonomy
// is visible in one place.
type OutOfBoundsError = binary.OutOfBoundsError

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data: a declared chunk size running
// past the file, a malformed comment entry, an unreadable optional
// structure. They are collected in AudioFileInfo.Warnings.
type Warning struct {
	// Stage where the warning occurred: "container", "tags", "loops".
	Stage string

	// Warning message.
	Message string

	// File offset where the issue occurred (0 if not applicable).
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
