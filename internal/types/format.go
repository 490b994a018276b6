package types

import (
	"io"

	"github.com/simonhull/loopmeta/internal/binary"
)

// Format represents the detected audio container type.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported container.
	FormatUnknown Format = iota
	// FormatWAV represents RIFF/WAVE files.
	FormatWAV
	// FormatFLAC represents FLAC files.
	FormatFLAC
	// FormatOgg represents Ogg-encapsulated Vorbis files.
	FormatOgg
	// FormatOpus represents Ogg-encapsulated Opus files.
	FormatOpus
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "WAV"
	case FormatFLAC:
		return "FLAC"
	case FormatOgg:
		return "Ogg Vorbis"
	case FormatOpus:
		return "Opus"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatWAV:
		return []string{".wav"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatOgg:
		return []string{".ogg", ".oga"}
	case FormatOpus:
		return []string{".opus"}
	default:
		return nil
	}
}

// DetectFormat classifies the container by its first four bytes.
//
// Exactly three magics are recognized: "RIFF" (WAV), "fLaC" (FLAC) and
// "OggS" (Ogg). The matched parser re-reads and validates the header
// itself, so detection never consumes stream position.
//
// OggS streams are additionally refined to FormatOpus when the first
// packet starts with "OpusHead". Both Ogg formats route to the same
// parser; the distinction is purely for reporting.
//
// Any other magic fails with UnsupportedFormatError carrying the raw
// bytes for diagnostics. This is the one failure that aborts a parse
// before any container work starts.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	switch string(magic) {
	case "RIFF":
		return FormatWAV, nil
	case "fLaC":
		return FormatFLAC, nil
	case "OggS":
		if isOpusStream(sr, size) {
			return FormatOpus, nil
		}
		return FormatOgg, nil
	}

	var raw [4]byte
	copy(raw[:], magic)
	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognized magic bytes",
		Magic:  raw,
	}
}

// isOpusStream peeks into the first Ogg page for the "OpusHead" marker.
//
// Ogg page header: 27 bytes fixed + segment table (variable).
// Minimum needed: 27 (header) + 1 (segment table) + 8 (OpusHead).
func isOpusStream(sr *binary.SafeReader, size int64) bool {
	if size < 36 {
		return false
	}

	segCount, err := binary.ReadLE[uint8](sr, 26, "segment count")
	if err != nil {
		return false
	}

	packetOffset := int64(27 + int(segCount))
	if packetOffset+8 > size {
		return false
	}

	codecMagic := make([]byte, 8)
	if err := sr.ReadAt(codecMagic, packetOffset, "codec magic"); err != nil {
		return false
	}
	return string(codecMagic) == "OpusHead"
}
