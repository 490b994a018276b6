package types

import "fmt"

// FLAC metadata block type codes.
const (
	FlacBlockStreamInfo    = 0
	FlacBlockPadding       = 1
	FlacBlockApplication   = 2
	FlacBlockSeekTable     = 3
	FlacBlockVorbisComment = 4
	FlacBlockCueSheet      = 5
	FlacBlockPicture       = 6
)

// FlacMetadata holds FLAC container details.
type FlacMetadata struct {
	// StreamInfo is the decoded STREAMINFO block, nil if unreadable.
	StreamInfo *StreamInfo

	// Applications lists APPLICATION blocks in file order.
	Applications []ApplicationBlock

	// VorbisComment is the VORBIS_COMMENT block, if present.
	VorbisComment *VorbisComment

	// CueSheet is the CUESHEET block summary, if present.
	CueSheet *CueSheet

	// Pictures lists PICTURE blocks in file order.
	Pictures []Picture

	// RawBlocks lists unrecognized block types in file order.
	RawBlocks []RawBlock
}

// StreamInfo is the decoded STREAMINFO block.
type StreamInfo struct {
	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32
	MaxFrameSize  uint32
	SampleRate    uint32
	Channels      int
	BitsPerSample int

	// TotalSamples is the 36-bit total-sample count widened to 64 bits.
	TotalSamples uint64
}

// ApplicationBlock is an APPLICATION metadata block.
type ApplicationBlock struct {
	// ID is the 4-character application identifier.
	ID string

	// Data is the raw block payload after the identifier.
	Data []byte

	// ForeignMetadata marks blocks whose ID case-insensitively equals
	// "riff" (foreign RIFF metadata stored by flac --keep-foreign-metadata).
	ForeignMetadata bool
}

// VorbisComment is a vendor string plus ordered key/value tag list,
// shared verbatim by FLAC and Ogg Vorbis/Opus.
type VorbisComment struct {
	Vendor   string
	Comments []MetadataTag
}

// CueSheet is a diagnostic summary of a CUESHEET block. Lead-in and
// per-track records are not parsed.
type CueSheet struct {
	// CatalogNumber is the 128-byte media catalog number trimmed of
	// trailing NULs.
	CatalogNumber string

	// TrackCount is the declared number of tracks.
	TrackCount uint8
}

// Picture is the metadata of one PICTURE block.
type Picture struct {
	Type        uint32
	MIMEType    string
	Description string
	Width       uint32
	Height      uint32
	ColorDepth  uint32

	// DataLength is the declared picture payload length.
	DataLength uint32

	// Data holds the picture bytes only when DataLength is within the
	// configured retention cap (1 MiB by default).
	Data []byte
}

// TypeName returns the display name for the picture type code.
func (p Picture) TypeName() string {
	return PictureTypeName(p.Type)
}

// pictureTypeNames maps FLAC/ID3v2 picture type codes to display names.
var pictureTypeNames = [...]string{
	"Other",
	"32x32 pixels file icon",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media",
	"Lead artist",
	"Artist",
	"Conductor",
	"Band",
	"Composer",
	"Lyricist",
	"Recording location",
	"During recording",
	"During performance",
	"Movie screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band logotype",
	"Publisher logotype",
}

// PictureTypeName maps a picture type code to its display name.
func PictureTypeName(code uint32) string {
	if int(code) < len(pictureTypeNames) {
		return pictureTypeNames[code]
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// RawBlock records one unrecognized metadata block.
type RawBlock struct {
	// Type is the 7-bit block type code.
	Type uint8

	// Size is the declared block size.
	Size uint32

	// Data holds the first min(Size, 256) bytes for diagnostics.
	Data []byte
}

// TypeName returns the display name for the block type code.
func (b RawBlock) TypeName() string {
	return FlacBlockTypeName(b.Type)
}

// FlacBlockTypeName maps a metadata block type code to its display name.
func FlacBlockTypeName(code uint8) string {
	switch code {
	case FlacBlockStreamInfo:
		return "STREAMINFO"
	case FlacBlockPadding:
		return "PADDING"
	case FlacBlockApplication:
		return "APPLICATION"
	case FlacBlockSeekTable:
		return "SEEKTABLE"
	case FlacBlockVorbisComment:
		return "VORBIS_COMMENT"
	case FlacBlockCueSheet:
		return "CUESHEET"
	case FlacBlockPicture:
		return "PICTURE"
	default:
		return fmt.Sprintf("Unknown (%d)", code)
	}
}
