package types

// OggMetadata holds Ogg container details.
type OggMetadata struct {
	// Pages lists page headers in stream order, capped to the first
	// MaxDiagnosticPages entries for display. The scan itself always
	// covers the whole stream.
	Pages []OggPageInfo

	// VorbisComment is the comment header (Vorbis or OpusTags), if one
	// was found and readable.
	VorbisComment *VorbisComment
}

// MaxDiagnosticPages bounds the retained page list. Granule tracking
// and comment parsing are unaffected by the cap.
const MaxDiagnosticPages = 64

// OggPageInfo is a diagnostic record of one Ogg page header.
type OggPageInfo struct {
	// SequenceNumber is the page sequence number.
	SequenceNumber uint32

	// HeaderType bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS.
	HeaderType byte

	// SerialNumber identifies the logical bitstream.
	SerialNumber uint32

	// PayloadSize is the sum of the page's segment sizes.
	PayloadSize int
}
