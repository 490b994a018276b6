// Package vorbis provides shared Vorbis comment parsing.
//
// The comment body format is identical in FLAC VORBIS_COMMENT blocks,
// Ogg Vorbis comment headers, and OpusTags packets: a vendor string
// followed by a list of UTF-8 "KEY=VALUE" entries, all length-prefixed
// with little-endian uint32 values.
package vorbis

import (
	"encoding/binary"
	"strings"

	"github.com/simonhull/loopmeta/internal/loops"
	"github.com/simonhull/loopmeta/internal/types"
)

// ParseBody parses a Vorbis comment body from data.
//
// Every well-formed entry is split on the first '=' into a trimmed
// key/value pair, appended to the file-wide tag list, recorded on the
// returned VorbisComment, and funneled into the loop-point resolver.
// Entries without '=' are skipped; a truncated length prefix or entry
// silently ends the list. Neither case is fatal.
func ParseBody(data []byte, info *types.AudioFileInfo, resolver *loops.Resolver) *types.VorbisComment {
	if len(data) < 4 {
		return nil
	}

	vendorLen := binary.LittleEndian.Uint32(data[0:4])
	offset := 4

	if offset+int(vendorLen) > len(data) {
		return nil
	}
	vendor := string(data[offset : offset+int(vendorLen)])
	offset += int(vendorLen)

	if offset+4 > len(data) {
		return nil
	}
	commentCount := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	vc := &types.VorbisComment{Vendor: vendor}

	for i := uint32(0); i < commentCount; i++ {
		if offset+4 > len(data) {
			// Truncated length prefix ends the list.
			break
		}
		entryLen := binary.LittleEndian.Uint32(data[offset : offset+4])
		offset += 4

		if offset+int(entryLen) > len(data) {
			// Truncated entry ends the list.
			break
		}
		entry := string(data[offset : offset+int(entryLen)])
		offset += int(entryLen)

		key, value, ok := SplitComment(entry)
		if !ok {
			// Missing '=' skips this entry only.
			continue
		}

		vc.Comments = append(vc.Comments, types.MetadataTag{Key: key, Value: value})
		info.AddTag(key, value)
		resolver.Consume(key, value)
	}

	return vc
}

// SplitComment splits a comment entry on its first '=' into a trimmed
// key/value pair. ok is false when the entry contains no '='.
func SplitComment(entry string) (key, value string, ok bool) {
	eq := strings.IndexByte(entry, '=')
	if eq < 0 {
		return "", "", false
	}
	return strings.TrimSpace(entry[:eq]), strings.TrimSpace(entry[eq+1:]), true
}
