package loopmeta

import (
	"github.com/simonhull/loopmeta/internal/types"
)

// AudioFileInfo is an alias to types.AudioFileInfo.
// Re-exported from internal/types to keep the public API at the root.
type AudioFileInfo = types.AudioFileInfo

// MetadataTag is an alias to types.MetadataTag.
type MetadataTag = types.MetadataTag

// CuePoint is an alias to types.CuePoint.
type CuePoint = types.CuePoint

// LoopPoint is an alias to types.LoopPoint.
type LoopPoint = types.LoopPoint

// Loop type codes, re-exported from internal/types.
const (
	LoopTypeForward  = types.LoopTypeForward
	LoopTypePingPong = types.LoopTypePingPong
	LoopTypeReverse  = types.LoopTypeReverse
)

// WavMetadata is an alias to types.WavMetadata.
type WavMetadata = types.WavMetadata

// FmtChunk is an alias to types.FmtChunk.
type FmtChunk = types.FmtChunk

// BextChunk is an alias to types.BextChunk.
type BextChunk = types.BextChunk

// SmplChunk is an alias to types.SmplChunk.
type SmplChunk = types.SmplChunk

// FactChunk is an alias to types.FactChunk.
type FactChunk = types.FactChunk

// RawChunkInfo is an alias to types.RawChunkInfo.
type RawChunkInfo = types.RawChunkInfo

// FlacMetadata is an alias to types.FlacMetadata.
type FlacMetadata = types.FlacMetadata

// StreamInfo is an alias to types.StreamInfo.
type StreamInfo = types.StreamInfo

// ApplicationBlock is an alias to types.ApplicationBlock.
type ApplicationBlock = types.ApplicationBlock

// VorbisComment is an alias to types.VorbisComment.
type VorbisComment = types.VorbisComment

// CueSheet is an alias to types.CueSheet.
type CueSheet = types.CueSheet

// Picture is an alias to types.Picture.
type Picture = types.Picture

// RawBlock is an alias to types.RawBlock.
type RawBlock = types.RawBlock

// OggMetadata is an alias to types.OggMetadata.
type OggMetadata = types.OggMetadata

// OggPageInfo is an alias to types.OggPageInfo.
type OggPageInfo = types.OggPageInfo
