package loopmeta

import (
	"github.com/simonhull/loopmeta/internal/types"
)

// Format is an alias to types.Format.
// Re-exported from internal/types to keep the public API at the root.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatWAV     = types.FormatWAV
	FormatFLAC    = types.FormatFLAC
	FormatOgg     = types.FormatOgg
	FormatOpus    = types.FormatOpus
)
