package loopmeta

import (
	"github.com/simonhull/loopmeta/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exported from internal/types to keep the public API at the root.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// OutOfBoundsError is an alias to types.OutOfBoundsError.
type OutOfBoundsError = types.OutOfBoundsError

// Warning is an alias to types.Warning.
type Warning = types.Warning
