package loopmeta

// Option configures behavior when analyzing audio files.
//
// Options use the functional options pattern:
//
//	info, err := loopmeta.Analyze("song.flac",
//	    loopmeta.WithStrictParsing(),
//	    loopmeta.WithPictureLimit(256*1024),
//	)
type Option func(*analyzeOptions)

// analyzeOptions holds configuration for an analysis run.
type analyzeOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
	pictureLimit   int  // Max FLAC picture payload retained in memory
}

// defaultPictureLimit is the retention cap for FLAC picture payloads.
const defaultPictureLimit = 1 << 20 // 1 MiB

// defaultOptions returns the default configuration.
func defaultOptions() *analyzeOptions {
	return &analyzeOptions{
		strictParsing:  false,
		ignoreWarnings: false,
		pictureLimit:   defaultPictureLimit,
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, loopmeta continues when it encounters recoverable issues
// like malformed comment entries or oversized declared chunk sizes,
// returning warnings alongside the parsed data. With strict parsing
// enabled, any warning becomes a fatal error.
func WithStrictParsing() Option {
	return func(o *analyzeOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Recoverable issues are still tolerated; their Warning records are
// simply discarded from the result.
func WithIgnoreWarnings() Option {
	return func(o *analyzeOptions) {
		o.ignoreWarnings = true
	}
}

// WithPictureLimit sets the maximum FLAC picture payload, in bytes,
// retained in memory. Pictures declaring a larger payload keep their
// dimensions and MIME type but drop the bytes.
//
// Default is 1 MiB.
func WithPictureLimit(bytes int) Option {
	return func(o *analyzeOptions) {
		o.pictureLimit = bytes
	}
}
