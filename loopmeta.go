package loopmeta

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	// Container parsers register themselves with the registry.
	_ "github.com/simonhull/loopmeta/internal/flac"
	_ "github.com/simonhull/loopmeta/internal/ogg"
	_ "github.com/simonhull/loopmeta/internal/riff"

	"github.com/simonhull/loopmeta/internal/registry"
	"github.com/simonhull/loopmeta/internal/types"
)

// Analyze opens an audio file and extracts its metadata.
//
// Analyze is a synchronous, side-effect-free function of the file's
// bytes: it opens its own read-only handle, releases it on every exit
// path, and never writes to the file. Concurrent calls are safe, on the
// same or different inputs.
//
// If the file has recoverable problems (malformed comments, oversized
// declared chunk sizes), Analyze returns a partial model with entries in
// AudioFileInfo.Warnings instead of an error. Only an unsupported
// container or a truncated mandatory structure fails the whole call.
//
// Options can be provided to customize behavior:
//
//	info, err := loopmeta.Analyze("song.flac",
//	    loopmeta.WithStrictParsing(),
//	)
func Analyze(path string, opts ...Option) (*AudioFileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return AnalyzeReader(f, stat.Size(), path, opts...)
}

// AnalyzeReader runs the engine over caller-supplied bytes.
//
// r must support random access; the caller retains ownership of it and
// is responsible for closing it.
func AnalyzeReader(r io.ReaderAt, size int64, path string, opts ...Option) (*AudioFileInfo, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	info := &AudioFileInfo{
		Path:   path,
		Name:   filepath.Base(path),
		Size:   size,
		Format: format,
	}

	regOpts := registry.Options{PictureLimit: options.pictureLimit}
	if err := parser.Parse(r, size, info, regOpts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	if options.strictParsing && len(info.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", info.Warnings[0].Message)
	}
	if options.ignoreWarnings {
		info.Warnings = nil
	}

	return info, nil
}

// AnalyzeContext analyzes a file with context support.
//
// This is a thin wrapper around Analyze() that checks the context before
// starting. The engine has no internal suspension points beyond blocking
// file reads; callers needing cancellation mid-parse must race the call
// against a timeout and discard the result.
func AnalyzeContext(ctx context.Context, path string, opts ...Option) (*AudioFileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Analyze(path, opts...)
}

// AnalyzeMany analyzes multiple audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails, the first error is returned and the remaining results are
// discarded.
//
// Example:
//
//	infos, err := loopmeta.AnalyzeMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, info := range infos {
//		fmt.Printf("%s: %d loop points\n", info.Name, len(info.LoopPoints))
//	}
func AnalyzeMany(ctx context.Context, paths ...string) ([]*AudioFileInfo, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*AudioFileInfo, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			info, err := Analyze(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// DetectFormat classifies the container by its magic bytes without
// running a full parse.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
