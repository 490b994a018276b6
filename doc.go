// Package loopmeta provides read-only audio-container metadata and
// loop-point extraction.
//
// loopmeta inspects the byte contents of a WAV, FLAC, or Ogg
// (Vorbis/Opus) file and produces a structured description of its format
// parameters, tag metadata, cue points, and loop points. It never
// mutates the source file and performs no decoding.
//
// # Quick Start
//
// Analyzing a file:
//
//	info, err := loopmeta.Analyze("song.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(info) // "WAV 44.1kHz 16-bit stereo 1m32s"
//	for _, lp := range info.LoopPoints {
//		fmt.Printf("loop %d..%d (%s)\n", lp.Start, lp.End, lp.TypeName())
//	}
//
// # Supported Containers
//
//   - WAV: RIFF chunk walk covering fmt/data/cue/smpl/LIST-INFO/bext/fact,
//     with diagnostic captures of anything else
//   - FLAC: metadata blocks covering STREAMINFO, APPLICATION,
//     VORBIS_COMMENT, CUESHEET and PICTURE
//   - Ogg: resynchronizing page scan for Vorbis and Opus streams,
//     including granule-position duration
//
// # Loop Points
//
// Loop points may be encoded up to three different ways in one file: the
// native WAV "smpl" records, a JSON array in a LOOP_POINTS comment, and
// scalar LOOP_START/LOOP_END/LOOP_PLAY_COUNT tags. loopmeta merges all
// three with defined precedence and deduplication, and EncodeLoopPoints /
// EncodeCuePoints re-serialize the result in the same JSON shape so a
// re-tagged file round-trips to an equivalent model.
//
// # Graceful Degradation
//
// Only two conditions are fatal: unrecognized magic bytes and a
// truncated mandatory structure (RIFF header, STREAMINFO, first Ogg
// page). Everything else degrades to a partial model plus entries in
// AudioFileInfo.Warnings.
package loopmeta
