// Command loopdump prints the parsed metadata model for an audio file.
//
// Useful test tool to confirm what we're able to actually read from the
// different containers.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/simonhull/loopmeta"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: loopdump <file.wav|file.flac|file.ogg|file.opus>")
		os.Exit(1)
	}

	info, err := loopmeta.Analyze(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%d bytes)\n", info.Name, info.Size)
	fmt.Printf("  %s\n", info)

	if len(info.Tags) > 0 {
		fmt.Println("Tags:")
		for _, tag := range info.Tags {
			fmt.Printf("  %s = %s\n", tag.Key, tag.Value)
		}
	}

	if len(info.CuePoints) > 0 {
		fmt.Println("Cue points:")
		for _, cp := range info.CuePoints {
			fmt.Printf("  #%d position=%d fcc=%q sampleOffset=%d\n",
				cp.ID, cp.Position, cp.FccChunk, cp.SampleOffset)
		}
	}

	if len(info.LoopPoints) > 0 {
		fmt.Println("Loop points:")
		for _, lp := range info.LoopPoints {
			fmt.Printf("  %s %d..%d fraction=%d playCount=%d\n",
				lp.TypeName(), lp.Start, lp.End, lp.Fraction, lp.PlayCount)
		}
		if out, err := loopmeta.EncodeLoopPoints(info.LoopPoints); err == nil {
			fmt.Printf("  LOOP_POINTS=%s\n", out)
		}
	}

	dumpContainer(info)

	if len(info.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, w := range info.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
}

func dumpContainer(info *loopmeta.AudioFileInfo) {
	switch {
	case info.Wav != nil:
		if f := info.Wav.Fmt; f != nil {
			fmt.Printf("RIFF %q encoding: %s (0x%04X)\n", info.Wav.Format, f.FormatName(), f.AudioFormat)
		}
		fmt.Println("Chunks:")
		for _, c := range info.Wav.RawChunks {
			fmt.Printf("  %q %d bytes at %d\n", c.ID, c.Size, c.Offset)
			if len(c.Data) > 0 {
				fmt.Println(indent(hex.Dump(c.Data)))
			}
		}
		if b := info.Wav.Bext; b != nil {
			fmt.Printf("  bext: %q by %q (%s %s)\n",
				b.Description, b.Originator, b.OriginationDate, b.OriginationTime)
		}

	case info.Flac != nil:
		if vc := info.Flac.VorbisComment; vc != nil {
			fmt.Printf("FLAC vendor: %s\n", vc.Vendor)
		}
		for _, app := range info.Flac.Applications {
			fmt.Printf("  APPLICATION %q (%d bytes, foreign=%v)\n",
				app.ID, len(app.Data), app.ForeignMetadata)
		}
		for _, pic := range info.Flac.Pictures {
			fmt.Printf("  PICTURE %s %s %dx%d (%d bytes)\n",
				pic.TypeName(), pic.MIMEType, pic.Width, pic.Height, pic.DataLength)
		}
		for _, blk := range info.Flac.RawBlocks {
			fmt.Printf("  %s %d bytes\n", blk.TypeName(), blk.Size)
			if len(blk.Data) > 0 {
				fmt.Println(indent(hex.Dump(blk.Data)))
			}
		}

	case info.Ogg != nil:
		fmt.Printf("Ogg pages (first %d):\n", len(info.Ogg.Pages))
		for _, pg := range info.Ogg.Pages {
			fmt.Printf("  seq=%d type=0x%02x serial=%d payload=%d\n",
				pg.SequenceNumber, pg.HeaderType, pg.SerialNumber, pg.PayloadSize)
		}
	}
}

func indent(s string) string {
	out := "    "
	for _, r := range s {
		out += string(r)
		if r == '\n' {
			out += "    "
		}
	}
	return out
}
