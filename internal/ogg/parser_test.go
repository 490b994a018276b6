package ogg

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	reg "github.com/simonhull/loopmeta/internal/registry"
	"github.com/simonhull/loopmeta/internal/types"
)

// oggPage frames a payload as one Ogg page. Payloads under 255 bytes
// use a single segment; longer ones are split into 255-byte segments.
func oggPage(headerType byte, granule uint64, serial, sequence uint32, payload []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("OggS")
	buf.WriteByte(0) // version
	buf.WriteByte(headerType)
	binary.Write(buf, binary.LittleEndian, granule)
	binary.Write(buf, binary.LittleEndian, serial)
	binary.Write(buf, binary.LittleEndian, sequence)
	binary.Write(buf, binary.LittleEndian, uint32(0)) // checksum (not validated)

	var segments []byte
	rest := len(payload)
	for rest >= 255 {
		segments = append(segments, 255)
		rest -= 255
	}
	segments = append(segments, byte(rest))
	buf.WriteByte(byte(len(segments)))
	buf.Write(segments)
	buf.Write(payload)
	return buf.Bytes()
}

// vorbisIdent builds a Vorbis identification header packet.
func vorbisIdent(channels byte, sampleRate uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteByte(0x01)
	buf.WriteString("vorbis")
	binary.Write(buf, binary.LittleEndian, uint32(0)) // version
	buf.WriteByte(channels)
	binary.Write(buf, binary.LittleEndian, sampleRate)
	binary.Write(buf, binary.LittleEndian, uint32(0))      // bitrate max
	binary.Write(buf, binary.LittleEndian, uint32(128000)) // bitrate nominal
	binary.Write(buf, binary.LittleEndian, uint32(0))      // bitrate min
	buf.WriteByte(0xB8)                                    // blocksizes
	buf.WriteByte(0x01)                                    // framing
	return buf.Bytes()
}

// opusHead builds an OpusHead packet.
func opusHead(channels byte, preSkip uint16, inputRate uint32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("OpusHead")
	buf.WriteByte(1) // version
	buf.WriteByte(channels)
	binary.Write(buf, binary.LittleEndian, preSkip)
	binary.Write(buf, binary.LittleEndian, inputRate)
	binary.Write(buf, binary.LittleEndian, uint16(0)) // output gain
	buf.WriteByte(0)                                  // mapping family
	return buf.Bytes()
}

// commentPacket builds a Vorbis or Opus comment header packet.
func commentPacket(prefix []byte, vendor string, entries ...string) []byte {
	buf := &bytes.Buffer{}
	buf.Write(prefix)
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		binary.Write(buf, binary.LittleEndian, uint32(len(e)))
		buf.WriteString(e)
	}
	return buf.Bytes()
}

func vorbisCommentPacket(vendor string, entries ...string) []byte {
	return commentPacket(append([]byte{0x03}, []byte("vorbis")...), vendor, entries...)
}

func opusTagsPacket(vendor string, entries ...string) []byte {
	return commentPacket([]byte("OpusTags"), vendor, entries...)
}

func parse(t *testing.T, data []byte) *types.AudioFileInfo {
	t.Helper()
	info := &types.AudioFileInfo{Path: "test.ogg", Format: types.FormatOgg}
	p := &parser{}
	if err := p.Parse(bytes.NewReader(data), int64(len(data)), info, reg.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return info
}

func TestParse_Vorbis(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 77, 0, vorbisIdent(2, 44100)))
	buf.Write(oggPage(0x00, 0, 77, 1, vorbisCommentPacket("vendor", "TITLE=Song")))
	buf.Write(oggPage(0x04, 88200, 77, 2, make([]byte, 10)))

	info := parse(t, buf.Bytes())
	if info.Channels != 2 || info.SampleRate != 44100 {
		t.Errorf("wrong identification fields: %+v", info)
	}
	if info.Format != types.FormatOgg {
		t.Errorf("expected Ogg Vorbis, got %v", info.Format)
	}
	if info.Ogg.VorbisComment == nil || info.Ogg.VorbisComment.Vendor != "vendor" {
		t.Errorf("wrong comment header: %+v", info.Ogg.VorbisComment)
	}
	if len(info.Tags) != 1 || info.Tags[0].Key != "TITLE" {
		t.Errorf("wrong tags: %+v", info.Tags)
	}

	// 88200 samples at 44100 Hz is exactly two seconds.
	if info.Duration != 2*time.Second {
		t.Errorf("expected 2s, got %v", info.Duration)
	}

	if len(info.Ogg.Pages) != 3 {
		t.Fatalf("expected 3 page records, got %d", len(info.Ogg.Pages))
	}
	if info.Ogg.Pages[2].HeaderType != 0x04 || info.Ogg.Pages[2].SerialNumber != 77 {
		t.Errorf("wrong page record: %+v", info.Ogg.Pages[2])
	}
}

func TestParse_ResyncAfterGarbage(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.WriteString("xyz") // 3 garbage bytes before the first page
	buf.Write(oggPage(0x02, 0, 1, 0, vorbisIdent(1, 8000)))

	info := parse(t, buf.Bytes())
	if len(info.Ogg.Pages) != 1 {
		t.Fatalf("resync failed: expected 1 page, got %d", len(info.Ogg.Pages))
	}
	if info.SampleRate != 8000 {
		t.Errorf("page after garbage not parsed: %+v", info)
	}
}

func TestParse_ResyncBetweenPages(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 1, 0, vorbisIdent(2, 48000)))
	buf.WriteString("OggX corrupted page fragment") // partial sync match
	buf.Write(oggPage(0x04, 48000, 1, 1, make([]byte, 4)))

	info := parse(t, buf.Bytes())
	if len(info.Ogg.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(info.Ogg.Pages))
	}
	if info.Duration != time.Second {
		t.Errorf("expected 1s, got %v", info.Duration)
	}
}

func TestParse_OpusDuration(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 9, 0, opusHead(2, 312, 44100)))
	buf.Write(oggPage(0x00, 0, 9, 1, opusTagsPacket("opusenc", "ARTIST=Someone")))
	buf.Write(oggPage(0x04, 960048, 9, 2, make([]byte, 8)))

	info := parse(t, buf.Bytes())
	if info.Format != types.FormatOpus {
		t.Errorf("expected Opus, got %v", info.Format)
	}
	if info.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", info.Channels)
	}
	if info.SampleRate != 44100 {
		t.Errorf("input sample rate should be reported, got %d", info.SampleRate)
	}
	if info.BitsPerSample != 16 {
		t.Errorf("bits per sample should default to 16, got %d", info.BitsPerSample)
	}

	// Granule positions count 48kHz samples; pre-skip is subtracted.
	want := time.Duration(float64(960048-312) / 48000 * float64(time.Second))
	if info.Duration != want {
		t.Errorf("expected %v, got %v", want, info.Duration)
	}
}

func TestParse_OpusZeroInputRate(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 9, 0, opusHead(1, 0, 0)))
	buf.Write(oggPage(0x04, 48000, 9, 1, make([]byte, 4)))

	info := parse(t, buf.Bytes())
	if info.SampleRate != 48000 {
		t.Errorf("zero input rate should fall back to 48000, got %d", info.SampleRate)
	}
	if info.Duration != time.Second {
		t.Errorf("expected 1s, got %v", info.Duration)
	}
}

func TestParse_UnsetGranuleIgnored(t *testing.T) {
	unset := ^uint64(0)
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 5, 0, vorbisIdent(2, 44100)))
	buf.Write(oggPage(0x00, unset, 5, 1, make([]byte, 4)))
	buf.Write(oggPage(0x04, 44100, 5, 2, make([]byte, 4)))

	info := parse(t, buf.Bytes())
	if info.Duration != time.Second {
		t.Errorf("the all-ones sentinel must not drive duration, got %v", info.Duration)
	}
}

func TestParse_LoopPointsFromOpusTags(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 9, 0, opusHead(2, 0, 48000)))
	buf.Write(oggPage(0x00, 0, 9, 1, opusTagsPacket("v",
		`LOOP_POINTS=[{"start":1000,"end":2000,"playCount":2}]`)))

	info := parse(t, buf.Bytes())
	if len(info.LoopPoints) != 1 {
		t.Fatalf("expected 1 loop point, got %d", len(info.LoopPoints))
	}
	lp := info.LoopPoints[0]
	if lp.Start != 1000 || lp.End != 2000 || lp.PlayCount != 2 {
		t.Errorf("wrong loop point: %+v", lp)
	}
}

func TestParse_TruncatedPayloadStillRecordsPage(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 1, 0, vorbisIdent(2, 44100)))
	page := oggPage(0x04, 44100, 1, 1, make([]byte, 64))
	buf.Write(page[:len(page)-32]) // payload cut short by EOF

	info := parse(t, buf.Bytes())
	if len(info.Ogg.Pages) != 2 {
		t.Fatalf("truncated payload must still record its page header, got %d pages", len(info.Ogg.Pages))
	}
	// The truncated page's granule still counts toward duration.
	if info.Duration != time.Second {
		t.Errorf("expected 1s, got %v", info.Duration)
	}
}

func TestParse_FirstPageTruncatedFatal(t *testing.T) {
	page := oggPage(0x02, 0, 1, 0, vorbisIdent(2, 44100))
	data := page[:20] // cut inside the fixed header

	info := &types.AudioFileInfo{Path: "test.ogg"}
	p := &parser{}
	if err := p.Parse(bytes.NewReader(data), int64(len(data)), info, reg.Options{}); err == nil {
		t.Error("expected error for truncated first page header")
	}
}

func TestParse_PageListCap(t *testing.T) {
	buf := &bytes.Buffer{}
	buf.Write(oggPage(0x02, 0, 1, 0, vorbisIdent(2, 44100)))
	for i := 1; i <= types.MaxDiagnosticPages+10; i++ {
		buf.Write(oggPage(0x00, uint64(i*1000), 1, uint32(i), make([]byte, 2)))
	}

	info := parse(t, buf.Bytes())
	if len(info.Ogg.Pages) != types.MaxDiagnosticPages {
		t.Errorf("page list must cap at %d, got %d", types.MaxDiagnosticPages, len(info.Ogg.Pages))
	}

	// Granule tracking covers the whole stream despite the cap.
	maxGranule := float64((types.MaxDiagnosticPages + 10) * 1000)
	want := time.Duration(maxGranule / 44100 * float64(time.Second))
	if info.Duration != want {
		t.Errorf("expected %v, got %v", want, info.Duration)
	}
}
