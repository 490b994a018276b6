package vorbis

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/simonhull/loopmeta/internal/loops"
	"github.com/simonhull/loopmeta/internal/types"
)

// commentBody builds a Vorbis comment body: vendor + entry list, all
// length-prefixed little-endian.
func commentBody(vendor string, entries ...string) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(len(vendor)))
	buf.WriteString(vendor)
	binary.Write(buf, binary.LittleEndian, uint32(len(entries)))
	for _, e := range entries {
		binary.Write(buf, binary.LittleEndian, uint32(len(e)))
		buf.WriteString(e)
	}
	return buf.Bytes()
}

func TestParseBody(t *testing.T) {
	body := commentBody("loopmeta test", "TITLE=Song", "ARTIST=Someone")
	info := &types.AudioFileInfo{}
	resolver := loops.NewResolver(nil)

	vc := ParseBody(body, info, resolver)
	if vc == nil {
		t.Fatal("expected a VorbisComment")
	}
	if vc.Vendor != "loopmeta test" {
		t.Errorf("wrong vendor: %q", vc.Vendor)
	}
	if len(vc.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(vc.Comments))
	}
	if vc.Comments[0].Key != "TITLE" || vc.Comments[0].Value != "Song" {
		t.Errorf("wrong first comment: %+v", vc.Comments[0])
	}
	if len(info.Tags) != 2 {
		t.Errorf("expected 2 file-wide tags, got %d", len(info.Tags))
	}
}

func TestParseBody_FunnelsLoopTags(t *testing.T) {
	body := commentBody("v", "LOOP_START=100", "LOOP_END=200")
	info := &types.AudioFileInfo{}
	resolver := loops.NewResolver(nil)

	ParseBody(body, info, resolver)

	points := resolver.Points()
	if len(points) != 1 {
		t.Fatalf("expected 1 loop point, got %d", len(points))
	}
	if points[0].Start != 100 || points[0].End != 200 {
		t.Errorf("wrong loop range: %+v", points[0])
	}
}

func TestParseBody_MissingEqualsSkipsEntry(t *testing.T) {
	body := commentBody("v", "NOEQUALSSIGN", "TITLE=ok")
	info := &types.AudioFileInfo{}

	vc := ParseBody(body, info, loops.NewResolver(nil))
	if vc == nil {
		t.Fatal("expected a VorbisComment")
	}
	if len(vc.Comments) != 1 {
		t.Fatalf("malformed entry should be skipped, got %d comments", len(vc.Comments))
	}
	if vc.Comments[0].Key != "TITLE" {
		t.Errorf("wrong surviving comment: %+v", vc.Comments[0])
	}
}

func TestParseBody_TruncatedEntryEndsList(t *testing.T) {
	body := commentBody("v", "TITLE=ok", "ARTIST=Someone")
	body = body[:len(body)-4] // cut into the final entry

	info := &types.AudioFileInfo{}
	vc := ParseBody(body, info, loops.NewResolver(nil))
	if vc == nil {
		t.Fatal("truncation must not be fatal")
	}
	if len(vc.Comments) != 1 {
		t.Errorf("expected list truncated to 1 comment, got %d", len(vc.Comments))
	}
}

func TestParseBody_TruncatedVendor(t *testing.T) {
	body := commentBody("a vendor string", "TITLE=x")[:6]

	info := &types.AudioFileInfo{}
	if vc := ParseBody(body, info, loops.NewResolver(nil)); vc != nil {
		t.Errorf("expected nil for truncated vendor, got %+v", vc)
	}
}

func TestSplitComment(t *testing.T) {
	key, value, ok := SplitComment("LOOP_START= 100 ")
	if !ok {
		t.Fatal("expected ok")
	}
	if key != "LOOP_START" || value != "100" {
		t.Errorf("expected trimmed pair, got %q=%q", key, value)
	}

	if _, _, ok := SplitComment("nothing here"); ok {
		t.Error("expected !ok for entry without '='")
	}

	// Values may themselves contain '='; only the first one splits.
	_, value, _ = SplitComment("K=a=b")
	if value != "a=b" {
		t.Errorf("expected %q, got %q", "a=b", value)
	}
}
