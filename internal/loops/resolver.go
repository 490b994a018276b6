// Package loops merges loop-point evidence from the encodings that may
// coexist in one file: the native WAV "smpl" loop records, a JSON array
// embedded in a LOOP_POINTS comment, and individual scalar comment tags
// (LOOP_START, LOOP_END, LOOP_PLAY_COUNT).
package loops

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/simonhull/loopmeta/internal/types"
)

// Resolver accumulates loop points while comments are discovered.
//
// A Resolver is transient parse state; the finished list is handed to
// AudioFileInfo.LoopPoints and the Resolver is discarded.
type Resolver struct {
	points []types.LoopPoint
}

// NewResolver creates a Resolver, seeded with any loop points already
// decoded from a native binary structure.
func NewResolver(seed []types.LoopPoint) *Resolver {
	return &Resolver{points: seed}
}

// Points returns the resolved loop-point list in discovery order.
func (r *Resolver) Points() []types.LoopPoint {
	return r.points
}

// Consume inspects one comment key/value pair and folds any loop-point
// evidence into the list. Keys are matched case-insensitively. Malformed
// values are swallowed: no points are added and no error propagates.
//
// The scalar tag families always target index 0 of the list, creating a
// zero-initialized placeholder if the list is empty. They are designed
// for single-loop files and do not compose with the JSON array form
// beyond sharing the same list.
func (r *Resolver) Consume(key, value string) {
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "LOOP_POINTS", "LOOPPOINTS", "LOOP-POINTS":
		r.consumeJSON(value)
	case "LOOP_START", "LOOPSTART":
		if v, ok := parseInt(value); ok {
			r.first().Start = uint64(v)
		}
	case "LOOP_END", "LOOPEND":
		if v, ok := parseInt(value); ok {
			r.first().End = uint64(v)
		}
	case "LOOP_PLAY_COUNT", "LOOPPLAYCOUNT", "PLAY_COUNT", "PLAYCOUNT":
		if v, ok := parseInt(value); ok {
			r.first().PlayCount = int32(v)
		}
	}
}

// first returns the loop point at index 0, creating a placeholder when
// the list is empty.
func (r *Resolver) first() *types.LoopPoint {
	if len(r.points) == 0 {
		r.points = append(r.points, types.LoopPoint{})
	}
	return &r.points[0]
}

// consumeJSON decodes a LOOP_POINTS value: a JSON array of objects with
// mandatory integral "start" and "end" fields plus optional fields under
// several historical spellings. A decoded point is appended only when no
// existing point already has the identical (start, end) pair.
func (r *Resolver) consumeJSON(value string) {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.UseNumber()

	var elems []map[string]any
	if err := dec.Decode(&elems); err != nil {
		return
	}

	for _, elem := range elems {
		start, okStart := intField(elem, "start")
		end, okEnd := intField(elem, "end")
		if !okStart || !okEnd {
			continue
		}

		point := types.LoopPoint{
			Start: uint64(start),
			End:   uint64(end),
		}
		if v, ok := intField(elem, "cuePointID", "cuePointId", "CuePointId", "cue_point_id"); ok {
			point.CuePointID = uint32(v)
		}
		if v, ok := intField(elem, "type", "Type"); ok {
			point.Type = uint32(v)
		}
		if v, ok := intField(elem, "fraction", "Fraction"); ok {
			point.Fraction = uint32(v)
		}
		if v, ok := intField(elem, "playCount", "play_count", "PlayCount", "loopPlayCount"); ok {
			point.PlayCount = int32(v)
		}

		if !r.contains(point.Start, point.End) {
			r.points = append(r.points, point)
		}
	}
}

// contains reports whether a point with the given (start, end) pair is
// already in the list.
func (r *Resolver) contains(start, end uint64) bool {
	for _, p := range r.points {
		if p.Start == start && p.End == end {
			return true
		}
	}
	return false
}

// intField extracts the first present field among names as an integral
// value. Non-integral or malformed values count as absent.
func intField(elem map[string]any, names ...string) (int64, bool) {
	for _, name := range names {
		raw, ok := elem[name]
		if !ok {
			continue
		}
		num, ok := raw.(json.Number)
		if !ok {
			return 0, false
		}
		v, err := num.Int64()
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// parseInt parses a scalar tag value as a signed integer.
func parseInt(value string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
