package loopmeta

import "encoding/json"

// EncodeLoopPoints serializes loop points as a JSON array of objects
// with keys cuePointID/type/start/end/fraction/playCount.
//
// This shape is a compatibility contract: a LOOP_POINTS comment carrying
// the output reconstructs equivalent LoopPoint entries on a future
// parse, in order. Tools writing loop-aware files should embed the
// result verbatim.
func EncodeLoopPoints(points []LoopPoint) ([]byte, error) {
	if points == nil {
		points = []LoopPoint{}
	}
	return json.Marshal(points)
}

// EncodeCuePoints serializes cue points as a JSON array of objects with
// keys id/position/fccChunk/chunkStart/blockStart/sampleOffset.
//
// Like EncodeLoopPoints, the key names are a round-trip contract with
// files produced by this system or compatible tools.
func EncodeCuePoints(points []CuePoint) ([]byte, error) {
	if points == nil {
		points = []CuePoint{}
	}
	return json.Marshal(points)
}
