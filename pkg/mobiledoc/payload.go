package mobiledoc

import (
	"maps"
	"math"
	"slices"

	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// copyPayload returns a deep copy of p that the document owns. Whole floats
// become int64 so that 1 and 1.0, which print the same in JSON, intern to one
// definition and encode the same way in CBOR. Maps and slices of the common
// decoded shapes are copied; other values are kept as they are.
func copyPayload(p post.Payload) post.Payload {
	if p == nil {
		return nil
	}
	out := make(post.Payload, len(p))
	for k, v := range p {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case float64:
		return wholeFloat(v)
	case float32:
		return wholeFloat(float64(v))
	case post.Payload:
		return copyPayload(v)
	case map[string]any:
		return map[string]any(copyPayload(v))
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = copyValue(elem)
		}
		return out
	case map[string]string:
		return maps.Clone(v)
	case []string:
		return slices.Clone(v)
	default:
		return v
	}
}

// wholeFloat returns f as an int64 when that is exact, otherwise f.
func wholeFloat(f float64) any {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return f
	}
	return int64(f)
}
