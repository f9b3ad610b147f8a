package mobiledoc

import (
	"fmt"

	"github.com/yaklabco/gomobiledoc/pkg/codec"
	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// Interning keys. Variable-length fields are stored as their deterministic
// CBOR encoding; the empty string marks an absent value, which no CBOR
// encoding can equal.
type (
	styleKey struct {
		tagName string
		attrs   string
	}

	cardKey struct {
		name    string
		payload string
	}

	embedKey struct {
		name    string
		value   string
		payload string
	}
)

// intern returns the index of key in defs, appending newDef on first sight.
func intern[K comparable, D any](cache map[K]int, defs *[]D, key K, newDef func() D) int {
	if index, ok := cache[key]; ok {
		return index
	}

	*defs = append(*defs, newDef())
	index := len(*defs) - 1
	cache[key] = index

	return index
}

func canonicalAttrs(attrs []post.Pair) (string, error) {
	if len(attrs) == 0 {
		return "", nil
	}
	data, err := codec.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("%w: attributes: %w", ErrUnencodablePayload, err)
	}
	return string(data), nil
}

func canonicalPayload(payload post.Payload) (string, error) {
	if payload.IsEmpty() {
		return "", nil
	}
	data, err := codec.Marshal(map[string]any(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnencodablePayload, err)
	}
	return string(data), nil
}
