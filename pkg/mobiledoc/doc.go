// Package mobiledoc encodes a post.Post into the compact, array-based
// mobiledoc 0.2.0 wire document.
//
// Encoding happens in two passes. Linearize walks the tree in pre-order and
// emits a flat instruction stream; nesting of inline styles is carried by the
// per-run closing counts, so there are no close instructions. Build replays
// the stream through a stateful builder that appends sections and runs and
// interns style, card and embed definitions so each distinct definition is
// stored once and referenced by index.
//
//	doc, err := mobiledoc.Render(p)
//	data, err := json.Marshal(doc)
//
// Render holds no state between calls and may be used concurrently on
// independent posts.
package mobiledoc
