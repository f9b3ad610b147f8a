package wire

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/yaklabco/gomobiledoc/pkg/codec"
	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
)

// Options controls encoding.
type Options struct {
	Format      Format
	Compression Compression

	// Indent pretty-prints JSON output with the given number of spaces.
	// Zero produces compact JSON. Ignored for CBOR.
	Indent int
}

// Encoded is a serialized document.
type Encoded struct {
	// Bytes is the final (possibly compressed) output.
	Bytes []byte

	// Digest is the hex BLAKE3-256 of Bytes.
	Digest string

	// RawSize is the size before compression.
	RawSize int
}

// Encode serializes doc. Output is deterministic: equal documents encode to
// identical bytes and digest.
func Encode(doc *mobiledoc.Document, opts Options) (*Encoded, error) {
	if doc == nil {
		return nil, errors.New("encode: nil document")
	}

	raw, err := marshal(doc, opts)
	if err != nil {
		return nil, err
	}

	out, err := Compress(raw, opts.Compression)
	if err != nil {
		return nil, err
	}

	return &Encoded{
		Bytes:   out,
		Digest:  Digest(out),
		RawSize: len(raw),
	}, nil
}

func marshal(doc *mobiledoc.Document, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON, "":
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		if opts.Indent > 0 {
			encoder.SetIndent("", strings.Repeat(" ", opts.Indent))
		}
		if err := encoder.Encode(doc.Value()); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil

	case FormatCBOR:
		data, err := codec.Marshal(doc.Value())
		if err != nil {
			return nil, fmt.Errorf("encode cbor: %w", err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// Digest returns the hex BLAKE3-256 of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DecodeValue decompresses and parses encoded output back into plain Go
// values (maps, slices, strings, numbers). It does not rebuild a Document.
func DecodeValue(data []byte, format Format, compression Compression) (any, error) {
	raw, err := Decompress(data, compression)
	if err != nil {
		return nil, err
	}

	var value any
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatCBOR:
		if err := codec.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("decode cbor: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return value, nil
}
