// Package wire serializes rendered mobiledoc documents to bytes: JSON or
// deterministic CBOR, optionally compressed, with a BLAKE3 content digest.
package wire

import (
	"fmt"
	"strings"
)

// Format is the serialization of the document value.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// Compression is the optional compression applied after serialization.
type Compression string

// Supported compressions.
const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
	CompressionXZ   Compression = "xz"
)

// ParseFormat parses a format name. The empty string selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCBOR:
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: json, cbor)", name)
	}
}

// ParseCompression parses a compression name. The empty string selects none.
func ParseCompression(name string) (Compression, error) {
	switch Compression(strings.ToLower(name)) {
	case CompressionNone, "":
		return CompressionNone, nil
	case CompressionZstd:
		return CompressionZstd, nil
	case CompressionLZ4:
		return CompressionLZ4, nil
	case CompressionXZ:
		return CompressionXZ, nil
	default:
		return "", fmt.Errorf("unknown compression %q (valid: none, zstd, lz4, xz)", name)
	}
}

// IsBinary reports whether output in this format and compression is not
// printable text.
func IsBinary(format Format, compression Compression) bool {
	return format == FormatCBOR || (compression != CompressionNone && compression != "")
}

// Extension returns the file extension for an encoded document,
// e.g. ".mobiledoc.json" or ".mobiledoc.cbor.zst".
func Extension(format Format, compression Compression) string {
	ext := ".mobiledoc." + string(format)
	switch compression {
	case CompressionZstd:
		ext += ".zst"
	case CompressionLZ4:
		ext += ".lz4"
	case CompressionXZ:
		ext += ".xz"
	case CompressionNone:
	}
	return ext
}
