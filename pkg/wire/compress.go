package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// zstd encoders and decoders are safe for concurrent use with
// EncodeAll/DecodeAll.
//
//nolint:gochecknoglobals // Shared codec state built once at init.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("wire: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("wire: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress compresses data with the given algorithm. Each output is a
// self-describing stream (zstd frame, lz4 frame, xz stream) that the
// standard command-line tools can read.
func Compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone, "":
		return data, nil

	case CompressionZstd:
		return zstdEncoder.EncodeAll(data, nil), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		writer := lz4.NewWriter(&buf)
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("lz4 close: %w", err)
		}
		return buf.Bytes(), nil

	case CompressionXZ:
		var buf bytes.Buffer
		writer, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("xz writer: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("xz compress: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("xz close: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}
}

// Decompress reverses Compress.
func Decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone, "":
		return data, nil

	case CompressionZstd:
		out, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil

	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return out, nil

	case CompressionXZ:
		reader, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		out, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("xz decompress: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}
}
