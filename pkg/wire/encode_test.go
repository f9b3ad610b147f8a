package wire_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomobiledoc/pkg/mobiledoc"
	"github.com/yaklabco/gomobiledoc/pkg/post"
	"github.com/yaklabco/gomobiledoc/pkg/wire"
)

func sampleDocument(t *testing.T) *mobiledoc.Document {
	t.Helper()

	doc, err := mobiledoc.Render(post.NewPost(
		post.NewMarkupSection("p",
			post.NewTextRun("hi <there>").WithStyles(post.NewStyle("a", map[string]string{"href": "/x"})),
		),
		post.NewCardSection("image-card", post.Payload{"url": "a"}),
	))
	require.NoError(t, err)

	return doc
}

func TestEncode_JSON(t *testing.T) {
	t.Parallel()

	encoded, err := wire.Encode(sampleDocument(t), wire.Options{Format: wire.FormatJSON})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"version":"0.2.0","embeds":[],"cards":[["image-card",{"url":"a"}]],
		  "styles":[["a",[["href","/x"]]]],
		  "sections":[[1,"p",[[0,[0],0,"hi <there>"]]],[10,0]]}`,
		string(encoded.Bytes))
	assert.Contains(t, string(encoded.Bytes), "hi <there>", "HTML must not be escaped")
	assert.Equal(t, len(encoded.Bytes), encoded.RawSize)
	assert.Len(t, encoded.Digest, 64)
}

func TestEncode_JSONIndent(t *testing.T) {
	t.Parallel()

	encoded, err := wire.Encode(sampleDocument(t), wire.Options{Format: wire.FormatJSON, Indent: 2})
	require.NoError(t, err)
	assert.Contains(t, string(encoded.Bytes), "\n  \"version\": \"0.2.0\"")
}

func TestEncode_RoundTripAllCompressions(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)

	want, err := wire.Encode(doc, wire.Options{Format: wire.FormatJSON})
	require.NoError(t, err)
	wantValue, err := wire.DecodeValue(want.Bytes, wire.FormatJSON, wire.CompressionNone)
	require.NoError(t, err)

	formats := []wire.Format{wire.FormatJSON, wire.FormatCBOR}
	compressions := []wire.Compression{
		wire.CompressionNone, wire.CompressionZstd, wire.CompressionLZ4, wire.CompressionXZ,
	}

	for _, format := range formats {
		for _, compression := range compressions {
			t.Run(string(format)+"/"+string(compression), func(t *testing.T) {
				t.Parallel()

				encoded, err := wire.Encode(doc, wire.Options{Format: format, Compression: compression})
				require.NoError(t, err)

				value, err := wire.DecodeValue(encoded.Bytes, format, compression)
				require.NoError(t, err)

				if format == wire.FormatJSON {
					assert.Equal(t, wantValue, value)
					return
				}

				// CBOR keeps integers as integers; compare structure only.
				top, ok := value.(map[string]any)
				require.True(t, ok, "decoded %T", value)
				assert.Equal(t, "0.2.0", top["version"])
				assert.Len(t, top["sections"], 2)
			})
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()

	for _, format := range []wire.Format{wire.FormatJSON, wire.FormatCBOR} {
		first, err := wire.Encode(sampleDocument(t), wire.Options{Format: format, Compression: wire.CompressionZstd})
		require.NoError(t, err)

		second, err := wire.Encode(sampleDocument(t), wire.Options{Format: format, Compression: wire.CompressionZstd})
		require.NoError(t, err)

		assert.True(t, bytes.Equal(first.Bytes, second.Bytes), "format %s", format)
		assert.Equal(t, first.Digest, second.Digest)
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	_, err := wire.Encode(nil, wire.Options{})
	require.Error(t, err)

	_, err = wire.Encode(sampleDocument(t), wire.Options{Format: "xml"})
	require.Error(t, err)

	_, err = wire.Encode(sampleDocument(t), wire.Options{Compression: "brotli"})
	require.Error(t, err)
}

func TestDigest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, wire.Digest([]byte("abc")), wire.Digest([]byte("abc")))
	assert.NotEqual(t, wire.Digest([]byte("abc")), wire.Digest([]byte("abd")))
	// BLAKE3 of the empty input.
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", wire.Digest(nil))
}
