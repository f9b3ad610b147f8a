// Package codec holds the deterministic CBOR configuration shared by the
// interning keys in pkg/mobiledoc and the binary wire output in pkg/wire.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The same
// logical value always produces identical bytes, which is what makes the
// encoding usable as a map key.
package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

//nolint:gochecknoglobals // Immutable modes built once at init.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Wire documents only use string map keys; decode any-typed maps
		// as map[string]any so results compare cleanly with JSON decodes.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
