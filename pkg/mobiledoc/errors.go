package mobiledoc

import "errors"

var (
	// ErrUnknownNodeKind is returned when the tree contains a nil node or a
	// node whose type is outside the post package's closed variant set.
	ErrUnknownNodeKind = errors.New("unknown node kind")

	// ErrMalformedInstructionSequence is returned when an instruction arrives
	// in a state where it cannot apply, or carries an unknown op.
	ErrMalformedInstructionSequence = errors.New("malformed instruction sequence")

	// ErrUnencodablePayload is returned when attributes or a card/embed
	// payload cannot be canonicalized for interning.
	ErrUnencodablePayload = errors.New("unencodable payload")
)
