package mobiledoc

import "github.com/yaklabco/gomobiledoc/pkg/post"

// Render encodes p into a wire document. It fails with ErrUnknownNodeKind
// for trees containing nil or foreign nodes, and ErrUnencodablePayload when
// a payload holds values with no canonical encoding. No partial document is
// returned on error.
func Render(p *post.Post) (*Document, error) {
	instructions, err := Linearize(p)
	if err != nil {
		return nil, err
	}
	return Build(instructions)
}
