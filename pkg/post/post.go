// Package post provides the in-memory rich-text document model that
// gomobiledoc encodes. A Post is an ordered list of sections; markup sections
// and list items hold flat run sequences whose inline styling is expressed as
// per-run open lists and closing counts rather than nested nodes.
package post

// Post is the root of a document tree.
type Post struct {
	Sections []Section
}

// Section is one of MarkupSection, ListSection, ImageSection or CardSection.
// The set is closed: only types in this package implement it.
type Section interface {
	isSection()
}

// MarkupSection is a block of inline runs wrapped in a single tag (p, h1, blockquote...).
type MarkupSection struct {
	TagName string
	Runs    []Run
}

// ListSection is an ordered or unordered list.
type ListSection struct {
	TagName string
	Items   []*ListItem
}

// ListItem holds the runs of a single list entry.
type ListItem struct {
	Runs []Run
}

// ImageSection is a standalone image.
type ImageSection struct {
	Src string
}

// CardSection is an embedded block-level object identified by name.
type CardSection struct {
	Name    string
	Payload Payload
}

func (*MarkupSection) isSection() {}
func (*ListSection) isSection()   {}
func (*ImageSection) isSection()  {}
func (*CardSection) isSection()   {}

// Run is one of TextRun or EmbedRun.
type Run interface {
	isRun()
}

// TextRun is a span of text.
type TextRun struct {
	Value string

	// ClosingCount is the number of open style spans closed immediately
	// before OpenedStyles are pushed.
	ClosingCount int

	OpenedStyles []*Style
}

// EmbedRun is an inline embedded object (mention, inline image, checkbox...).
type EmbedRun struct {
	Name         string
	Value        string
	Payload      Payload
	ClosingCount int
	OpenedStyles []*Style
}

func (*TextRun) isRun()  {}
func (*EmbedRun) isRun() {}

// Style is an inline formatting span definition.
type Style struct {
	TagName    string
	Attributes map[string]string
}

// Payload carries the free-form data of cards and embeds.
// A nil or empty payload is treated as absent.
type Payload map[string]any

// IsEmpty reports whether the payload carries no data.
func (p Payload) IsEmpty() bool {
	return len(p) == 0
}
