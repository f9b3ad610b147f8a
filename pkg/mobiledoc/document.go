package mobiledoc

import (
	"encoding/json"

	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// Version is the wire format revision produced by this package.
const Version = "0.2.0"

// SectionKind is the numeric tag leading every section tuple.
type SectionKind int

// Section kinds.
const (
	SectionMarkup SectionKind = 1
	SectionImage  SectionKind = 2
	SectionList   SectionKind = 3
	SectionCard   SectionKind = 10
)

// String returns a human-readable name for the section kind.
func (k SectionKind) String() string {
	switch k {
	case SectionMarkup:
		return "markup"
	case SectionImage:
		return "image"
	case SectionList:
		return "list"
	case SectionCard:
		return "card"
	default:
		return "unknown"
	}
}

// ContentKind is the numeric tag leading every run tuple.
type ContentKind int

// Content kinds.
const (
	ContentText  ContentKind = 0
	ContentEmbed ContentKind = 1
)

// String returns a human-readable name for the content kind.
func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentEmbed:
		return "embed"
	default:
		return "unknown"
	}
}

// Document is a rendered wire document. Definitions in Embeds, Cards and
// Styles are referenced by their position.
type Document struct {
	Version  string
	Embeds   []EmbedDef
	Cards    []CardDef
	Styles   []StyleDef
	Sections []Section
}

// StyleDef is an interned inline style definition.
type StyleDef struct {
	TagName    string
	Attributes []post.Pair
}

// CardDef is an interned card definition.
type CardDef struct {
	Name    string
	Payload post.Payload
}

// EmbedDef is an interned embed definition.
type EmbedDef struct {
	Name    string
	Value   string
	Payload post.Payload
}

// Section is one entry of the section table. Which fields are meaningful
// depends on Kind:
//
//	SectionMarkup  TagName, Runs
//	SectionImage   Src
//	SectionList    TagName, Items
//	SectionCard    CardIndex
type Section struct {
	Kind      SectionKind
	TagName   string
	Src       string
	Runs      []Run
	Items     [][]Run
	CardIndex int
}

// Run is one inline entry of a markup section or list item. Text is set for
// ContentText runs, EmbedIndex for ContentEmbed runs.
type Run struct {
	Kind         ContentKind
	StyleIndexes []int
	ClosingCount int
	Text         string
	EmbedIndex   int
}

// wireDocument fixes the field order of the top-level object.
type wireDocument struct {
	Version  string `json:"version" cbor:"version"`
	Embeds   []any  `json:"embeds" cbor:"embeds"`
	Cards    []any  `json:"cards" cbor:"cards"`
	Styles   []any  `json:"styles" cbor:"styles"`
	Sections []any  `json:"sections" cbor:"sections"`
}

// Value lowers the document to plain Go values (strings, ints, slices and
// maps) shaped exactly like the wire format, suitable for any encoder.
func (d *Document) Value() any {
	out := wireDocument{
		Version:  d.Version,
		Embeds:   make([]any, 0, len(d.Embeds)),
		Cards:    make([]any, 0, len(d.Cards)),
		Styles:   make([]any, 0, len(d.Styles)),
		Sections: make([]any, 0, len(d.Sections)),
	}

	for _, def := range d.Embeds {
		out.Embeds = append(out.Embeds, def.Tuple())
	}
	for _, def := range d.Cards {
		out.Cards = append(out.Cards, def.Tuple())
	}
	for _, def := range d.Styles {
		out.Styles = append(out.Styles, def.Tuple())
	}
	for _, section := range d.Sections {
		out.Sections = append(out.Sections, section.Tuple())
	}

	return out
}

// MarshalJSON encodes the document in its array-based wire shape.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Value())
}

// Tuple returns [tagName] or [tagName, [[key, value], ...]].
func (s StyleDef) Tuple() []any {
	if len(s.Attributes) == 0 {
		return []any{s.TagName}
	}

	pairs := make([]any, 0, len(s.Attributes))
	for _, pair := range s.Attributes {
		pairs = append(pairs, []any{pair.Key(), pair.Value()})
	}
	return []any{s.TagName, pairs}
}

// Tuple returns [name] or [name, payload].
func (c CardDef) Tuple() []any {
	if c.Payload.IsEmpty() {
		return []any{c.Name}
	}
	return []any{c.Name, map[string]any(c.Payload)}
}

// Tuple returns [name, value] or [name, value, payload].
func (e EmbedDef) Tuple() []any {
	if e.Payload.IsEmpty() {
		return []any{e.Name, e.Value}
	}
	return []any{e.Name, e.Value, map[string]any(e.Payload)}
}

// Tuple returns the section's array form.
func (s Section) Tuple() []any {
	switch s.Kind {
	case SectionMarkup:
		return []any{int(s.Kind), s.TagName, runTuples(s.Runs)}
	case SectionImage:
		return []any{int(s.Kind), s.Src}
	case SectionList:
		items := make([]any, 0, len(s.Items))
		for _, item := range s.Items {
			items = append(items, runTuples(item))
		}
		return []any{int(s.Kind), s.TagName, items}
	case SectionCard:
		return []any{int(s.Kind), s.CardIndex}
	default:
		return []any{int(s.Kind)}
	}
}

// Tuple returns [kind, [styleIndex...], closingCount, text|embedIndex].
func (r Run) Tuple() []any {
	styles := make([]any, 0, len(r.StyleIndexes))
	for _, index := range r.StyleIndexes {
		styles = append(styles, index)
	}

	if r.Kind == ContentEmbed {
		return []any{int(r.Kind), styles, r.ClosingCount, r.EmbedIndex}
	}
	return []any{int(r.Kind), styles, r.ClosingCount, r.Text}
}

func runTuples(runs []Run) []any {
	out := make([]any, 0, len(runs))
	for _, run := range runs {
		out = append(out, run.Tuple())
	}
	return out
}
