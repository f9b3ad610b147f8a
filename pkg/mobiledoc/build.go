package mobiledoc

import (
	"fmt"
)

// Build replays an instruction stream produced by Linearize and assembles the
// wire document. The stream must start with OpOpenPost; every other ordering
// violation is reported as ErrMalformedInstructionSequence.
func Build(instructions []Instruction) (*Document, error) {
	b := newBuilder()

	for i, in := range instructions {
		if err := b.apply(in); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, in.Op, err)
		}
	}

	if b.doc == nil {
		return nil, fmt.Errorf("%w: no %s instruction", ErrMalformedInstructionSequence, OpOpenPost)
	}

	return b.doc, nil
}

// noRef marks an unset handle.
const noRef = -1

// builder is the mutable state threaded through one Build call. The current
// run list, item list and run are handles into doc.Sections rather than
// slice aliases, since appends reallocate the backing arrays.
type builder struct {
	doc *Document

	styleCache map[styleKey]int
	cardCache  map[cardKey]int
	embedCache map[embedKey]int

	// listSection is the index of the list section receiving list items.
	listSection int

	// runSection and runItem locate the run list receiving runs. runItem is
	// noRef when runs go to a markup section.
	runSection int
	runItem    int

	// run is the index, within the current run list, of the run receiving
	// style indexes.
	run int
}

func newBuilder() *builder {
	return &builder{
		listSection: noRef,
		runSection:  noRef,
		runItem:     noRef,
		run:         noRef,
	}
}

func (b *builder) apply(in Instruction) error {
	if b.doc == nil && in.Op != OpOpenPost {
		return fmt.Errorf("%w: no open post", ErrMalformedInstructionSequence)
	}

	switch in.Op {
	case OpOpenPost:
		return b.openPost()
	case OpOpenMarkupSection:
		b.openMarkupSection(in.TagName)
		return nil
	case OpOpenListSection:
		b.openListSection(in.TagName)
		return nil
	case OpOpenListItem:
		return b.openListItem()
	case OpOpenImageSection:
		b.openImageSection(in.Src)
		return nil
	case OpOpenCardSection:
		return b.openCardSection(in)
	case OpOpenTextRun:
		return b.openTextRun(in)
	case OpOpenEmbedRun:
		return b.openEmbedRun(in)
	case OpOpenStyle:
		return b.openStyle(in)
	default:
		return fmt.Errorf("%w: unknown op", ErrMalformedInstructionSequence)
	}
}

func (b *builder) openPost() error {
	if b.doc != nil {
		return fmt.Errorf("%w: post already open", ErrMalformedInstructionSequence)
	}

	b.doc = &Document{
		Version:  Version,
		Embeds:   []EmbedDef{},
		Cards:    []CardDef{},
		Styles:   []StyleDef{},
		Sections: []Section{},
	}
	b.styleCache = make(map[styleKey]int)
	b.cardCache = make(map[cardKey]int)
	b.embedCache = make(map[embedKey]int)

	return nil
}

// appendSection adds a section and clears the run and item scopes.
func (b *builder) appendSection(section Section) int {
	b.doc.Sections = append(b.doc.Sections, section)
	b.listSection = noRef
	b.runSection = noRef
	b.runItem = noRef
	b.run = noRef
	return len(b.doc.Sections) - 1
}

func (b *builder) openMarkupSection(tagName string) {
	index := b.appendSection(Section{Kind: SectionMarkup, TagName: tagName, Runs: []Run{}})
	b.runSection = index
}

func (b *builder) openListSection(tagName string) {
	index := b.appendSection(Section{Kind: SectionList, TagName: tagName, Items: [][]Run{}})
	b.listSection = index
}

func (b *builder) openListItem() error {
	if b.listSection == noRef {
		return fmt.Errorf("%w: list item outside a list section", ErrMalformedInstructionSequence)
	}

	section := &b.doc.Sections[b.listSection]
	section.Items = append(section.Items, []Run{})

	b.runSection = b.listSection
	b.runItem = len(section.Items) - 1
	b.run = noRef

	return nil
}

func (b *builder) openImageSection(src string) {
	b.appendSection(Section{Kind: SectionImage, Src: src})
}

func (b *builder) openCardSection(in Instruction) error {
	owned := copyPayload(in.Payload)
	payload, err := canonicalPayload(owned)
	if err != nil {
		return err
	}

	index := intern(b.cardCache, &b.doc.Cards, cardKey{name: in.Name, payload: payload}, func() CardDef {
		return CardDef{Name: in.Name, Payload: owned}
	})

	b.appendSection(Section{Kind: SectionCard, CardIndex: index})
	return nil
}

func (b *builder) openTextRun(in Instruction) error {
	return b.appendRun(Run{
		Kind:         ContentText,
		StyleIndexes: []int{},
		ClosingCount: in.ClosingCount,
		Text:         in.Value,
	})
}

func (b *builder) openEmbedRun(in Instruction) error {
	if b.runSection == noRef {
		return fmt.Errorf("%w: run outside a section", ErrMalformedInstructionSequence)
	}

	owned := copyPayload(in.Payload)
	payload, err := canonicalPayload(owned)
	if err != nil {
		return err
	}

	key := embedKey{name: in.Name, value: in.Value, payload: payload}
	index := intern(b.embedCache, &b.doc.Embeds, key, func() EmbedDef {
		return EmbedDef{Name: in.Name, Value: in.Value, Payload: owned}
	})

	return b.appendRun(Run{
		Kind:         ContentEmbed,
		StyleIndexes: []int{},
		ClosingCount: in.ClosingCount,
		EmbedIndex:   index,
	})
}

func (b *builder) appendRun(run Run) error {
	runs := b.currentRuns()
	if runs == nil {
		return fmt.Errorf("%w: run outside a section", ErrMalformedInstructionSequence)
	}

	*runs = append(*runs, run)
	b.run = len(*runs) - 1

	return nil
}

func (b *builder) openStyle(in Instruction) error {
	runs := b.currentRuns()
	if runs == nil || b.run == noRef {
		return fmt.Errorf("%w: style with no open run", ErrMalformedInstructionSequence)
	}

	attrs, err := canonicalAttrs(in.Attributes)
	if err != nil {
		return err
	}

	index := intern(b.styleCache, &b.doc.Styles, styleKey{tagName: in.TagName, attrs: attrs}, func() StyleDef {
		return StyleDef{TagName: in.TagName, Attributes: in.Attributes}
	})

	run := &(*runs)[b.run]
	run.StyleIndexes = append(run.StyleIndexes, index)

	return nil
}

// currentRuns resolves the run list handle. The pointer is only valid until
// the next append to doc.Sections.
func (b *builder) currentRuns() *[]Run {
	if b.runSection == noRef {
		return nil
	}

	section := &b.doc.Sections[b.runSection]
	if b.runItem == noRef {
		return &section.Runs
	}
	return &section.Items[b.runItem]
}
