package post

// NewPost creates a post holding the given sections.
func NewPost(sections ...Section) *Post {
	return &Post{Sections: sections}
}

// Append adds sections to the end of the post and returns it for chaining.
func (p *Post) Append(sections ...Section) *Post {
	p.Sections = append(p.Sections, sections...)
	return p
}

// NewMarkupSection creates a markup section with the given tag.
func NewMarkupSection(tagName string, runs ...Run) *MarkupSection {
	return &MarkupSection{TagName: tagName, Runs: runs}
}

// Append adds runs to the section and returns it for chaining.
func (s *MarkupSection) Append(runs ...Run) *MarkupSection {
	s.Runs = append(s.Runs, runs...)
	return s
}

// NewListSection creates a list section with the given tag ("ul" or "ol").
func NewListSection(tagName string, items ...*ListItem) *ListSection {
	return &ListSection{TagName: tagName, Items: items}
}

// Append adds items to the list and returns it for chaining.
func (s *ListSection) Append(items ...*ListItem) *ListSection {
	s.Items = append(s.Items, items...)
	return s
}

// NewListItem creates a list item holding the given runs.
func NewListItem(runs ...Run) *ListItem {
	return &ListItem{Runs: runs}
}

// NewImageSection creates an image section.
func NewImageSection(src string) *ImageSection {
	return &ImageSection{Src: src}
}

// NewCardSection creates a card section. payload may be nil.
func NewCardSection(name string, payload Payload) *CardSection {
	return &CardSection{Name: name, Payload: payload}
}

// NewTextRun creates an unstyled text run.
func NewTextRun(value string) *TextRun {
	return &TextRun{Value: value}
}

// NewEmbedRun creates an unstyled embed run. payload may be nil.
func NewEmbedRun(name, value string, payload Payload) *EmbedRun {
	return &EmbedRun{Name: name, Value: value, Payload: payload}
}

// WithClosingCount sets the closing count and returns the run for chaining.
func (r *TextRun) WithClosingCount(count int) *TextRun {
	r.ClosingCount = count
	return r
}

// WithStyles appends opened styles and returns the run for chaining.
func (r *TextRun) WithStyles(styles ...*Style) *TextRun {
	r.OpenedStyles = append(r.OpenedStyles, styles...)
	return r
}

// WithClosingCount sets the closing count and returns the run for chaining.
func (r *EmbedRun) WithClosingCount(count int) *EmbedRun {
	r.ClosingCount = count
	return r
}

// WithStyles appends opened styles and returns the run for chaining.
func (r *EmbedRun) WithStyles(styles ...*Style) *EmbedRun {
	r.OpenedStyles = append(r.OpenedStyles, styles...)
	return r
}

// NewStyle creates a style definition. attrs may be nil.
func NewStyle(tagName string, attrs map[string]string) *Style {
	return &Style{TagName: tagName, Attributes: attrs}
}
