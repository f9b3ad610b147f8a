package post

// InlineBuilder flattens nested inline markup into a run sequence.
//
// Callers report the nested structure as it is walked: Open when entering a
// styled span, Close when leaving it, and Text or Embed for each leaf. The
// builder tracks the implicit open-style stack and records, on each emitted
// run, how many spans were closed since the previous run and which spans were
// opened. Spans that enclose no leaf are dropped.
//
// Open and Close calls must be balanced and properly nested.
type InlineBuilder struct {
	runs []Run

	// depth is the number of styles currently open on emitted runs.
	depth int

	// pendingOpen holds styles entered since the last leaf.
	pendingOpen []*Style

	// pendingClose counts emitted styles left since the last leaf.
	pendingClose int
}

// NewInlineBuilder creates an empty InlineBuilder.
func NewInlineBuilder() *InlineBuilder {
	return &InlineBuilder{}
}

// Open enters a styled span.
func (b *InlineBuilder) Open(style *Style) {
	b.pendingOpen = append(b.pendingOpen, style)
}

// Close leaves the innermost open span.
func (b *InlineBuilder) Close() {
	if n := len(b.pendingOpen); n > 0 {
		b.pendingOpen = b.pendingOpen[:n-1]
		return
	}
	if b.pendingClose < b.depth {
		b.pendingClose++
	}
}

// Text emits a text run. Adjacent text with no style change is merged into
// the previous run.
func (b *InlineBuilder) Text(value string) {
	if value == "" {
		return
	}
	if len(b.pendingOpen) == 0 && b.pendingClose == 0 && len(b.runs) > 0 {
		if last, ok := b.runs[len(b.runs)-1].(*TextRun); ok {
			last.Value += value
			return
		}
	}

	run := &TextRun{Value: value}
	run.ClosingCount, run.OpenedStyles = b.flush()
	b.runs = append(b.runs, run)
}

// Embed emits an embed run.
func (b *InlineBuilder) Embed(name, value string, payload Payload) {
	run := &EmbedRun{Name: name, Value: value, Payload: payload}
	run.ClosingCount, run.OpenedStyles = b.flush()
	b.runs = append(b.runs, run)
}

// Runs returns the runs emitted so far.
func (b *InlineBuilder) Runs() []Run {
	return b.runs
}

// Reset discards all state so the builder can be reused for another section.
func (b *InlineBuilder) Reset() {
	b.runs = nil
	b.depth = 0
	b.pendingOpen = nil
	b.pendingClose = 0
}

func (b *InlineBuilder) flush() (int, []*Style) {
	closing := b.pendingClose
	opened := b.pendingOpen

	b.depth += len(opened) - closing
	b.pendingClose = 0
	b.pendingOpen = nil

	return closing, opened
}
