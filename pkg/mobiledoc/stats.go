package mobiledoc

// Stats summarizes the contents of a wire document.
type Stats struct {
	Sections       int
	MarkupSections int
	ListSections   int
	ListItems      int
	ImageSections  int
	CardSections   int

	TextRuns  int
	EmbedRuns int

	// Table sizes.
	Styles int
	Cards  int
	Embeds int

	// References into each table.
	StyleRefs int
	CardRefs  int
	EmbedRefs int
}

// Runs returns the total number of runs.
func (s Stats) Runs() int {
	return s.TextRuns + s.EmbedRuns
}

// Deduplicated returns how many definition references were served by an
// existing table entry instead of a new one.
func (s Stats) Deduplicated() int {
	return (s.StyleRefs - s.Styles) + (s.CardRefs - s.Cards) + (s.EmbedRefs - s.Embeds)
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Sections += other.Sections
	s.MarkupSections += other.MarkupSections
	s.ListSections += other.ListSections
	s.ListItems += other.ListItems
	s.ImageSections += other.ImageSections
	s.CardSections += other.CardSections
	s.TextRuns += other.TextRuns
	s.EmbedRuns += other.EmbedRuns
	s.Styles += other.Styles
	s.Cards += other.Cards
	s.Embeds += other.Embeds
	s.StyleRefs += other.StyleRefs
	s.CardRefs += other.CardRefs
	s.EmbedRefs += other.EmbedRefs
}

// Stats counts the sections, runs, table entries and references of d.
func (d *Document) Stats() Stats {
	stats := Stats{
		Sections: len(d.Sections),
		Styles:   len(d.Styles),
		Cards:    len(d.Cards),
		Embeds:   len(d.Embeds),
	}

	countRuns := func(runs []Run) {
		for _, run := range runs {
			stats.StyleRefs += len(run.StyleIndexes)
			if run.Kind == ContentEmbed {
				stats.EmbedRuns++
				stats.EmbedRefs++
			} else {
				stats.TextRuns++
			}
		}
	}

	for _, section := range d.Sections {
		switch section.Kind {
		case SectionMarkup:
			stats.MarkupSections++
			countRuns(section.Runs)
		case SectionList:
			stats.ListSections++
			stats.ListItems += len(section.Items)
			for _, item := range section.Items {
				countRuns(item)
			}
		case SectionImage:
			stats.ImageSections++
		case SectionCard:
			stats.CardSections++
			stats.CardRefs++
		}
	}

	return stats
}
