package mobiledoc

import (
	"fmt"

	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// Linearize flattens p into a pre-order instruction stream. Each node
// contributes exactly one instruction, emitted before those of its children.
// A run's style instructions directly follow the run's own instruction.
//
// The only error is ErrUnknownNodeKind; the tree is otherwise taken as-is.
func Linearize(p *post.Post) ([]Instruction, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil post", ErrUnknownNodeKind)
	}

	lin := &linearizer{}
	lin.emit(Instruction{Op: OpOpenPost})

	for i, section := range p.Sections {
		if err := lin.section(section); err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
	}

	return lin.out, nil
}

type linearizer struct {
	out []Instruction
}

func (l *linearizer) emit(in Instruction) {
	l.out = append(l.out, in)
}

func (l *linearizer) section(section post.Section) error {
	switch node := section.(type) {
	case *post.MarkupSection:
		if node == nil {
			break
		}
		l.emit(Instruction{Op: OpOpenMarkupSection, TagName: node.TagName})
		return l.runs(node.Runs)

	case *post.ListSection:
		if node == nil {
			break
		}
		l.emit(Instruction{Op: OpOpenListSection, TagName: node.TagName})
		for i, item := range node.Items {
			if item == nil {
				return fmt.Errorf("items[%d]: %w: nil list item", i, ErrUnknownNodeKind)
			}
			l.emit(Instruction{Op: OpOpenListItem})
			if err := l.runs(item.Runs); err != nil {
				return fmt.Errorf("items[%d]: %w", i, err)
			}
		}
		return nil

	case *post.ImageSection:
		if node == nil {
			break
		}
		l.emit(Instruction{Op: OpOpenImageSection, Src: node.Src})
		return nil

	case *post.CardSection:
		if node == nil {
			break
		}
		l.emit(Instruction{Op: OpOpenCardSection, Name: node.Name, Payload: node.Payload})
		return nil
	}

	return fmt.Errorf("%w: section %T", ErrUnknownNodeKind, section)
}

func (l *linearizer) runs(runs []post.Run) error {
	for i, run := range runs {
		if err := l.run(run); err != nil {
			return fmt.Errorf("runs[%d]: %w", i, err)
		}
	}
	return nil
}

func (l *linearizer) run(run post.Run) error {
	switch node := run.(type) {
	case *post.TextRun:
		if node == nil {
			break
		}
		l.emit(Instruction{
			Op:           OpOpenTextRun,
			ClosingCount: node.ClosingCount,
			Value:        node.Value,
		})
		return l.styles(node.OpenedStyles)

	case *post.EmbedRun:
		if node == nil {
			break
		}
		l.emit(Instruction{
			Op:           OpOpenEmbedRun,
			ClosingCount: node.ClosingCount,
			Name:         node.Name,
			Value:        node.Value,
			Payload:      node.Payload,
		})
		return l.styles(node.OpenedStyles)
	}

	return fmt.Errorf("%w: run %T", ErrUnknownNodeKind, run)
}

func (l *linearizer) styles(styles []*post.Style) error {
	for i, style := range styles {
		if style == nil {
			return fmt.Errorf("styles[%d]: %w: nil style", i, ErrUnknownNodeKind)
		}
		l.emit(Instruction{
			Op:         OpOpenStyle,
			TagName:    style.TagName,
			Attributes: post.SortedPairs(style.Attributes),
		})
	}
	return nil
}
