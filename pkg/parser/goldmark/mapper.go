package goldmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomobiledoc/pkg/langdetect"
	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// Section tags, card names and embed names produced by the importer.
const (
	tagParagraph  = "p"
	tagBlockquote = "blockquote"
	tagBulletList = "ul"
	tagOrderList  = "ol"

	CardCode  = "code-card"
	CardHR    = "hr-card"
	CardHTML  = "html-card"
	CardTable = "table-card"

	EmbedImage    = "image-embed"
	EmbedCheckbox = "checkbox-embed"
)

// mapper converts a goldmark AST into post sections.
type mapper struct {
	ctx            context.Context //nolint:containedctx // Scoped to a single Parse call.
	content        []byte
	detectLanguage bool
	sections       []post.Section
}

func newMapper(ctx context.Context, content []byte, detectLanguage bool) *mapper {
	return &mapper{ctx: ctx, content: content, detectLanguage: detectLanguage}
}

// mapBlocks maps every block child of parent. Paragraphs become markup
// sections tagged paraTag.
func (m *mapper) mapBlocks(parent ast.Node, paraTag string) error {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := m.ctx.Err(); err != nil {
			return fmt.Errorf("parse cancelled: %w", err)
		}
		if err := m.mapBlock(child, paraTag); err != nil {
			return err
		}
	}
	return nil
}

// mapBlock converts a single goldmark block node.
func (m *mapper) mapBlock(node ast.Node, paraTag string) error {
	switch gmn := node.(type) {
	case *ast.Heading:
		m.emit(post.NewMarkupSection(fmt.Sprintf("h%d", gmn.Level), m.inlineRuns(gmn)...))

	case *ast.Paragraph, *ast.TextBlock:
		m.mapParagraph(node, paraTag)

	case *ast.Blockquote:
		return m.mapBlocks(gmn, tagBlockquote)

	case *ast.List:
		return m.mapList(gmn)

	case *ast.FencedCodeBlock:
		info := ""
		if gmn.Info != nil {
			info = string(gmn.Info.Segment.Value(m.content))
		}
		m.emit(m.codeCard(info, m.blockText(gmn)))

	case *ast.CodeBlock:
		m.emit(m.codeCard("", m.blockText(gmn)))

	case *ast.ThematicBreak:
		m.emit(post.NewCardSection(CardHR, nil))

	case *ast.HTMLBlock:
		html := m.blockText(gmn)
		if gmn.HasClosure() {
			html += string(gmn.ClosureLine.Value(m.content))
		}
		m.emit(post.NewCardSection(CardHTML, post.Payload{"html": html}))

	case *east.Table:
		m.emit(m.tableCard(gmn))

	default:
		// Unknown containers are flattened into their children.
		return m.mapBlocks(node, paraTag)
	}

	return nil
}

func (m *mapper) emit(section post.Section) {
	m.sections = append(m.sections, section)
}

// mapParagraph emits a markup section, or an image section when the
// paragraph holds nothing but one image.
func (m *mapper) mapParagraph(node ast.Node, tag string) {
	if img, ok := node.FirstChild().(*ast.Image); ok && node.ChildCount() == 1 {
		m.emit(post.NewImageSection(string(img.Destination)))
		return
	}

	runs := m.inlineRuns(node)
	if len(runs) == 0 {
		return
	}
	m.emit(post.NewMarkupSection(tag, runs...))
}

// mapList emits one list section. Block content inside items other than
// text (nested lists, code, quotes) follows the list as separate sections.
func (m *mapper) mapList(list *ast.List) error {
	tag := tagBulletList
	if list.IsOrdered() {
		tag = tagOrderList
	}

	section := post.NewListSection(tag)
	builder := post.NewInlineBuilder()
	var deferred []ast.Node

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		builder.Reset()
		wrote := false

		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if wrote {
					builder.Text("\n")
				}
				m.walkInline(child, builder)
				wrote = true
			default:
				deferred = append(deferred, child)
			}
		}

		section.Append(post.NewListItem(builder.Runs()...))
	}

	m.emit(section)

	for _, node := range deferred {
		if err := m.mapBlock(node, tagParagraph); err != nil {
			return err
		}
	}
	return nil
}

// codeCard builds a code card, naming the language from the info string or
// the code itself.
func (m *mapper) codeCard(info, code string) *post.CardSection {
	payload := post.Payload{"code": code}
	if lang := langdetect.Resolve(info, []byte(code), m.detectLanguage); lang != langdetect.Unknown {
		payload["language"] = lang
	}
	return post.NewCardSection(CardCode, payload)
}

// tableCard flattens a GFM table to plain-text cells.
func (m *mapper) tableCard(table *east.Table) *post.CardSection {
	var header []any
	rows := []any{}

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]any, 0, row.ChildCount())
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, m.plainText(cell))
		}
		if _, ok := row.(*east.TableHeader); ok {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	return post.NewCardSection(CardTable, post.Payload{"header": header, "rows": rows})
}

// inlineRuns flattens the inline children of node into runs.
func (m *mapper) inlineRuns(node ast.Node) []post.Run {
	builder := post.NewInlineBuilder()
	m.walkInline(node, builder)
	return builder.Runs()
}

// walkInline reports the inline children of parent to builder.
func (m *mapper) walkInline(parent ast.Node, builder *post.InlineBuilder) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Text:
			builder.Text(string(gmn.Segment.Value(m.content)))
			switch {
			case gmn.HardLineBreak():
				builder.Text("\n")
			case gmn.SoftLineBreak():
				builder.Text(" ")
			}

		case *ast.String:
			builder.Text(string(gmn.Value))

		case *ast.Emphasis:
			tag := "em"
			if gmn.Level == 2 {
				tag = "strong"
			}
			m.wrap(builder, post.NewStyle(tag, nil), gmn)

		case *ast.CodeSpan:
			m.wrap(builder, post.NewStyle("code", nil), gmn)

		case *ast.Link:
			attrs := map[string]string{"href": string(gmn.Destination)}
			if len(gmn.Title) > 0 {
				attrs["title"] = string(gmn.Title)
			}
			m.wrap(builder, post.NewStyle("a", attrs), gmn)

		case *ast.AutoLink:
			builder.Open(post.NewStyle("a", map[string]string{"href": string(gmn.URL(m.content))}))
			builder.Text(string(gmn.Label(m.content)))
			builder.Close()

		case *ast.Image:
			payload := post.Payload{"src": string(gmn.Destination)}
			if len(gmn.Title) > 0 {
				payload["title"] = string(gmn.Title)
			}
			builder.Embed(EmbedImage, m.plainText(gmn), payload)

		case *ast.RawHTML:
			builder.Text(m.segmentsText(gmn))

		case *east.Strikethrough:
			m.wrap(builder, post.NewStyle("s", nil), gmn)

		case *east.TaskCheckBox:
			builder.Embed(EmbedCheckbox, "", post.Payload{"checked": gmn.IsChecked})

		default:
			m.walkInline(child, builder)
		}
	}
}

func (m *mapper) wrap(builder *post.InlineBuilder, style *post.Style, node ast.Node) {
	builder.Open(style)
	m.walkInline(node, builder)
	builder.Close()
}

// plainText concatenates the text beneath node, dropping markup.
func (m *mapper) plainText(node ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(m.content))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.Label(m.content))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// blockText joins the raw source lines of a block.
func (m *mapper) blockText(node ast.Node) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		sb.Write(segment.Value(m.content))
	}
	return sb.String()
}

func (m *mapper) segmentsText(raw *ast.RawHTML) string {
	var sb strings.Builder
	for i := range raw.Segments.Len() {
		segment := raw.Segments.At(i)
		sb.Write(segment.Value(m.content))
	}
	return sb.String()
}
