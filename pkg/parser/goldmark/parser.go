// Package goldmark builds post trees from Markdown parsed by goldmark.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomobiledoc/pkg/post"
)

// Markdown flavors accepted by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser turns Markdown into posts. It is safe for concurrent use.
type Parser struct {
	flavor         string
	detectLanguage bool
	blocks         parser.Parser
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguageDetection turns guessing the language of fenced code without
// an info string on or off. It is on by default.
func WithLanguageDetection(enabled bool) Option {
	return func(p *Parser) { p.detectLanguage = enabled }
}

// New returns a Parser for flavor. Unknown flavors fall back to CommonMark;
// GFM adds tables, strikethrough, autolinks and task lists.
func New(flavor string, opts ...Option) *Parser {
	var extensions []goldmark.Extender
	if flavor == FlavorGFM {
		extensions = append(extensions, extension.GFM)
	} else {
		flavor = FlavorCommonMark
	}

	p := &Parser{
		flavor:         flavor,
		detectLanguage: true,
		blocks:         goldmark.New(goldmark.WithExtensions(extensions...)).Parser(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Flavor returns the flavor in effect.
func (p *Parser) Flavor() string { return p.flavor }

// Parse converts content into a post. Cancellation is checked before and
// after goldmark runs and while sections are mapped.
func (p *Parser) Parse(ctx context.Context, content []byte) (*post.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root := p.blocks.Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(ctx, content, p.detectLanguage)
	if err := m.mapBlocks(root, tagParagraph); err != nil {
		return nil, err
	}
	return post.NewPost(m.sections...), nil
}
