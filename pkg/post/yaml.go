package post

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownType is returned by FromYAML when a section or run declares a
// type outside the supported set.
var ErrUnknownType = errors.New("unknown node type")

// Section and run type names used in YAML post descriptions.
const (
	TypeMarkup = "markup"
	TypeList   = "list"
	TypeImage  = "image"
	TypeCard   = "card"
	TypeText   = "text"
	TypeEmbed  = "embed"
)

type yamlPost struct {
	Sections []yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Type    string         `yaml:"type"`
	Tag     string         `yaml:"tag"`
	Src     string         `yaml:"src"`
	Name    string         `yaml:"name"`
	Payload map[string]any `yaml:"payload"`
	Runs    []yamlRun      `yaml:"runs"`
	Items   []yamlItem     `yaml:"items"`
}

type yamlItem struct {
	Runs []yamlRun `yaml:"runs"`
}

type yamlRun struct {
	Type    string         `yaml:"type"`
	Value   string         `yaml:"value"`
	Name    string         `yaml:"name"`
	Payload map[string]any `yaml:"payload"`
	Closing int            `yaml:"closing"`
	Styles  []yamlStyle    `yaml:"styles"`
}

type yamlStyle struct {
	Tag        string            `yaml:"tag"`
	Attributes map[string]string `yaml:"attributes"`
}

// FromYAML parses a post from its YAML description:
//
//	sections:
//	  - type: markup
//	    tag: p
//	    runs:
//	      - {type: text, value: hi, styles: [{tag: b}]}
//	  - {type: card, name: image-card, payload: {url: a}}
//
// A run without a type is a text run.
func FromYAML(data []byte) (*Post, error) {
	var doc yamlPost
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	result := &Post{Sections: make([]Section, 0, len(doc.Sections))}
	for i, section := range doc.Sections {
		converted, err := section.toSection()
		if err != nil {
			return nil, fmt.Errorf("sections[%d]: %w", i, err)
		}
		result.Sections = append(result.Sections, converted)
	}

	return result, nil
}

func (s yamlSection) toSection() (Section, error) {
	switch s.Type {
	case TypeMarkup:
		runs, err := convertRuns(s.Runs)
		if err != nil {
			return nil, err
		}
		return &MarkupSection{TagName: s.Tag, Runs: runs}, nil

	case TypeList:
		list := &ListSection{TagName: s.Tag, Items: make([]*ListItem, 0, len(s.Items))}
		for i, item := range s.Items {
			runs, err := convertRuns(item.Runs)
			if err != nil {
				return nil, fmt.Errorf("items[%d]: %w", i, err)
			}
			list.Items = append(list.Items, &ListItem{Runs: runs})
		}
		return list, nil

	case TypeImage:
		return &ImageSection{Src: s.Src}, nil

	case TypeCard:
		return &CardSection{Name: s.Name, Payload: s.Payload}, nil

	default:
		return nil, fmt.Errorf("%w: section %q", ErrUnknownType, s.Type)
	}
}

func convertRuns(in []yamlRun) ([]Run, error) {
	runs := make([]Run, 0, len(in))
	for i, run := range in {
		styles := make([]*Style, 0, len(run.Styles))
		for _, style := range run.Styles {
			styles = append(styles, &Style{TagName: style.Tag, Attributes: style.Attributes})
		}

		switch run.Type {
		case TypeText, "":
			runs = append(runs, &TextRun{
				Value:        run.Value,
				ClosingCount: run.Closing,
				OpenedStyles: styles,
			})
		case TypeEmbed:
			runs = append(runs, &EmbedRun{
				Name:         run.Name,
				Value:        run.Value,
				Payload:      run.Payload,
				ClosingCount: run.Closing,
				OpenedStyles: styles,
			})
		default:
			return nil, fmt.Errorf("runs[%d]: %w: run %q", i, ErrUnknownType, run.Type)
		}
	}
	return runs, nil
}
