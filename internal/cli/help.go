package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomobiledoc/internal/ui/pretty"
)

// HelpStyles are the styles of the help and usage templates. They reuse the
// pretty palette so help matches the report output.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles derives help styles from pretty.NewStyles.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	s := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Command:     s.Info,
		Heading:     s.Warning,
		Subcommand:  s.TableWrittenRow,
		Flag:        s.TableDryRunRow,
		Description: s.Message,
		Example:     s.Dim,
		Dim:         s.Dim,
	}
}

// HelpFormatter renders cobra help through text/template with lipgloss.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter resolves colorMode against writer and returns a formatter.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.Command.Render,
		"heading":                 h.styles.Heading.Render,
		"subcommand":              h.styles.Subcommand.Render,
		"example":                 h.styles.Example.Render,
		"dim":                     h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the styled help and usage on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages styles pflag's usage block: flag names, type hints and
// descriptions.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -o, --output-dir string   description" line.
// The name and description are separated by the first run of two or more
// spaces after the indent.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	gap := strings.Index(trimmed, "  ")
	if trimmed == "" || gap < 0 {
		return line
	}

	indent := line[:len(line)-len(trimmed)]
	names := trimmed[:gap]
	desc := strings.TrimLeft(trimmed[gap:], " ")

	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.Dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.styles.Flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + h.styles.Description.Render(desc)
}

func rpad(str string, padding int) string {
	return str + strings.Repeat(" ", max(0, padding-len(str)))
}

func trimTrailingWhitespaces(s string) string {
	var b strings.Builder
	for line := range strings.Lines(s) {
		body, newline := strings.CutSuffix(line, "\n")
		b.WriteString(strings.TrimRight(body, " \t"))
		if newline {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
