// Package langdetect names the language of code card bodies, either from a
// fence info string or by sniffing the code itself with go-enry.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined. Code cards with an
// unknown language carry no language key in their payload.
const Unknown = ""

// classifierCandidates bounds the enry classifier to languages commonly found
// in posts.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// sniffRule matches content that is almost certainly one language.
type sniffRule struct {
	lang  string
	match func(raw, trimmed []byte) bool
}

// Rules run in order; earlier rules are more specific.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sniffRules = []sniffRule{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", looksLikePython},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(raw, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(raw, []byte("\nFROM ")) && bytes.Contains(raw, []byte("\nRUN "))) ||
			(bytes.Contains(raw, []byte("WORKDIR ")) && bytes.Contains(raw, []byte("COPY ")))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(verb)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(raw, _ []byte) bool {
		return containsAny(raw, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(raw, _ []byte) bool {
		return containsAny(raw, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", looksLikeYAML},
}

// FromInfo resolves the first word of a fence info string to a language tag.
// Known aliases map to their canonical name ("sh" and "shell" become "bash",
// "golang" becomes "go"); unrecognized words pass through lowercased.
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return Unknown
	}

	word := strings.ToLower(strings.Trim(fields[0], "{}."))
	if word == "" {
		return Unknown
	}

	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang)
	}
	return word
}

// Detect guesses the language of a code body. It returns Unknown when the
// content is empty or no guess is confident.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, rule := range sniffRules {
		if rule.match(content, trimmed) {
			return rule.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Unknown
}

// Resolve returns the language named by info, or when info names none and
// sniff is set, the language detected from content.
func Resolve(info string, content []byte, sniff bool) string {
	if lang := FromInfo(info); lang != Unknown {
		return lang
	}
	if !sniff {
		return Unknown
	}
	return Detect(content)
}

func looksLikePython(raw, trimmed []byte) bool {
	if bytes.Contains(raw, []byte("def ")) && bytes.Contains(raw, []byte("):")) {
		return true
	}
	if containsAny(raw, "__name__", "__main__") {
		return true
	}
	if bytes.Contains(raw, []byte("import ")) && !bytes.Contains(raw, []byte("import (")) {
		return bytes.Contains(raw, []byte("from ")) || bytes.HasPrefix(trimmed, []byte("import "))
	}
	return false
}

// looksLikeYAML counts "key: value" lines and root list items.
func looksLikeYAML(raw, _ []byte) bool {
	count := 0
	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

func containsAny(content []byte, needles ...string) bool {
	for _, needle := range needles {
		if bytes.Contains(content, []byte(needle)) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
