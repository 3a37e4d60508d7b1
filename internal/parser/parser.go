// Package parser extracts structure from journal day files: the day
// title, the section headings, and the body text that gets indexed for
// search.
package parser

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var sectionRe = regexp.MustCompile(`(?m)^## +(.+?) *$`)

// Day is the parsed form of one journal file.
type Day struct {
	// Title is the frontmatter "title" if present, otherwise the first
	// H1 heading. Generated day files have neither, so it is usually
	// empty; hand-edited files may set it.
	Title string
	// Sections lists the "##" headings in file order, deduplicated.
	// These are the markers the write engine keys idempotence on.
	Sections []string
	// Body is the markdown content without frontmatter.
	Body string
}

// Parse extracts the day structure from raw markdown bytes. It never
// fails: malformed frontmatter is treated as body text.
func Parse(data []byte) *Day {
	fm, body := splitFrontmatter(data)
	return &Day{
		Title:    deriveTitle(fm, body),
		Sections: extractSections(body),
		Body:     body,
	}
}

// HasSection reports whether the parsed day contains the given heading.
func (d *Day) HasSection(marker string) bool {
	want := strings.TrimSpace(strings.TrimPrefix(marker, "##"))
	for _, s := range d.Sections {
		if s == want {
			return true
		}
	}
	return false
}

// splitFrontmatter separates YAML frontmatter (between leading ---
// delimiters) from the markdown body. Generated files carry none; the
// case exists for hand-edited days.
func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML is body text, not an error.
		return nil, string(data)
	}
	return fm, body
}

// extractSections collects the second-level headings in file order,
// dropping later duplicates.
func extractSections(body string) []string {
	matches := sectionRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		h := strings.TrimSpace(m[1])
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// deriveTitle returns the frontmatter "title" if present, otherwise the
// first H1 heading, otherwise empty string.
func deriveTitle(fm map[string]any, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
