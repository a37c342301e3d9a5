package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTitle = "untitled"
	defaultID    = "N/A"

	mermaidLabel = "Mermaid diagram (code):\n"
)

var blankLines = regexp.MustCompile(`\n\s*\n`)

// Normalize converts d into the plain-text block used in prompts.
// It never fails: malformed structured content falls back to the raw text.
func Normalize(d Document) NormalizedDocument {
	kind := d.Type
	if !kind.Known() {
		kind = KindMarkdown
	}
	return NormalizedDocument{
		ID:           d.ID,
		Title:        titleOf(d),
		Type:         kind,
		Parent:       d.ParentID,
		LLMInputText: Text(d),
	}
}

// Text returns the header followed by the normalized body, trimmed.
func Text(d Document) string {
	id := d.ID
	if id == "" {
		id = defaultID
	}
	shown := d.Type
	if shown == "" {
		shown = KindMarkdown
	}

	header := fmt.Sprintf("Page Title: %s\nPage ID: %s\nType: %s\n\nContent:\n", titleOf(d), id, shown)
	return strings.TrimSpace(header + Body(d))
}

// Body returns only the normalized content, without the header.
func Body(d Document) string {
	switch d.Type {
	case KindMarkdown, "":
		return strings.TrimSpace(CollapseBlankLines(d.Content))
	case KindSwagger:
		return strings.TrimSpace(ParseSpec(d.Content).Render())
	case KindMermaid:
		if strings.TrimSpace(d.Content) == "" {
			return ""
		}
		return mermaidLabel + d.Content
	default:
		return strings.TrimSpace(d.Content)
	}
}

// CollapseBlankLines replaces every run of blank lines with a single newline.
func CollapseBlankLines(s string) string {
	return blankLines.ReplaceAllString(s, "\n")
}

func titleOf(d Document) string {
	if d.Title == "" {
		return defaultTitle
	}
	return d.Title
}

// Spec is the outcome of reading swagger content: either ParsedSpec or RawSpec.
type Spec interface {
	Render() string
	spec()
}

// ParsedSpec holds a successfully decoded document.
type ParsedSpec struct {
	Value any
}

// RawSpec holds content that could not be decoded.
type RawSpec string

func (RawSpec) spec()    {}
func (ParsedSpec) spec() {}

func (r RawSpec) Render() string { return string(r) }

// Render pretty-prints the value with a two-space indent.
func (p ParsedSpec) Render() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.Value); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// ParseSpec decodes raw as JSON, then as a YAML mapping. Anything else is RawSpec.
func ParseSpec(raw string) Spec {
	if v, ok := decodeJSON(raw); ok {
		return ParsedSpec{Value: v}
	}
	if v, ok := decodeYAML(raw); ok {
		return ParsedSpec{Value: v}
	}
	return RawSpec(raw)
}

func decodeJSON(raw string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return v, true
}

func decodeYAML(raw string) (any, bool) {
	var v map[string]any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || len(v) == 0 {
		return nil, false
	}
	// Non-string keys in nested maps cannot be re-serialized.
	if _, err := json.Marshal(v); err != nil {
		return nil, false
	}
	return v, true
}
