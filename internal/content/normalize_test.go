package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodyOf(t *testing.T, text string) string {
	t.Helper()
	_, body, ok := strings.Cut(text, "Content:\n")
	require.True(t, ok, "header missing in %q", text)
	return body
}

func TestText_Header(t *testing.T) {
	got := Text(Document{ID: "p1", Title: "Roadmap", Type: KindMarkdown, Content: "hello"})
	assert.Equal(t, "Page Title: Roadmap\nPage ID: p1\nType: markdown\n\nContent:\nhello", got)
}

func TestText_Defaults(t *testing.T) {
	got := Text(Document{Content: "body"})
	assert.Equal(t, "Page Title: untitled\nPage ID: N/A\nType: markdown\n\nContent:\nbody", got)
}

func TestText_Markdown(t *testing.T) {
	doc := Document{ID: "p1", Title: "T", Type: KindMarkdown, Content: "\n\n# Title\n\n\n  \nline one\nline two\n \n\nend  \n\n"}
	assert.Equal(t, "# Title\nline one\nline two\nend", bodyOf(t, Text(doc)))
}

func TestText_MarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"a\n\n\nb",
		"  lead\n \t\n trail  ",
		"# h\n\n- one\n\n- two\n",
		"",
	}
	for _, in := range inputs {
		once := Body(Document{Type: KindMarkdown, Content: in})
		twice := Body(Document{Type: KindMarkdown, Content: once})
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestText_SwaggerPrettyPrints(t *testing.T) {
	raw := `{"openapi":"3.0.0","info":{"title":"Pets & <Owners>","version":"1"},"paths":{}}`
	got := bodyOf(t, Text(Document{ID: "s1", Title: "API", Type: KindSwagger, Content: raw}))

	want := "{\n  \"info\": {\n    \"title\": \"Pets & <Owners>\",\n    \"version\": \"1\"\n  },\n  \"openapi\": \"3.0.0\",\n  \"paths\": {}\n}"
	assert.Equal(t, want, got)
}

func TestText_SwaggerRoundTrip(t *testing.T) {
	inputs := []string{
		`{"openapi": "3.0.0", "paths": {"/pets": {"get": {"responses": {"200": {"description": "ok"}}}}}}`,
		`{"n": 12345678901234567890, "f": 1.50, "list": [1, "two", null, true]}`,
		`[{"a": 1}, {"b": [2, 3]}]`,
	}
	for _, raw := range inputs {
		body := bodyOf(t, Text(Document{Type: KindSwagger, Content: raw}))

		var want, got any
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&want))
		dec = json.NewDecoder(strings.NewReader(body))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&got))

		assert.Equal(t, want, got)
	}
}

func TestText_SwaggerYAML(t *testing.T) {
	raw := "openapi: 3.0.0\ninfo:\n  title: Pets\npaths: {}\n"
	body := bodyOf(t, Text(Document{Type: KindSwagger, Content: raw}))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "3.0.0", got["openapi"])
	assert.Equal(t, map[string]any{"title": "Pets"}, got["info"])
}

func TestText_SwaggerMalformedFallsBack(t *testing.T) {
	inputs := []string{
		`{"openapi": "3.0.0",`,
		`[1, 2`,
		`just some words`,
	}
	for _, raw := range inputs {
		body := bodyOf(t, Text(Document{Type: KindSwagger, Content: raw}))
		assert.Equal(t, raw, body)
	}
}

func TestParseSpec_Variants(t *testing.T) {
	_, ok := ParseSpec(`{"a": 1}`).(ParsedSpec)
	assert.True(t, ok)

	raw, ok := ParseSpec(`{oops`).(RawSpec)
	assert.True(t, ok)
	assert.Equal(t, "{oops", raw.Render())
}

func TestText_Mermaid(t *testing.T) {
	code := "graph TD\n\n  A-->B\n"
	got := bodyOf(t, Text(Document{Type: KindMermaid, Content: code}))
	assert.Equal(t, "Mermaid diagram (code):\ngraph TD\n\n  A-->B", got)
}

func TestText_UnknownTypePassesThrough(t *testing.T) {
	doc := Document{ID: "x", Title: "Raw", Type: "csv", Content: "a,b\n\n\nc,d"}
	got := Text(doc)
	assert.Contains(t, got, "Type: csv\n")
	assert.Equal(t, "a,b\n\n\nc,d", bodyOf(t, got))
	assert.Equal(t, KindMarkdown, Normalize(doc).Type)
}

func TestText_TotalAndTrimmed(t *testing.T) {
	docs := []Document{
		{},
		{Type: KindSwagger},
		{Type: KindMermaid},
		{Type: "??", Content: "   "},
		{Title: "  spaced  ", Content: "\n\n\n"},
		{Type: KindSwagger, Content: "\x00\xff"},
	}
	for _, d := range docs {
		got := Text(d)
		assert.NotEmpty(t, got)
		assert.Equal(t, strings.TrimSpace(got), got)
		assert.Equal(t, got, Text(d), "must be deterministic")
	}
}

func TestBody_EmptyContent(t *testing.T) {
	assert.Empty(t, Body(Document{Type: KindMarkdown, Content: " \n\n \n"}))
	assert.Empty(t, Body(Document{Type: KindMermaid, Content: "  "}))
	assert.Empty(t, Body(Document{Type: KindSwagger}))
	assert.NotEmpty(t, Body(Document{Type: KindSwagger, Content: "{}"}))
}

func TestNormalize(t *testing.T) {
	n := Normalize(Document{ID: "p2", Title: "", Type: "", Content: "x", ParentID: "p1", AuthorID: "u1"})
	assert.Equal(t, "p2", n.ID)
	assert.Equal(t, "untitled", n.Title)
	assert.Equal(t, KindMarkdown, n.Type)
	assert.Equal(t, "p1", n.Parent)
	assert.Equal(t, Text(Document{ID: "p2", Content: "x"}), n.LLMInputText)
}
