package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pagewise/internal/content"
	"pagewise/internal/corpus"
)

func norm(id, title, parent, body string) content.NormalizedDocument {
	return content.Normalize(content.Document{ID: id, Title: title, Content: body, ParentID: parent})
}

func sampleCorpus() corpus.Corpus {
	return corpus.Corpus{
		Pages: []content.NormalizedDocument{
			norm("p1", "Home", "", "welcome"),
			norm("p2", "Child", "p1", "nested"),
		},
		Notes: []content.NormalizedDocument{
			norm("n1", "Todo", "", "buy milk"),
		},
	}
}

func TestAskContext_Order(t *testing.T) {
	got := NewAssembler("spanish").AskContext(sampleCorpus())

	assert.True(t, strings.HasPrefix(got, "Context:\n"))
	home := strings.Index(got, "--- Page: Home ---")
	child := strings.Index(got, "--- Page: Child ---")
	parent := strings.Index(got, "--- As sub page of: p1 ---")
	note := strings.Index(got, "--- Note: Todo ---")

	assert.True(t, home >= 0 && child >= 0 && note >= 0)
	assert.Less(t, home, child)
	assert.Less(t, parent, child)
	assert.Less(t, child, note)
	assert.NotContains(t, got, "IMPORTANT")
	assert.NotContains(t, got, "<nil>")
}

func TestAskContext_Empty(t *testing.T) {
	got := NewAssembler("spanish").AskContext(corpus.Corpus{})
	assert.Equal(t, "Context:\n", got)
}

func TestComposeContext_Directives(t *testing.T) {
	a := NewAssembler("spanish")
	got := a.ComposeContext(sampleCorpus(), "u1", "")

	assert.NotContains(t, got, "should be added to this page")
	last := strings.Index(got, "--- Note: Todo ---")
	for _, d := range a.Directives() {
		idx := strings.Index(got, "--- IMPORTANT: "+d)
		assert.Greater(t, idx, last, "directive %q out of order", d)
		last = idx
	}
	assert.True(t, strings.HasSuffix(got, "Never use ```markdown in the response"))
	assert.Contains(t, got, "Response should be in spanish")
}

func TestComposeContext_TargetPage(t *testing.T) {
	a := NewAssembler("english")

	t.Run("Existing Page", func(t *testing.T) {
		got := a.ComposeContext(sampleCorpus(), "u1", "p2")
		target := strings.Index(got, "--- IMPORTANT: The answer should be added to this page: p2 ---")
		first := strings.Index(got, "--- IMPORTANT: Consider creating mermaid")
		assert.GreaterOrEqual(t, target, 0)
		assert.Less(t, target, first)
	})

	t.Run("Home Page", func(t *testing.T) {
		got := a.ComposeContext(corpus.Corpus{}, "u1", "u1")
		assert.Contains(t, got, "This will be the home page of the application")
		assert.NotContains(t, got, "should be added to this page")
	})

	t.Run("Home Id With Existing Pages", func(t *testing.T) {
		got := a.ComposeContext(sampleCorpus(), "u1", "u1")
		assert.Contains(t, got, "The answer should be added to this page: u1")
	})
}

func TestEditContext_ExcludesTarget(t *testing.T) {
	a := NewAssembler("spanish")
	target := content.Document{ID: "p2", Title: "Child", Content: "nested"}
	got := a.EditContext(sampleCorpus(), target)

	assert.True(t, strings.HasPrefix(got, "Context (other relevant user content):\n"))
	assert.Contains(t, got, "--- Page: Home ---")
	assert.NotContains(t, got, "--- Page: Child ---")
	assert.NotContains(t, got, "--- As sub page of: p1 ---")
	assert.Contains(t, got, "--- Note: Todo ---")

	instructions := strings.Index(got, "IMPORTANT INSTRUCTIONS FOR EDITING")
	title := strings.Index(got, `You are editing the page titled "Child"`)
	assert.Less(t, strings.Index(got, "--- Note: Todo ---"), instructions)
	assert.Less(t, strings.Index(got, "Never use ```markdown"), title)
}

func TestTemplates(t *testing.T) {
	assert.Equal(t, "Summarize the following text in 2-4 sentences:\n\nbody", Summarize("body"))
	assert.True(t, strings.HasSuffix(Ask("ctx", "why?"), "ctx\n\nQuestion: why?"))
	assert.True(t, strings.HasSuffix(Compose("ctx", "plan"), "ctx\n\nRequirement: plan"))
	assert.True(t, strings.HasSuffix(Title("the answer"), "\n\nthe answer"))

	swagger := EditStructured(`{"a":1}`, "add b")
	assert.Contains(t, swagger, "Return only the modified document")
	assert.Contains(t, swagger, "Swagger content:\n{\"a\":1}\n")

	edit := Edit("ctx", content.Document{ID: "p9", Title: "Notes", Content: "raw\n\n\ntext"}, "shorten")
	assert.Contains(t, edit, "Current content of the page \"Notes\" (ID: p9):\nraw\n\n\ntext")
}
