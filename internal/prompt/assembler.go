package prompt

import (
	"fmt"
	"strings"

	"pagewise/internal/content"
	"pagewise/internal/corpus"
)

const (
	contextHeading     = "Context:\n"
	editContextHeading = "Context (other relevant user content):\n"
)

// Assembler builds the context block for each flow. It holds no corpus state;
// every call renders from the corpus it is given.
type Assembler struct {
	language string
}

func NewAssembler(language string) *Assembler {
	return &Assembler{language: language}
}

// AskContext renders pages then notes, without directives.
func (a *Assembler) AskContext(c corpus.Corpus) string {
	var b strings.Builder
	b.WriteString(contextHeading)
	writePages(&b, c.Pages, "")
	writeNotes(&b, c.Notes)
	return b.String()
}

// ComposeContext renders the corpus followed by the target directive, when a
// target page is given, and the content directives.
func (a *Assembler) ComposeContext(c corpus.Corpus, uid, pageID string) string {
	var b strings.Builder
	b.WriteString(contextHeading)
	writePages(&b, c.Pages, "")
	writeNotes(&b, c.Notes)

	if pageID != "" {
		if len(c.Pages) == 0 && pageID == uid {
			b.WriteString("\n--- IMPORTANT: This will be the home page of the application ---")
		} else {
			fmt.Fprintf(&b, "\n--- IMPORTANT: The answer should be added to this page: %s ---", pageID)
		}
	}
	a.writeDirectives(&b)
	return b.String()
}

// EditContext renders the corpus minus the page being edited, then the
// editing instructions.
func (a *Assembler) EditContext(c corpus.Corpus, target content.Document) string {
	var b strings.Builder
	b.WriteString(editContextHeading)
	writePages(&b, c.Pages, target.ID)
	writeNotes(&b, c.Notes)

	b.WriteString("\n\n--- IMPORTANT INSTRUCTIONS FOR EDITING ---")
	a.writeDirectives(&b)
	fmt.Fprintf(&b, "\n--- IMPORTANT: You are editing the page titled %q. Return only the full, new content for this page.", target.Title)
	return b.String()
}

// Directives returns the content conventions in their fixed order.
func (a *Assembler) Directives() []string {
	return []string{
		"Consider creating mermaid diagrams by adding the code in a ```mermaid block",
		"To link a page use a markdown link whose target is # followed by the pageId",
		"Response should be in " + a.language,
		"Never use ```markdown in the response",
	}
}

func (a *Assembler) writeDirectives(b *strings.Builder) {
	for _, d := range a.Directives() {
		b.WriteString("\n--- IMPORTANT: ")
		b.WriteString(d)
	}
}

func writePages(b *strings.Builder, pages []content.NormalizedDocument, exclude string) {
	for _, p := range pages {
		if exclude != "" && p.ID == exclude {
			continue
		}
		if p.Parent != "" {
			fmt.Fprintf(b, "\n--- As sub page of: %s ---\n", p.Parent)
		}
		fmt.Fprintf(b, "\n--- Page: %s ---\n%s\n", p.Title, p.LLMInputText)
	}
}

func writeNotes(b *strings.Builder, notes []content.NormalizedDocument) {
	for _, n := range notes {
		fmt.Fprintf(b, "\n--- Note: %s ---\n%s\n", n.Title, n.LLMInputText)
	}
}
