package content

// Kind is the storage format of a document body.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindSwagger  Kind = "swagger"
	KindMermaid  Kind = "mermaid"
)

// Known reports whether k is one of the formats the normalizer understands.
func (k Kind) Known() bool {
	switch k {
	case KindMarkdown, KindSwagger, KindMermaid:
		return true
	}
	return false
}

// Document is a stored page or note as the corpus store returns it.
// ParentID is empty for top-level pages and for notes.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     Kind   `json:"type"`
	Content  string `json:"content"`
	ParentID string `json:"parentId,omitempty"`
	AuthorID string `json:"authorId"`
}

// NormalizedDocument is derived per fetch and never stored.
type NormalizedDocument struct {
	ID           string
	Title        string
	Type         Kind
	Parent       string
	LLMInputText string
}
