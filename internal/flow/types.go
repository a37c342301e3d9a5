package flow

// UID fields are set by the transport from the authenticated caller and are
// never read from request payloads.

type SummarizeInput struct {
	PageID string `json:"pageId"`
	UID    string `json:"-"`
}

type SummarizeOutput struct {
	Summary   string `json:"summary"`
	PageTitle string `json:"pageTitle,omitempty"`
}

type AskInput struct {
	Question string `json:"question"`
	UID      string `json:"-"`
}

type AskOutput struct {
	Answer string `json:"answer"`
}

type ComposeInput struct {
	Question string `json:"question"`
	PageID   string `json:"pageId,omitempty"`
	UID      string `json:"-"`
}

// ComposeOutput carries a Title only when the content was composed for a new page.
type ComposeOutput struct {
	Answer string  `json:"answer"`
	Title  *string `json:"title,omitempty"`
}

type EditInput struct {
	Question string `json:"question"`
	PageID   string `json:"pageId"`
	UID      string `json:"-"`
}

// EditOutput.Answer replaces the page content in full.
type EditOutput struct {
	Answer string `json:"answer"`
}
