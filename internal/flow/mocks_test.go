package flow_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pagewise/internal/content"
	"pagewise/internal/corpus"
	"pagewise/internal/flow"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

// prompt returns the prompt of the i-th recorded call.
func (m *MockGenerator) prompt(i int) string {
	return m.Calls[i].Arguments.String(1)
}

type MockCorpus struct {
	mock.Mock
}

func (m *MockCorpus) FetchCorpus(ctx context.Context, uid string) (corpus.Corpus, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(corpus.Corpus), args.Error(1)
}

func (m *MockCorpus) FetchPage(ctx context.Context, id, uid string) (content.Document, error) {
	args := m.Called(ctx, id, uid)
	return args.Get(0).(content.Document), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, ev flow.RunEvent) {
	m.Called(ctx, ev)
}

func norm(id, title, parent, body string) content.NormalizedDocument {
	return content.Normalize(content.Document{ID: id, Title: title, Type: content.KindMarkdown, Content: body, ParentID: parent})
}

func userCorpus() corpus.Corpus {
	return corpus.Corpus{
		Pages: []content.NormalizedDocument{
			norm("p1", "Home", "", "welcome home"),
			norm("p2", "Week", "p1", "monday: gym"),
		},
		Notes: []content.NormalizedDocument{
			norm("n1", "Idea", "", "write more"),
		},
	}
}
