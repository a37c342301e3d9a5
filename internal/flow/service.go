package flow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pagewise/internal/content"
	"pagewise/internal/corpus"
	"pagewise/internal/prompt"
)

const (
	temperatureSummarize   float32 = 0.3
	temperatureAsk         float32 = 0.1
	temperatureCompose     float32 = 0.4
	temperatureTitle       float32 = 0.1
	temperatureEditSwagger float32 = 0.1
	temperatureEdit        float32 = 0.4
)

// Generator is a text-completion model. Implementations are created once per
// process and shared.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

type Corpus interface {
	FetchCorpus(ctx context.Context, uid string) (corpus.Corpus, error)
	FetchPage(ctx context.Context, id, uid string) (content.Document, error)
}

// Service runs the four flows. Context is rebuilt on every call.
type Service struct {
	corpus    Corpus
	gen       Generator
	assembler *prompt.Assembler
}

func NewService(c Corpus, g Generator, a *prompt.Assembler) *Service {
	return &Service{corpus: c, gen: g, assembler: a}
}

func (s *Service) Summarize(ctx context.Context, in SummarizeInput) (SummarizeOutput, error) {
	if err := require(in.UID, "uid", in.PageID, "pageId"); err != nil {
		return SummarizeOutput{}, err
	}

	page, err := s.page(ctx, in.PageID, in.UID)
	if err != nil {
		return SummarizeOutput{}, err
	}
	if content.Body(page) == "" {
		return SummarizeOutput{}, newError(KindEmptyContent, nil, "page %s has no content to summarize", in.PageID)
	}

	summary, err := s.generate(ctx, "summarize", prompt.Summarize(content.Text(page)), temperatureSummarize)
	if err != nil {
		return SummarizeOutput{}, err
	}
	return SummarizeOutput{Summary: summary, PageTitle: page.Title}, nil
}

func (s *Service) Ask(ctx context.Context, in AskInput) (AskOutput, error) {
	if err := require(in.UID, "uid", in.Question, "question"); err != nil {
		return AskOutput{}, err
	}

	c, err := s.fetchCorpus(ctx, in.UID)
	if err != nil {
		return AskOutput{}, err
	}
	if c.Empty() {
		slog.InfoContext(ctx, "ask on empty corpus, skipping model call")
		return AskOutput{Answer: prompt.FallbackAnswer}, nil
	}

	answer, err := s.generate(ctx, "ask", prompt.Ask(s.assembler.AskContext(c), in.Question), temperatureAsk)
	if err != nil {
		return AskOutput{}, err
	}
	return AskOutput{Answer: answer}, nil
}

// Compose generates new content. Without a target page a second call names
// the result; it runs only after the answer is known.
func (s *Service) Compose(ctx context.Context, in ComposeInput) (ComposeOutput, error) {
	if err := require(in.UID, "uid", in.Question, "question"); err != nil {
		return ComposeOutput{}, err
	}

	c, err := s.fetchCorpus(ctx, in.UID)
	if err != nil {
		return ComposeOutput{}, err
	}

	answer, err := s.generate(ctx, "compose", prompt.Compose(s.assembler.ComposeContext(c, in.UID, in.PageID), in.Question), temperatureCompose)
	if err != nil {
		return ComposeOutput{}, err
	}
	if in.PageID != "" {
		return ComposeOutput{Answer: answer}, nil
	}

	title, err := s.generate(ctx, "title", prompt.Title(answer), temperatureTitle)
	if err != nil {
		return ComposeOutput{}, err
	}
	title = strings.TrimSpace(title)
	return ComposeOutput{Answer: answer, Title: &title}, nil
}

func (s *Service) Edit(ctx context.Context, in EditInput) (EditOutput, error) {
	if err := require(in.UID, "uid", in.PageID, "pageId", in.Question, "question"); err != nil {
		return EditOutput{}, err
	}

	target, err := s.page(ctx, in.PageID, in.UID)
	if err != nil {
		return EditOutput{}, err
	}

	if target.Type == content.KindSwagger {
		answer, err := s.generate(ctx, "edit", prompt.EditStructured(target.Content, in.Question), temperatureEditSwagger)
		if err != nil {
			return EditOutput{}, err
		}
		return EditOutput{Answer: answer}, nil
	}

	c, err := s.fetchCorpus(ctx, in.UID)
	if err != nil {
		return EditOutput{}, err
	}
	answer, err := s.generate(ctx, "edit", prompt.Edit(s.assembler.EditContext(c, target), target, in.Question), temperatureEdit)
	if err != nil {
		return EditOutput{}, err
	}
	return EditOutput{Answer: answer}, nil
}

func (s *Service) page(ctx context.Context, id, uid string) (content.Document, error) {
	page, err := s.corpus.FetchPage(ctx, id, uid)
	switch {
	case err == nil:
		return page, nil
	case errors.Is(err, corpus.ErrNotOwned):
		slog.WarnContext(ctx, "page requested by non-owner", "page_id", id, "requested_by", uid)
		return content.Document{}, newError(KindNotAuthorized, err, "page %s is not owned by the caller", id)
	case errors.Is(err, corpus.ErrNotFound):
		slog.InfoContext(ctx, "page not found", "page_id", id)
		return content.Document{}, newError(KindNotFound, err, "page %s not found", id)
	default:
		slog.ErrorContext(ctx, "failed to fetch page", "page_id", id, "error", err)
		return content.Document{}, newError(KindDataAccess, err, "fetch page %s", id)
	}
}

func (s *Service) fetchCorpus(ctx context.Context, uid string) (corpus.Corpus, error) {
	c, err := s.corpus.FetchCorpus(ctx, uid)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch corpus", "error", err)
		return corpus.Corpus{}, newError(KindDataAccess, err, "fetch corpus")
	}
	return c, nil
}

func (s *Service) generate(ctx context.Context, step, p string, temperature float32) (string, error) {
	out, err := s.gen.Generate(ctx, p, temperature)
	if err != nil {
		slog.ErrorContext(ctx, "model call failed", "step", step, "error", err)
		return "", newError(KindGeneration, err, "%s generation", step)
	}
	return out, nil
}

// require takes value/name pairs and rejects the first empty value.
func require(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i]) == "" {
			return newError(KindValidation, nil, "%s is required", pairs[i+1])
		}
	}
	return nil
}
