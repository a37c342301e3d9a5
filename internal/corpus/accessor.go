package corpus

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"pagewise/internal/content"
)

type Store interface {
	List(ctx context.Context, uid string, c Collection) ([]content.Document, error)
	GetPage(ctx context.Context, id string) (*content.Document, error)
}

// Corpus is one user's normalized pages and notes. Both slices are non-nil.
type Corpus struct {
	Pages []content.NormalizedDocument
	Notes []content.NormalizedDocument
}

// Empty reports whether the user has neither pages nor notes.
func (c Corpus) Empty() bool {
	return len(c.Pages) == 0 && len(c.Notes) == 0
}

// Accessor reads documents scoped to a user and normalizes them on every call.
type Accessor struct {
	store Store
}

func NewAccessor(s Store) *Accessor {
	return &Accessor{store: s}
}

func (a *Accessor) FetchAll(ctx context.Context, uid string, c Collection) ([]content.NormalizedDocument, error) {
	docs, err := a.store.List(ctx, uid, c)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	out := make([]content.NormalizedDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, content.Normalize(d))
	}
	return out, nil
}

// FetchCorpus loads pages and notes concurrently.
func (a *Accessor) FetchCorpus(ctx context.Context, uid string) (Corpus, error) {
	var c Corpus
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c.Pages, err = a.FetchAll(gctx, uid, Pages)
		return err
	})
	g.Go(func() error {
		var err error
		c.Notes, err = a.FetchAll(gctx, uid, Notes)
		return err
	})
	if err := g.Wait(); err != nil {
		return Corpus{}, err
	}
	return c, nil
}

// FetchPage returns the raw page if uid owns it. ErrNotOwned is returned for
// pages of other users so callers can tell the cases apart in logs.
func (a *Accessor) FetchPage(ctx context.Context, id, uid string) (content.Document, error) {
	d, err := a.store.GetPage(ctx, id)
	if err != nil {
		return content.Document{}, err
	}
	if d.AuthorID != uid {
		return content.Document{}, ErrNotOwned
	}
	return *d, nil
}
