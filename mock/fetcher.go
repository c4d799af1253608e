package mock

import (
	"context"

	"github.com/dosTaiyaki/linklist"
)

var _ linklist.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of linklist.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ linklist.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of linklist.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(html string) (string, error)
}

func (e *TitleExtractor) ExtractTitle(html string) (string, error) {
	return e.ExtractTitleFn(html)
}

var _ linklist.BookmarkParser = (*BookmarkParser)(nil)

// BookmarkParser is a mock implementation of linklist.BookmarkParser.
type BookmarkParser struct {
	ParseBookmarksFn func(html string) ([]*linklist.Link, error)
}

func (p *BookmarkParser) ParseBookmarks(html string) ([]*linklist.Link, error) {
	return p.ParseBookmarksFn(html)
}
