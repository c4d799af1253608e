package linklist

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// TitleExtractor finds a human-readable title in an HTML page.
type TitleExtractor interface {
	// ExtractTitle returns the page title.
	// Returns ENOTFOUND if the page has none.
	ExtractTitle(html string) (string, error)
}

// BookmarkParser converts a browser bookmark export into links.
type BookmarkParser interface {
	ParseBookmarks(html string) ([]*Link, error)
}
