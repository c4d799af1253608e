// Package slog provides log/slog decorators for linklist services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dosTaiyaki/linklist"
)

// Ensure LoggingFetcher implements linklist.Fetcher.
var _ linklist.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging of each request.
type LoggingFetcher struct {
	next   linklist.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next linklist.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		if err != nil {
			f.logger.WarnContext(ctx, "fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.InfoContext(ctx, "fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
