package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dosTaiyaki/linklist"
)

// Ensure LoggingService implements linklist.LinkService.
var _ linklist.LinkService = (*LoggingService)(nil)

// LoggingService wraps a LinkService and logs every call with its duration.
// Successful calls and rejected input log at debug level, storage problems
// at warn level and internal failures at error level.
type LoggingService struct {
	next   linklist.LinkService
	logger *slog.Logger
}

// NewLoggingService creates a new LoggingService.
func NewLoggingService(next linklist.LinkService, logger *slog.Logger) *LoggingService {
	return &LoggingService{next: next, logger: logger}
}

func (s *LoggingService) CreateLink(ctx context.Context, link *linklist.Link) (err error) {
	defer func(begin time.Time) {
		s.log(ctx, "create link", begin, err, "id", link.ID, "url", link.URL)
	}(time.Now())
	return s.next.CreateLink(ctx, link)
}

func (s *LoggingService) FindLinkByID(ctx context.Context, id int64) (link *linklist.Link, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "find link", begin, err, "id", id)
	}(time.Now())
	return s.next.FindLinkByID(ctx, id)
}

func (s *LoggingService) FindLinks(ctx context.Context, filter linklist.LinkFilter) (links []*linklist.Link, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "find links", begin, err,
			"query", filter.Query,
			"sort", string(filter.SortBy),
			"count", len(links),
		)
	}(time.Now())
	return s.next.FindLinks(ctx, filter)
}

func (s *LoggingService) UpdateLink(ctx context.Context, id int64, upd linklist.LinkUpdate) (link *linklist.Link, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "update link", begin, err, "id", id)
	}(time.Now())
	return s.next.UpdateLink(ctx, id, upd)
}

func (s *LoggingService) DeleteLink(ctx context.Context, id int64) (err error) {
	defer func(begin time.Time) {
		s.log(ctx, "delete link", begin, err, "id", id)
	}(time.Now())
	return s.next.DeleteLink(ctx, id)
}

func (s *LoggingService) ImportLinks(ctx context.Context, data []byte) (links []*linklist.Link, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "import links", begin, err, "bytes", len(data), "count", len(links))
	}(time.Now())
	return s.next.ImportLinks(ctx, data)
}

func (s *LoggingService) ExportLinks(ctx context.Context) (data []byte, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "export links", begin, err, "bytes", len(data))
	}(time.Now())
	return s.next.ExportLinks(ctx)
}

func (s *LoggingService) BackfillFavicons(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "backfill favicons", begin, err, "count", n)
	}(time.Now())
	return s.next.BackfillFavicons(ctx)
}

func (s *LoggingService) Categories(ctx context.Context) (categories []*linklist.Category, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "categories", begin, err, "count", len(categories))
	}(time.Now())
	return s.next.Categories(ctx)
}

func (s *LoggingService) log(ctx context.Context, msg string, begin time.Time, err error, attrs ...any) {
	attrs = append(attrs, "duration", time.Since(begin))

	level := slog.LevelDebug
	if err != nil {
		attrs = append(attrs, "code", linklist.ErrorCode(err), "err", err)
		switch linklist.ErrorCode(err) {
		case linklist.EUNAVAILABLE:
			level = slog.LevelWarn
		case linklist.EINTERNAL:
			level = slog.LevelError
		}
	}
	s.logger.Log(ctx, level, msg, attrs...)
}
