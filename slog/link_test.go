package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dosTaiyaki/linklist"
	"github.com/dosTaiyaki/linklist/mock"
	linklistslog "github.com/dosTaiyaki/linklist/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingService_CreateLink(t *testing.T) {
	t.Parallel()

	t.Run("logs the assigned id at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkService{
			CreateLinkFn: func(_ context.Context, link *linklist.Link) error {
				link.ID = 1700000000000
				link.URL = "https://example.com"
				return nil
			},
		}

		svc := linklistslog.NewLoggingService(inner, debugLogger(&buf))
		err := svc.CreateLink(context.Background(), &linklist.Link{Title: "Example", URL: "example.com"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, `msg="create link"`)
		assert.Contains(t, output, "id=1700000000000")
		assert.Contains(t, output, "url=https://example.com")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs storage failures as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkService{
			CreateLinkFn: func(context.Context, *linklist.Link) error {
				return linklist.Errorf(linklist.EUNAVAILABLE, "save links: disk full")
			},
		}

		svc := linklistslog.NewLoggingService(inner, debugLogger(&buf))
		err := svc.CreateLink(context.Background(), &linklist.Link{Title: "a", URL: "https://a"})

		assert.Equal(t, linklist.EUNAVAILABLE, linklist.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=unavailable")
		assert.Contains(t, output, "disk full")
	})
}

func TestLoggingService_Errors(t *testing.T) {
	t.Parallel()

	t.Run("rejected input stays at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkService{
			DeleteLinkFn: func(_ context.Context, id int64) error {
				return linklist.Errorf(linklist.ENOTFOUND, "link %d not found", id)
			},
		}

		svc := linklistslog.NewLoggingService(inner, debugLogger(&buf))
		err := svc.DeleteLink(context.Background(), 999)

		assert.Equal(t, linklist.ENOTFOUND, linklist.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "id=999")
		assert.Contains(t, output, "code=not_found")
	})

	t.Run("internal failures log at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkService{
			ExportLinksFn: func(context.Context) ([]byte, error) {
				return nil, errors.New("boom")
			},
		}

		svc := linklistslog.NewLoggingService(inner, debugLogger(&buf))
		_, err := svc.ExportLinks(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "err=boom")
	})

	t.Run("debug output is hidden at the default level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.LinkService{
			CategoriesFn: func(context.Context) ([]*linklist.Category, error) {
				return []*linklist.Category{}, nil
			},
		}

		svc := linklistslog.NewLoggingService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := svc.Categories(context.Background())

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingService_Delegates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	want := []*linklist.Link{{ID: 1, Title: "a", URL: "https://a", Tags: []string{}}}
	inner := &mock.LinkService{
		FindLinksFn: func(_ context.Context, filter linklist.LinkFilter) ([]*linklist.Link, error) {
			assert.Equal(t, "go", filter.Query)
			return want, nil
		},
		FindLinkByIDFn: func(context.Context, int64) (*linklist.Link, error) {
			return want[0], nil
		},
		UpdateLinkFn: func(context.Context, int64, linklist.LinkUpdate) (*linklist.Link, error) {
			return want[0], nil
		},
		ImportLinksFn: func(context.Context, []byte) ([]*linklist.Link, error) {
			return want, nil
		},
		BackfillFaviconsFn: func(context.Context) (int, error) {
			return 3, nil
		},
	}
	svc := linklistslog.NewLoggingService(inner, debugLogger(&buf))
	ctx := context.Background()

	links, err := svc.FindLinks(ctx, linklist.LinkFilter{Query: "go", SortBy: linklist.SortTitleAsc})
	require.NoError(t, err)
	assert.Equal(t, want, links)

	link, err := svc.FindLinkByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want[0], link)

	link, err = svc.UpdateLink(ctx, 1, linklist.LinkUpdate{})
	require.NoError(t, err)
	assert.Equal(t, want[0], link)

	links, err = svc.ImportLinks(ctx, []byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, want, links)

	n, err := svc.BackfillFavicons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	output := buf.String()
	assert.Contains(t, output, "sort=title-asc")
	assert.Contains(t, output, `msg="backfill favicons"`)
	assert.Contains(t, output, "count=3")
}
