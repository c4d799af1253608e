package main_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dosTaiyaki/linklist"
	main "github.com/dosTaiyaki/linklist/cmd/linklist"
	"github.com/dosTaiyaki/linklist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("creates the link", func(t *testing.T) {
		t.Parallel()

		var created *linklist.Link
		links := &mock.LinkService{
			CreateLinkFn: func(_ context.Context, link *linklist.Link) error {
				created = link
				link.ID = 1700000000000
				link.URL = "https://example.com"
				return nil
			},
		}
		deps, stdout, stderr := newDeps(links)

		cmd := &main.AddCmd{Title: "Example", URL: "example.com", Tags: []string{"a", "b"}, Category: "Misc"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Example", created.Title)
		assert.Equal(t, []string{"a", "b"}, created.Tags)
		assert.Equal(t, "Misc", created.Category)
		assert.Equal(t, "Added link 1700000000000: Example <https://example.com>\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("reports validation errors", func(t *testing.T) {
		t.Parallel()

		links := &mock.LinkService{
			CreateLinkFn: func(context.Context, *linklist.Link) error {
				return linklist.Errorf(linklist.EINVALID, "link title required")
			},
		}
		deps, stdout, stderr := newDeps(links)

		err := (&main.AddCmd{Title: " ", URL: "example.com"}).Run(deps)

		assert.Equal(t, linklist.EINVALID, linklist.ErrorCode(err))
		assert.Equal(t, "error: link title required\n", stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("storage failure is only a warning", func(t *testing.T) {
		t.Parallel()

		links := &mock.LinkService{
			CreateLinkFn: func(_ context.Context, link *linklist.Link) error {
				link.ID = 5
				return linklist.Errorf(linklist.EUNAVAILABLE, "save links: read-only file system")
			},
		}
		deps, stdout, stderr := newDeps(links)

		err := (&main.AddCmd{Title: "a", URL: "https://a"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "warning: save links: read-only file system")
		assert.Contains(t, stdout.String(), "Added link 5")
	})

	t.Run("fetches the title when asked", func(t *testing.T) {
		t.Parallel()

		var created *linklist.Link
		links := &mock.LinkService{
			CreateLinkFn: func(_ context.Context, link *linklist.Link) error {
				created = link
				return nil
			},
		}
		deps, _, _ := newDeps(links)
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, "https://go.dev", url)
				return "<title>The Go Programming Language</title>", nil
			},
		}
		deps.Titles = &mock.TitleExtractor{
			ExtractTitleFn: func(html string) (string, error) {
				return "The Go Programming Language", nil
			},
		}

		err := (&main.AddCmd{Title: "-", URL: "go.dev", FetchTitle: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "The Go Programming Language", created.Title)
	})

	t.Run("keeps an explicit title even with --fetch-title", func(t *testing.T) {
		t.Parallel()

		var created *linklist.Link
		links := &mock.LinkService{
			CreateLinkFn: func(_ context.Context, link *linklist.Link) error {
				created = link
				return nil
			},
		}
		deps, _, _ := newDeps(links)

		err := (&main.AddCmd{Title: "Mine", URL: "go.dev", FetchTitle: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Mine", created.Title)
	})

	t.Run("fails when the title cannot be fetched", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.LinkService{})
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("HTTP 404 for https://go.dev/missing")
			},
		}

		err := (&main.AddCmd{Title: "-", URL: "https://go.dev/missing", FetchTitle: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "could not fetch title")
		assert.Contains(t, stderr.String(), "HTTP 404")
	})
}
