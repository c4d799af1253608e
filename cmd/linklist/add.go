package main

import (
	"fmt"
	"strings"

	"github.com/dosTaiyaki/linklist"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	title := c.Title
	if c.FetchTitle && (strings.TrimSpace(title) == "" || title == "-") {
		fetched, err := c.fetchTitle(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: could not fetch title for %s: %v\n", c.URL, err)
			return err
		}
		title = fetched
	}

	link := &linklist.Link{
		Title:    title,
		URL:      c.URL,
		Tags:     c.Tags,
		Category: c.Category,
	}
	if err := report(deps, deps.Links.CreateLink(deps.Ctx, link)); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added link %d: %s <%s>\n", link.ID, link.Title, link.URL)
	return nil
}

func (c *AddCmd) fetchTitle(deps *Dependencies) (string, error) {
	html, err := deps.Fetcher.Fetch(deps.Ctx, linklist.NormalizeURL(c.URL))
	if err != nil {
		return "", err
	}
	return deps.Titles.ExtractTitle(html)
}
