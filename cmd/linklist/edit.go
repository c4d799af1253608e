package main

import (
	"fmt"

	"github.com/dosTaiyaki/linklist"
)

// Run executes the edit command.
func (c *EditCmd) Run(deps *Dependencies) error {
	upd := c.update()
	if upd == (linklist.LinkUpdate{}) {
		fmt.Fprintln(deps.Stderr, "error: nothing to change. Use --title, --url, --tag, --category or --refresh-favicon.")
		return linklist.Errorf(linklist.EINVALID, "nothing to change")
	}

	link, err := deps.Links.UpdateLink(deps.Ctx, c.ID, upd)
	if err := report(deps, err); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated link %d: %s <%s>\n", link.ID, link.Title, link.URL)
	return nil
}

func (c *EditCmd) update() linklist.LinkUpdate {
	var upd linklist.LinkUpdate
	if c.Title != "" {
		upd.Title = &c.Title
	}
	if c.URL != "" {
		upd.URL = &c.URL
	}
	if c.ClearTags {
		upd.Tags = &[]string{}
	} else if len(c.Tags) > 0 {
		upd.Tags = &c.Tags
	}
	if c.ClearCategory {
		upd.Category = new(string)
	} else if c.Category != "" {
		upd.Category = &c.Category
	}
	if c.RefreshFavicon {
		upd.Favicon = new(string)
	}
	return upd
}
