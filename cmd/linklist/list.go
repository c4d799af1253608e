package main

import (
	"fmt"

	"github.com/dosTaiyaki/linklist"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	order, err := linklist.ParseSortOrder(c.Sort)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linklist.ErrorMessage(err))
		return err
	}

	filter := linklist.LinkFilter{Query: c.Query, SortBy: order}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	links, err := deps.Links.FindLinks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linklist.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		if filter.Query == "" && filter.Category == nil {
			fmt.Fprintln(deps.Stdout, "No links found. Use 'linklist add' to create one.")
		} else {
			fmt.Fprintln(deps.Stdout, "No links match.")
		}
		return nil
	}

	if !c.Group {
		for _, l := range links {
			printLink(deps.Stdout, "", l, true)
		}
		return nil
	}

	for _, cat := range linklist.GroupByCategory(links) {
		fmt.Fprintf(deps.Stdout, "%s (%d)\n", cat.Name, len(cat.Links))
		for _, l := range cat.Links {
			printLink(deps.Stdout, "  ", l, false)
		}
	}
	return nil
}
