package main

import "fmt"

// Run executes the backfill command.
func (c *BackfillCmd) Run(deps *Dependencies) error {
	n, err := deps.Links.BackfillFavicons(deps.Ctx)
	if err := report(deps, err); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Filled %d favicons\n", n)
	return nil
}
