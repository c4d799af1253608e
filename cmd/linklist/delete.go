package main

import "fmt"

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := report(deps, deps.Links.DeleteLink(deps.Ctx, c.ID)); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted link %d\n", c.ID)
	return nil
}
