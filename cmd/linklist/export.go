package main

import (
	"fmt"

	"github.com/dosTaiyaki/linklist"
	"github.com/dosTaiyaki/linklist/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	data, err := deps.Links.ExportLinks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linklist.ErrorMessage(err))
		return err
	}

	if c.Output == "" || c.Output == "-" {
		_, err := deps.Stdout.Write(data)
		return err
	}

	if err := fs.WriteFile(c.Output, data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not write %s: %v\n", c.Output, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported links to %s\n", c.Output)
	return nil
}
