package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/dosTaiyaki/linklist"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	data, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not read %s: %v\n", c.File, err)
		return err
	}

	format := c.Format
	if format == "" || format == "auto" {
		format = detectFormat(data)
	}

	if format == "netscape" {
		links, err := deps.Bookmarks.ParseBookmarks(string(data))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linklist.ErrorMessage(err))
			return err
		}
		if data, err = linklist.MarshalLinks(links); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linklist.ErrorMessage(err))
			return err
		}
	}

	imported, err := deps.Links.ImportLinks(deps.Ctx, data)
	if err := report(deps, err); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d links\n", len(imported))
	return nil
}

func (c *ImportCmd) read(deps *Dependencies) ([]byte, error) {
	if c.File == "-" {
		return io.ReadAll(deps.Stdin)
	}
	return os.ReadFile(c.File)
}

// detectFormat treats markup as a browser bookmark file and anything
// else as JSON.
func detectFormat(data []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("<")) {
		return "netscape"
	}
	return "json"
}
