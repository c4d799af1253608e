package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dosTaiyaki/linklist"
)

// report prints err and returns it, except for storage failures: those
// leave the change applied in memory and are printed as a warning only.
func report(deps *Dependencies, err error) error {
	if err == nil {
		return nil
	}
	if linklist.ErrorCode(err) == linklist.EUNAVAILABLE {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", linklist.ErrorMessage(err))
		return nil
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", linklist.ErrorMessage(err))
	return err
}

func printLink(w io.Writer, indent string, l *linklist.Link, showCategory bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%d  %s  %s", indent, l.ID, l.Title, l.URL)
	for _, tag := range l.Tags {
		b.WriteString("  #")
		b.WriteString(tag)
	}
	if showCategory && l.Category != "" {
		fmt.Fprintf(&b, "  [%s]", l.Category)
	}
	fmt.Fprintln(w, b.String())
}
