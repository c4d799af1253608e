package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/dosTaiyaki/linklist"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Links     linklist.LinkService
	Fetcher   linklist.Fetcher
	Titles    linklist.TitleExtractor
	Bookmarks linklist.BookmarkParser
	Metrics   http.Handler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Store   string `help:"Store location: a directory (file), database file (sqlite) or directory (badger)" env:"LINKLIST_STORE" placeholder:"PATH"`
	Backend string `help:"Storage backend" enum:"file,sqlite,badger" default:"file" env:"LINKLIST_BACKEND"`
	Key     string `help:"Key the collection is stored under" default:"linklist_data" env:"LINKLIST_KEY"`
	Verbose bool   `short:"v" help:"Log every operation"`

	Add      AddCmd      `cmd:"" help:"Add a link"`
	Edit     EditCmd     `cmd:"" help:"Edit a link by ID"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a link by ID"`
	List     ListCmd     `cmd:"" help:"List, search and sort links"`
	Import   ImportCmd   `cmd:"" help:"Import links from a JSON export or browser bookmarks file"`
	Export   ExportCmd   `cmd:"" help:"Export all links as JSON"`
	Backfill BackfillCmd `cmd:"" help:"Fill in missing favicons"`
	Serve    ServeCmd    `cmd:"" help:"Serve the JSON API over HTTP"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Title      string   `arg:"" help:"Link title, or - with --fetch-title"`
	URL        string   `arg:"" help:"Link URL; https:// is assumed when no scheme is given"`
	Tags       []string `short:"t" name:"tag" help:"Tag (repeatable)"`
	Category   string   `short:"c" help:"Category"`
	FetchTitle bool     `help:"Use the page title when TITLE is - or empty"`
}

// EditCmd is the "edit" subcommand.
type EditCmd struct {
	ID             int64    `arg:"" help:"Link ID"`
	Title          string   `help:"New title"`
	URL            string   `help:"New URL"`
	Tags           []string `short:"t" name:"tag" help:"Replace tags (repeatable)"`
	ClearTags      bool     `help:"Remove all tags"`
	Category       string   `short:"c" help:"New category"`
	ClearCategory  bool     `help:"Remove the category"`
	RefreshFavicon bool     `help:"Derive the favicon again from the URL"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID int64 `arg:"" help:"Link ID"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Query    string `short:"q" help:"Case-insensitive search over title, URL and tags"`
	Sort     string `short:"s" help:"Sort order: title-asc, title-desc, created-asc, created-desc"`
	Category string `short:"c" help:"Only links in this category"`
	Group    bool   `short:"g" help:"Group output by category"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File   string `arg:"" help:"File to import, or - for stdin"`
	Format string `help:"Input format" enum:"auto,json,netscape" default:"auto"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `short:"o" help:"Write to file instead of stdout" placeholder:"FILE"`
}

// BackfillCmd is the "backfill" subcommand.
type BackfillCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address" default:"127.0.0.1:8080" env:"LINKLIST_ADDR"`
}
