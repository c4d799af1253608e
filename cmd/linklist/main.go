package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dosTaiyaki/linklist"
	"github.com/dosTaiyaki/linklist/badger"
	"github.com/dosTaiyaki/linklist/favicon"
	"github.com/dosTaiyaki/linklist/fs"
	"github.com/dosTaiyaki/linklist/goquery"
	linklisthttp "github.com/dosTaiyaki/linklist/http"
	linklistprom "github.com/dosTaiyaki/linklist/prometheus"
	linklistslog "github.com/dosTaiyaki/linklist/slog"
	"github.com/dosTaiyaki/linklist/sqlite"
	"github.com/dosTaiyaki/linklist/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Store location. Overrides --store when set before calling Run().
	StorePath string

	// Backend holding the persisted collection.
	KV linklist.KeyValue

	// Store is the link collection engine.
	Store *store.Store
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.KV != nil {
		return m.KV.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linklist"),
		kong.Description("A personal link organizer."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'linklist --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	path := m.StorePath
	if path == "" {
		path = cli.Store
	}
	if path == "" {
		path = defaultStorePath(cli.Backend)
	}

	m.KV, err = openKeyValue(cli.Backend, path)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set LINKLIST_STORE to use a different location\n")
		return fmt.Errorf("failed to open %s store at %q: %w", cli.Backend, path, err)
	}
	defer m.Close()

	// Load and save problems are reported but never stop the command; the
	// collection then starts empty and stays usable in memory.
	m.Store = store.NewStore(m.KV, favicon.NewGoogle(), store.WithKey(cli.Key))
	if err := m.Store.Load(ctx); err != nil {
		logger.Warn("could not load links", "path", path, "code", linklist.ErrorCode(err), "err", linklist.ErrorMessage(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var links linklist.LinkService = m.Store
	links = linklistprom.NewInstrumentedService(links, registry)
	links = linklistslog.NewLoggingService(links, logger)

	if _, err := links.BackfillFavicons(ctx); err != nil && linklist.ErrorCode(err) != linklist.EUNAVAILABLE {
		logger.Warn("could not backfill favicons", "err", linklist.ErrorMessage(err))
	}

	deps.Links = links
	deps.Fetcher = linklistslog.NewLoggingFetcher(linklisthttp.NewFetcher(), logger)
	deps.Titles = goquery.NewTitleExtractor()
	deps.Bookmarks = goquery.NewBookmarkParser()
	deps.Metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	defer deps.Fetcher.Close()

	return kongCtx.Run(deps)
}

// openKeyValue opens the backend named by backend at path.
func openKeyValue(backend, path string) (linklist.KeyValue, error) {
	switch backend {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, err
		}
		return db, nil
	case "badger":
		db := badger.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, err
		}
		return db, nil
	case "file", "":
		return fs.NewStore(path), nil
	default:
		return nil, linklist.Errorf(linklist.EINVALID, "unknown backend %q", backend)
	}
}

func defaultStorePath(backend string) string {
	dir := ".linklist"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".linklist")
	}
	switch backend {
	case "sqlite":
		return filepath.Join(dir, "linklist.db")
	case "badger":
		return filepath.Join(dir, "badger")
	default:
		return dir
	}
}
