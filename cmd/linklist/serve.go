package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	linklisthttp "github.com/dosTaiyaki/linklist/http"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take on exit.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	handler := linklisthttp.NewServer(deps.Links,
		linklisthttp.WithLogger(deps.Logger),
		linklisthttp.WithMetricsHandler(deps.Metrics),
	)

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not listen on %s: %v\n", c.Addr, err)
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	deps.Logger.Info("listening", "addr", ln.Addr().String())
	fmt.Fprintf(deps.Stdout, "Serving on http://%s\n", ln.Addr())

	return g.Wait()
}
