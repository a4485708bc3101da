package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/pkg/devtools"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a tree file over the devtools HTTP API",
		Long: `Load a tree definition file and serve it over HTTP.

Endpoints:
  GET  /tree                 flat parent-pointer records
  GET  /state                selected, mixed, opened, and active sets
  POST /nodes/{id}/{action}  select, unselect, toggle, open, close,
                             flip, reveal, activate, deactivate
  GET  /ws                   websocket streaming state changes

Examples:
  loom serve project.yaml
  loom serve project.yaml --addr=:9000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args[0], addr, verbose)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "l", ":8123", "Address to listen on")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")

	return cmd
}

func runServe(path, addr string, verbose bool) error {
	tf, err := loadTreeFile(path)
	if err != nil {
		return err
	}
	tree, err := buildTree(tf)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	srv := &http.Server{
		Addr:    addr,
		Handler: devtools.New(tree, devtools.WithLogger(logger)).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		printBanner()
		info("serving %s on http://localhost%s", path, addr)
		info("%d nodes loaded", tree.Size())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Println()
		info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
