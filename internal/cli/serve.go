// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/aggregator"
	"github.com/api2spec/apiref/internal/server"
	"github.com/api2spec/apiref/internal/watcher"
)

var (
	serveAddr     string
	serveCacheTTL int
	serveWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [paths...]",
	Short: "Serve the API reference over HTTP",
	Long: `Serve the API reference over HTTP.

Routes:
  GET /docs       HTML reference
  GET /docs.md    markdown reference
  GET /docs.json  the index as JSON
  GET /healthz    health check
  GET /metrics    Prometheus metrics

Rendered pages are cached until the cache TTL elapses or, with --watch,
until a manifest changes.

Example:
  apiref serve                        # Serve on :8080
  apiref serve --addr :9000 --watch   # Reload when manifests change`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: :8080)")
	serveCmd.Flags().IntVar(&serveCacheTTL, "cache-ttl", -1, "page cache TTL in seconds, 0 caches forever")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "invalidate the cache when manifests change")
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline(args)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		p.cfg.Server.Addr = serveAddr
	}
	if serveCacheTTL >= 0 {
		p.cfg.Server.CacheTTL = serveCacheTTL
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := aggregator.NewCache(p.renderIndex, time.Duration(p.cfg.Server.CacheTTL)*time.Second)
	srv := server.New(p.cfg.Server.Addr, cache, p.registry, p.renderOptions(),
		server.WithLogger(p.logger.WithPrefix("server")),
		server.WithReadTimeout(time.Duration(p.cfg.Server.ReadTimeout)*time.Second),
	)

	if serveWatch {
		if err := startWatcher(ctx, p, cache.Invalidate); err != nil {
			return err
		}
	}

	printInfo("Serving API reference on %s", p.cfg.Server.Addr)
	return srv.Run(ctx)
}

// startWatcher watches the manifest directories in the background and
// calls onChange after each debounced burst of changes.
func startWatcher(ctx context.Context, p *pipeline, onChange func()) error {
	files, err := p.scan()
	if err != nil {
		return err
	}
	w, err := watcher.New(watchDirs(p, files), p.cfg.Watch.Debounce,
		watcher.WithLogger(p.logger.WithPrefix("watch")),
		watcher.WithIncludePatterns(p.cfg.Manifests.Include),
	)
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx, onChange); err != nil {
			p.logger.Error("watcher stopped", "err", err)
		}
	}()
	return nil
}
