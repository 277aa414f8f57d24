package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/emuconfig"
)

var (
	watchDebounce    string
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the registry whenever the settings file changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := emuconfig.DefaultWatchOptions()
		if watchDebounce != "" {
			d, err := cast.ToDurationE(watchDebounce)
			if err != nil {
				return err
			}
			opts.Debounce = d
		}

		metrics := emuconfig.NewMetrics()
		s, host, err := buildSyncer(metrics)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watchMetricsAddr != "" {
			srv := &http.Server{
				Addr:    watchMetricsAddr,
				Handler: promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}),
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorw("metrics server stopped", "error", err)
				}
			}()
			defer srv.Shutdown(context.Background())
		}

		w, err := emuconfig.NewWatcher(s, host, opts)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()

		log.Infow("watching settings", "path", host.Path())
		for path := range w.Subscribe() {
			switch {
			case path == emuconfig.NotifyFileDeleted:
				log.Warnw("settings file removed", "path", host.Path())
			case strings.HasPrefix(path, emuconfig.NotifyReloadError):
				log.Errorw("reload failed", "error", strings.TrimPrefix(path, emuconfig.NotifyReloadError))
			default:
				log.Infow("setting changed", "path", path)
			}
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDebounce, "debounce", "", "coalescing period for file changes, e.g. 200ms")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
}
