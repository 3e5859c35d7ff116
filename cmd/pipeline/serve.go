package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/shortreel/internal/httpapi"
	"github.com/nguyentantai21042004/shortreel/internal/watcher"
	"github.com/spf13/cobra"
)

func newServeCommand(load appLoader) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the voiceover inbox watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			log := a.log

			log.Info(ctx, "========================================")
			log.Info(ctx, "Short Video Pipeline")
			log.Info(ctx, "========================================")
			log.Info(ctx, "System: %s/%s, CPU Cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

			if n, err := a.coord.RecoverInterrupted(ctx); err != nil {
				log.Warn(ctx, "Could not recover interrupted renders: %v", err)
			} else if n > 0 {
				log.Warn(ctx, "Marked %d interrupted render(s) as failed", n)
			}

			errChan := make(chan error, 2)

			if !noWatch {
				w, err := watcher.New(a.cfg.Paths.Inbox, func(ctx context.Context, projectID, filePath string) error {
					_, err := a.coord.AttachVoiceover(ctx, projectID, filePath)
					return err
				}, log, a.cfg.Render.MaxConcurrent)
				if err != nil {
					return err
				}
				defer w.Stop()
				go func() {
					if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
						errChan <- err
					}
				}()
			}

			server := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           httpapi.New(a.coord, filepath.Join(a.cfg.Paths.Temp, "uploads"), log).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
			}()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Pipeline is ready!")
			log.Info(ctx, "API: %s", a.cfg.Server.Addr)
			if !noWatch {
				log.Info(ctx, "Voiceover inbox: %s", a.cfg.Paths.Inbox)
			}
			log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
			log.Info(ctx, "  - Encoder: %s preset %s crf %d", a.cfg.FFmpeg.VideoCodec, a.cfg.FFmpeg.Preset, a.cfg.FFmpeg.CRF)
			log.Info(ctx, "  - Concurrent renders: %d", a.cfg.Render.MaxConcurrent)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			var runErr error
			select {
			case <-ctx.Done():
				log.Info(context.Background(), "Shutdown signal received")
			case runErr = <-errChan:
				log.Error(context.Background(), "Server error: %v", runErr)
			}

			log.Info(context.Background(), "Shutting down gracefully...")
			cancel()
			shutdownCtx, done := context.WithTimeout(context.Background(), 30*time.Second)
			defer done()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Warn(shutdownCtx, "HTTP shutdown: %v", err)
			}
			log.Info(shutdownCtx, "Pipeline stopped")
			return runErr
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not watch the voiceover inbox")
	return cmd
}
