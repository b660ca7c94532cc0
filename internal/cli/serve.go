package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctower/pkg/config"
)

// serveCommand creates the serve command for previewing build output.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the build output over HTTP",
		Long: `Serve the build output over HTTP.

The serve command exposes the build directory as static files for local
preview. It shuts down cleanly on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				dir = cfg.Build.Output
			}
			return c.runServe(cmd.Context(), addr, dir)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultManifest, "manifest file")
	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8080", "listen address")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to serve (default from manifest)")

	return cmd
}

// runServe blocks until the context is cancelled or the server fails.
func (c *CLI) runServe(ctx context.Context, addr, dir string) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(c.Logger))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	printInfo("Serving %s", dir)
	printNextStep("Open", fmt.Sprintf("http://%s/", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request with method, path, and duration.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}
