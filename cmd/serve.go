package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bynzo/biblio/internal/handlers"
	"github.com/bynzo/biblio/internal/ocr"
)

func newServeCmd() *cobra.Command {
	var (
		port       string
		engineName string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the library HTTP API",
		Long: `Serves the library over HTTP.

POST an image to /api/scan to run the scan workflow, and manage the
collection through /api/books.`,
		Example: `  # Start server on default port 8888
  biblio serve

  # Start server on custom port
  biblio serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			service, manager, err := buildIngest(st, engineName, timeout)
			if err != nil {
				return err
			}

			handler := handlers.New(service, manager)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/scan", handler.HandleScan)
			mux.HandleFunc("/api/books", handler.HandleBooks)
			mux.HandleFunc("/api/books/", handler.HandleBookDetail)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Biblio API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&engineName, "engine", "", "OCR engine: proxy, gemini, or tesseract")
	cmd.Flags().DurationVar(&timeout, "timeout", ocr.DefaultTimeout, "Timeout per remote call")

	return cmd
}
