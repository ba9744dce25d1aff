package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ondrasimku/filedrop/internal/config"
	httphandler "github.com/ondrasimku/filedrop/internal/http"
	"github.com/ondrasimku/filedrop/internal/log"
	"github.com/ondrasimku/filedrop/internal/storage/local"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "filedrop: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath    string
		httpAddr      string
		uploadDir     string
		publicBaseURL string
		maxFileSize   int64
		logLevel      string
		logFormat     string
	)

	cmd := &cobra.Command{
		Use:           "filedrop",
		Short:         "Store, list and download files over HTTP",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.HTTPAddr = httpAddr
			}
			if flags.Changed("upload-dir") {
				cfg.UploadDir = uploadDir
			}
			if flags.Changed("public-base-url") {
				cfg.PublicBaseURL = publicBaseURL
			}
			if flags.Changed("max-file-size") {
				cfg.MaxFileSize = maxFileSize
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("log-format") {
				cfg.Log.Format = logFormat
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file (env FILEDROP_CONFIG)")
	cmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (env FILEDROP_HTTP_ADDR)")
	cmd.Flags().StringVarP(&uploadDir, "upload-dir", "d", "", "root directory for stored files (env FILEDROP_UPLOAD_DIR)")
	cmd.Flags().StringVar(&publicBaseURL, "public-base-url", "", "base URL used in download links (env FILEDROP_PUBLIC_BASE_URL)")
	cmd.Flags().Int64Var(&maxFileSize, "max-file-size", 0, "maximum upload size in bytes (env FILEDROP_MAX_FILE_SIZE)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env FILEDROP_LOG_LEVEL)")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "text or json (env FILEDROP_LOG_FORMAT)")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := log.NewLogger(cfg.Log.Level, cfg.Log.Format)

	storage, err := local.NewLocalStorage(cfg.UploadDir, cfg.MaxFileSize)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		return err
	}
	defer storage.Close()

	router, err := httphandler.NewRouter(storage, cfg, Version, logger)
	if err != nil {
		logger.Error("Failed to initialize router", "error", err)
		return err
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting filedrop", "addr", cfg.HTTPAddr, "uploadDir", storage.Root(), "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed to start", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	logger.Info("Server exited")
	return nil
}
