package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/resume-matcher/backend/internal/api"
	"github.com/resume-matcher/backend/internal/config"
	"github.com/resume-matcher/backend/internal/intake"
	"github.com/resume-matcher/backend/internal/match"
	"github.com/resume-matcher/backend/internal/normalizer"
	"github.com/resume-matcher/backend/internal/storage"
)

const version = "1.0.0"

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "resume-matcher",
		Short: "resume-matcher ranks resumes against a job description using TF-IDF and cosine similarity",
		RunE:  runServer,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file (optional, env vars and defaults apply without it)")
	rootCmd.Flags().IntP("port", "p", 0, "HTTP port (overrides config)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// 1. Config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	// 2. Logging
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}
	logger.SetLevel(level)
	if cfg.Logging.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	entry := logger.WithField("service", "resume-matcher")

	entry.Info("Starting Resume Matcher API Service")

	// 3. Report storage (optional)
	var reports storage.ReportStorage
	if cfg.Storage.ReportsDir != "" {
		fileStore, err := storage.NewFileStorage(cfg.Storage.ReportsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize report storage: %w", err)
		}
		defer fileStore.Close()
		reports = fileStore
		entry.Infof("Persisting match reports to %s", cfg.Storage.ReportsDir)
	}

	// 4. Retrieval core
	matcher := match.NewMatcher(normalizer.NewEnglish(), entry, cfg.Matcher.Workers)
	validator := intake.NewValidator(cfg.Intake.AllowedExtensions, cfg.Intake.MaxContentBytes)

	// 5. API Server
	server := api.NewServer(matcher, validator, reports, entry)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		entry.Infof("Resume Matcher API ready on port %d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		entry.Infof("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
