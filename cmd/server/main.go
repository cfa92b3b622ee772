package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/plaintext/internal/api"
	"github.com/dgallion1/plaintext/internal/config"
	"github.com/dgallion1/plaintext/internal/i18n"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	opts := i18n.Options{
		DefaultLocale: cfg.Locale,
		Strict:        cfg.StrictTranslations,
	}
	if cfg.LocalesDir != "" {
		opts.Messages = os.DirFS(cfg.LocalesDir)
	}
	translator, err := i18n.NewTranslator(opts, log)
	if err != nil {
		log.Error("failed to load translations", "error", err)
		os.Exit(1)
	}
	log.Info("translations loaded",
		"default_locale", translator.DefaultLanguage().String(),
		"languages", len(translator.Languages()),
		"strict", cfg.StrictTranslations,
	)

	srv := api.NewServer(translator, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting plaintext", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
