package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/goldwatch/signalbot/internal/api/twelvedata"
	"github.com/goldwatch/signalbot/internal/bot"
	"github.com/goldwatch/signalbot/internal/config"
	"github.com/goldwatch/signalbot/internal/metrics"
	"github.com/goldwatch/signalbot/internal/scheduler"
	"github.com/goldwatch/signalbot/internal/server"
	"github.com/goldwatch/signalbot/internal/transport"
)

func main() {
	// Setup logger
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zlog.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	market := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	messenger, err := transport.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Telegram transport")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	dispatcher := bot.New(market, messenger, cfg.Symbol, m)

	// Optional periodic signal push
	if cfg.SignalsCron != "" && cfg.BroadcastChatID != 0 {
		sched := scheduler.New(dispatcher, cfg.BroadcastChatID)
		if err := sched.Register(cfg.SignalsCron); err != nil {
			logger.Fatal().Err(err).Str("cron", cfg.SignalsCron).Msg("Invalid SIGNALS_CRON")
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      server.New(dispatcher).Router(promhttp.Handler()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info().Str("symbol", cfg.Symbol).Int("port", cfg.Port).Msg("Signal bot listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("Shutdown signal received, stopping...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown")
	}
	logger.Info().Msg("Signal bot stopped")
}
