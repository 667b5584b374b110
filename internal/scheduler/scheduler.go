package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldwatch/signalbot/internal/bot"
)

// Scheduler pushes the /signals report to a fixed chat on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher *bot.Dispatcher
	chatID     int64
	logger     zerolog.Logger
}

// New creates a Scheduler targeting one broadcast chat.
func New(d *bot.Dispatcher, chatID int64) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		dispatcher: d,
		chatID:     chatID,
		logger:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the periodic push with a standard 5-field cron spec.
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, s.run)
	return err
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int64("chat_id", s.chatID).Msg("Scheduler started")
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) run() {
	// One full multi-timeframe pass: four bar fetches plus the live price.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s.logger.Info().Msg("Running scheduled signal push")
	s.dispatcher.Handle(ctx, bot.Request{ChatID: s.chatID, Sender: bot.DefaultSender, Text: "/signals"})
}
