package server

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldwatch/signalbot/internal/bot"
)

// Server exposes the Telegram webhook, a liveness probe and metrics.
type Server struct {
	dispatcher *bot.Dispatcher
	logger     zerolog.Logger
}

// New creates a Server around the dispatcher.
func New(d *bot.Dispatcher) *Server {
	return &Server{
		dispatcher: d,
		logger:     log.With().Str("component", "server").Logger(),
	}
}

// Router configures all HTTP routes.
func (s *Server) Router(metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/webhook", s.handleWebhook).Methods("POST")
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods("GET")
	}
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Bot is running!"))
}

// handleWebhook processes one Bot API update. Telegram retries updates that
// are not acknowledged, so every path answers 200: malformed or incomplete
// payloads are logged and dropped.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	defer func() {
		w.WriteHeader(http.StatusOK)
	}()

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Error().Err(err).Msg("Failed to parse webhook payload")
		return
	}

	msg := update.Message
	if msg == nil {
		s.logger.Warn().Msg("No message in update")
		return
	}
	if msg.Chat == nil {
		s.logger.Warn().Msg("Message without chat, cannot reply")
		return
	}
	if msg.Text == "" {
		s.logger.Warn().Int64("chat_id", msg.Chat.ID).Msg("Message has no text, ignored")
		return
	}

	sender := msg.Chat.UserName
	if sender == "" {
		sender = msg.Chat.FirstName
	}

	s.dispatcher.Handle(r.Context(), bot.Request{
		ChatID: msg.Chat.ID,
		Sender: sender,
		Text:   msg.Text,
	})
}
