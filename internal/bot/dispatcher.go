package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldwatch/signalbot/internal/indicators"
	"github.com/goldwatch/signalbot/internal/metrics"
	"github.com/goldwatch/signalbot/internal/model"
	"github.com/goldwatch/signalbot/internal/report"
)

// DefaultSender is the display name used when Telegram supplies none.
const DefaultSender = "Trader"

// HelpText is the fixed reply for unrecognized commands.
const HelpText = "🤖 Unknown command.\nTry /signals, /status, /latest_signal, or /long_term."

var divider = strings.Repeat("─", 40)

// command binds a chat command to its interval list. Summary commands get
// the multi-section layout with dividers; the rest use the compact layout.
type command struct {
	title     string
	intervals []string
	summary   bool
}

var commands = map[string]command{
	"/signals":       {title: "Multi-Timeframe Signal Summary", intervals: []string{"1h", "30min", "15min", "5min"}, summary: true},
	"/long_term":     {title: "Long-Term Signal Summary", intervals: []string{"4h", "8h", "12h", "1day"}, summary: true},
	"/status":        {intervals: []string{"1h"}},
	"/latest_signal": {intervals: []string{"5min"}},
}

// Request is one inbound chat command.
type Request struct {
	ChatID int64
	Sender string
	Text   string
}

// Dispatcher resolves commands to market-data lookups, drives the indicator
// engine per interval and hands the assembled report to the messenger.
// It holds no state across requests.
type Dispatcher struct {
	market    model.MarketData
	messenger model.Messenger
	symbol    string
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// New creates a Dispatcher for a single instrument symbol.
func New(market model.MarketData, messenger model.Messenger, symbol string, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		market:    market,
		messenger: messenger,
		symbol:    symbol,
		metrics:   m,
		logger:    log.With().Str("component", "dispatcher").Logger(),
	}
}

// Handle builds the reply for one request and dispatches it. Failures along
// the way degrade to a partial reply; only delivery errors are terminal,
// and those are logged rather than surfaced.
func (d *Dispatcher) Handle(ctx context.Context, req Request) {
	text := d.BuildReply(ctx, req.Sender, req.Text)

	if err := d.messenger.Send(ctx, req.ChatID, text); err != nil {
		d.metrics.ReplyFailures.Inc()
		d.logger.Error().Err(err).Int64("chat_id", req.ChatID).Msg("Failed to deliver reply")
		return
	}
	d.metrics.RepliesSent.Inc()
}

// BuildReply resolves the command text into the outbound message body.
func (d *Dispatcher) BuildReply(ctx context.Context, sender, text string) string {
	if sender == "" {
		sender = DefaultSender
	}

	cmd, ok := commands[text]
	if !ok {
		d.metrics.Commands.WithLabelValues("unknown").Inc()
		d.logger.Info().Str("text", text).Str("sender", sender).Msg("Unknown command")
		return HelpText
	}

	d.metrics.Commands.WithLabelValues(text).Inc()
	d.logger.Info().Str("command", text).Str("sender", sender).Msg("Command received")

	// One live-price lookup per command, shared by all sections.
	liveLine := report.LivePriceError
	if price, err := d.market.GetPrice(ctx, d.symbol); err != nil {
		d.metrics.ProviderErrors.WithLabelValues("price").Inc()
		d.logger.Error().Err(err).Str("symbol", d.symbol).Msg("Failed to fetch live price")
	} else {
		liveLine = report.LivePriceLine(d.symbol, price)
	}

	sections := d.sections(ctx, cmd.intervals)

	if cmd.summary {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("📩 Hello %s!\n📊 %s:\n\n%s\n\n", sender, cmd.title, liveLine))
		for _, s := range sections {
			b.WriteString(s)
			b.WriteString("\n" + divider + "\n")
		}
		return strings.TrimSpace(b.String())
	}

	// Compact layout: header, live price and at most one section. A reply
	// is sent even when the single interval failed.
	parts := []string{fmt.Sprintf("📩 Hello %s!", sender), liveLine}
	parts = append(parts, sections...)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// sections fetches and renders one report block per interval, in order.
// A failed interval is skipped; a partial result is valid output.
func (d *Dispatcher) sections(ctx context.Context, intervals []string) []string {
	var out []string
	for _, interval := range intervals {
		candles, err := d.market.GetCandles(ctx, d.symbol, interval)
		if err != nil {
			d.metrics.ProviderErrors.WithLabelValues("time_series").Inc()
			d.logger.Error().Err(err).Str("interval", interval).Msg("Failed to fetch candles")
			continue
		}

		snap, err := indicators.Compute(candles)
		if err != nil {
			d.logger.Warn().Err(err).Str("interval", interval).Int("candles", len(candles)).Msg("Skipping interval")
			continue
		}

		out = append(out, report.Render(snap, interval))
	}
	return out
}
