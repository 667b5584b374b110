package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldwatch/signalbot/internal/bot"
	"github.com/goldwatch/signalbot/internal/metrics"
	"github.com/goldwatch/signalbot/internal/model"
)

type stubMarket struct{}

func (stubMarket) GetCandles(context.Context, string, string) ([]model.Candle, error) {
	return nil, errors.New("no data")
}

func (stubMarket) GetPrice(context.Context, string) (float64, error) {
	return 2375.10, nil
}

type stubMessenger struct {
	chatIDs []int64
	texts   []string
}

func (s *stubMessenger) Send(_ context.Context, chatID int64, text string) error {
	s.chatIDs = append(s.chatIDs, chatID)
	s.texts = append(s.texts, text)
	return nil
}

func newTestScheduler(chatID int64) (*Scheduler, *stubMessenger) {
	messenger := &stubMessenger{}
	d := bot.New(stubMarket{}, messenger, "XAU/USD", metrics.New(prometheus.NewRegistry()))
	return New(d, chatID), messenger
}

func TestRegisterInvalidSpec(t *testing.T) {
	s, _ := newTestScheduler(42)
	assert.Error(t, s.Register("not a cron spec"))
}

func TestRegisterValidSpec(t *testing.T) {
	s, _ := newTestScheduler(42)
	assert.NoError(t, s.Register("0 * * * *"))
}

func TestRunPushesSignalsToBroadcastChat(t *testing.T) {
	s, messenger := newTestScheduler(-100500)

	s.run()

	require.Len(t, messenger.texts, 1)
	assert.Equal(t, int64(-100500), messenger.chatIDs[0])
	assert.Contains(t, messenger.texts[0], "Multi-Timeframe Signal Summary")
	assert.Contains(t, messenger.texts[0], "💰 Live XAU/USD Price: 2375.10")
}
