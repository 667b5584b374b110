package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldwatch/signalbot/internal/metrics"
	"github.com/goldwatch/signalbot/internal/model"
	"github.com/goldwatch/signalbot/internal/report"
)

type fakeMarket struct {
	candles     map[string][]model.Candle
	candleErr   map[string]error
	price       float64
	priceErr    error
	candleCalls int
	priceCalls  int
}

func (f *fakeMarket) GetCandles(_ context.Context, _, interval string) ([]model.Candle, error) {
	f.candleCalls++
	if err := f.candleErr[interval]; err != nil {
		return nil, err
	}
	candles, ok := f.candles[interval]
	if !ok {
		return nil, errors.New("no data for interval")
	}
	return candles, nil
}

func (f *fakeMarket) GetPrice(_ context.Context, _ string) (float64, error) {
	f.priceCalls++
	if f.priceErr != nil {
		return 0, f.priceErr
	}
	return f.price, nil
}

type fakeMessenger struct {
	chatIDs []int64
	texts   []string
	err     error
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	return nil
}

func testCandles(n int) []model.Candle {
	candles := make([]model.Candle, n)
	for i := 0; i < n; i++ {
		close := 2300.0 + float64(i)
		candles[i] = model.Candle{Open: close - 0.5, High: close + 0.5, Low: close - 0.5, Close: close}
	}
	return candles
}

func newTestDispatcher(market *fakeMarket, messenger *fakeMessenger) *Dispatcher {
	return New(market, messenger, "XAU/USD", metrics.New(prometheus.NewRegistry()))
}

func TestUnknownCommandNoProviderCalls(t *testing.T) {
	market := &fakeMarket{}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/unknown_cmd")

	assert.Equal(t, HelpText, got)
	assert.Zero(t, market.candleCalls)
	assert.Zero(t, market.priceCalls)
}

func TestSignalsFullReport(t *testing.T) {
	market := &fakeMarket{
		price: 2375.10,
		candles: map[string][]model.Candle{
			"1h":    testCandles(100),
			"30min": testCandles(100),
			"15min": testCandles(100),
			"5min":  testCandles(100),
		},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/signals")

	assert.True(t, strings.HasPrefix(got, "📩 Hello alice!\n📊 Multi-Timeframe Signal Summary:\n\n💰 Live XAU/USD Price: 2375.10\n\n"))
	assert.Equal(t, 4, strings.Count(got, "⏱ Timeframe:"))
	for _, interval := range []string{"1h", "30min", "15min", "5min"} {
		assert.Contains(t, got, "⏱ Timeframe: "+interval)
	}
	assert.Equal(t, got, strings.TrimSpace(got))
	assert.Equal(t, 1, market.priceCalls, "spot price is fetched once per command")
	assert.Equal(t, 4, market.candleCalls)
}

func TestSignalsSkipsFailedInterval(t *testing.T) {
	market := &fakeMarket{
		price: 2375.10,
		candles: map[string][]model.Candle{
			"1h":    testCandles(100),
			"15min": testCandles(100),
			"5min":  testCandles(100),
		},
		candleErr: map[string]error{"30min": errors.New("api error payload")},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/signals")

	assert.Equal(t, 3, strings.Count(got, "⏱ Timeframe:"))
	assert.NotContains(t, got, "⏱ Timeframe: 30min")
	assert.Contains(t, got, "💰 Live XAU/USD Price: 2375.10")
}

func TestSignalsSkipsShortSeries(t *testing.T) {
	market := &fakeMarket{
		price: 2375.10,
		candles: map[string][]model.Candle{
			"1h":    testCandles(100),
			"30min": testCandles(10), // too short for MA20/ATR
			"15min": testCandles(100),
			"5min":  testCandles(100),
		},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/signals")

	assert.Equal(t, 3, strings.Count(got, "⏱ Timeframe:"))
	assert.NotContains(t, got, "⏱ Timeframe: 30min")
}

func TestSignalsAllIntervalsFailedStillReplies(t *testing.T) {
	market := &fakeMarket{
		price: 2375.10,
		candleErr: map[string]error{
			"1h": errors.New("down"), "30min": errors.New("down"),
			"15min": errors.New("down"), "5min": errors.New("down"),
		},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/signals")

	assert.Equal(t, "📩 Hello alice!\n📊 Multi-Timeframe Signal Summary:\n\n💰 Live XAU/USD Price: 2375.10", got)
}

func TestLivePriceFailureUsesPlaceholder(t *testing.T) {
	market := &fakeMarket{
		priceErr: errors.New("price unavailable"),
		candles:  map[string][]model.Candle{"1h": testCandles(100)},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/status")

	assert.Contains(t, got, report.LivePriceError)
	assert.Contains(t, got, "⏱ Timeframe: 1h")
}

func TestStatusCompactLayout(t *testing.T) {
	market := &fakeMarket{
		price:   2375.10,
		candles: map[string][]model.Candle{"1h": testCandles(100)},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "bob", "/status")

	assert.True(t, strings.HasPrefix(got, "📩 Hello bob!\n💰 Live XAU/USD Price: 2375.10\n⏱ Timeframe: 1h\n"))
	assert.NotContains(t, got, "─", "compact layout has no divider")
	assert.Equal(t, 1, market.candleCalls)
}

func TestLatestSignalUsesFiveMinutes(t *testing.T) {
	market := &fakeMarket{
		price:   2375.10,
		candles: map[string][]model.Candle{"5min": testCandles(100)},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "", "/latest_signal")

	assert.Contains(t, got, "📩 Hello Trader!")
	assert.Contains(t, got, "⏱ Timeframe: 5min")
}

func TestLongTermIntervals(t *testing.T) {
	market := &fakeMarket{
		price: 2375.10,
		candles: map[string][]model.Candle{
			"4h": testCandles(100), "8h": testCandles(100),
			"12h": testCandles(100), "1day": testCandles(100),
		},
	}
	d := newTestDispatcher(market, &fakeMessenger{})

	got := d.BuildReply(context.Background(), "alice", "/long_term")

	assert.Contains(t, got, "📊 Long-Term Signal Summary:")
	for _, interval := range []string{"4h", "8h", "12h", "1day"} {
		assert.Contains(t, got, "⏱ Timeframe: "+interval)
	}
}

func TestHandleDeliversToChat(t *testing.T) {
	market := &fakeMarket{}
	messenger := &fakeMessenger{}
	d := newTestDispatcher(market, messenger)

	d.Handle(context.Background(), Request{ChatID: 42, Sender: "alice", Text: "/nope"})

	require.Len(t, messenger.texts, 1)
	assert.Equal(t, int64(42), messenger.chatIDs[0])
	assert.Equal(t, HelpText, messenger.texts[0])
}

func TestHandleDeliveryFailureIsSwallowed(t *testing.T) {
	d := newTestDispatcher(&fakeMarket{}, &fakeMessenger{err: errors.New("telegram down")})

	// Must not panic or propagate.
	d.Handle(context.Background(), Request{ChatID: 42, Sender: "alice", Text: "/nope"})
}
