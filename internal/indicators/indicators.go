package indicators

import (
	"errors"
	"math"

	"github.com/goldwatch/signalbot/internal/model"
)

const (
	// FastPeriod is the short moving-average window
	FastPeriod = 5
	// SlowPeriod is the long moving-average window
	SlowPeriod = 20
	// ATRPeriod is the true-range averaging window
	ATRPeriod = 14
	// RiskFactor scales ATR into stop-loss / take-profit distance
	RiskFactor = 1.5
)

// ErrInsufficientData is returned when the series is too short for the
// slow moving average or the trend comparison.
var ErrInsufficientData = errors.New("insufficient candle data for indicators")

// Compute derives an indicator snapshot from a chronological candle series.
// It is a pure function: no I/O, no retained state.
func Compute(candles []model.Candle) (*model.Snapshot, error) {
	if len(candles) < 2 || len(candles) < SlowPeriod {
		return nil, ErrInsufficientData
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	ma5 := rollingMean(closes, FastPeriod)
	ma20 := rollingMean(closes, SlowPeriod)

	latestClose := closes[len(closes)-1]
	previousClose := closes[len(closes)-2]

	trend := model.TrendBearish
	if latestClose > previousClose {
		trend = model.TrendBullish
	}

	// Ties resolve to SELL: BUY requires a strict crossover.
	signal := model.SignalSell
	if last(ma5) > last(ma20) {
		signal = model.SignalBuy
	}

	atr := last(rollingMean(trueRanges(candles), ATRPeriod))

	var sl, tp float64
	if signal == model.SignalBuy {
		sl = latestClose - atr*RiskFactor
		tp = latestClose + atr*RiskFactor
	} else {
		sl = latestClose + atr*RiskFactor
		tp = latestClose - atr*RiskFactor
	}

	// Unreachable for non-negative ATR, kept for parity with the original
	// level normalization.
	if signal == model.SignalBuy && sl > tp {
		sl, tp = tp, sl
	} else if signal == model.SignalSell && sl < tp {
		sl, tp = tp, sl
	}

	return &model.Snapshot{
		LatestClose:   latestClose,
		PreviousClose: previousClose,
		MA5:           last(ma5),
		MA20:          last(ma20),
		ATR:           atr,
		Trend:         trend,
		Signal:        signal,
		StopLoss:      sl,
		TakeProfit:    tp,
		Support:       latestClose - atr,
		Resistance:    latestClose + atr,
	}, nil
}

// trueRanges returns the per-bar true range starting from the second bar;
// the first bar has no previous close and contributes no value.
func trueRanges(candles []model.Candle) []float64 {
	tr := make([]float64, 0, len(candles)-1)
	for i := 1; i < len(candles); i++ {
		prevClose := candles[i-1].Close
		hl := candles[i].High - candles[i].Low
		hpc := math.Abs(candles[i].High - prevClose)
		lpc := math.Abs(candles[i].Low - prevClose)
		tr = append(tr, math.Max(hl, math.Max(hpc, lpc)))
	}
	return tr
}

// rollingMean computes the simple rolling mean of values over the given
// window using a running sum. Indexes with fewer than window prior values
// hold NaN, mirroring an undefined window.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}
