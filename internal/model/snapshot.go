package model

// Trend is the short-term market direction read from the last two closes.
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
)

// Signal is the MA5/MA20 crossover state.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
)

// Snapshot holds the indicator values computed for one (symbol, interval)
// pair. It is ephemeral: built per request and discarded after formatting.
type Snapshot struct {
	LatestClose   float64
	PreviousClose float64
	MA5           float64
	MA20          float64
	ATR           float64
	Trend         Trend
	Signal        Signal
	StopLoss      float64
	TakeProfit    float64
	Support       float64
	Resistance    float64
}
