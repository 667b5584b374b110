package model

import "context"

// MarketData fetches price data for one instrument.
type MarketData interface {
	GetCandles(ctx context.Context, symbol, interval string) ([]Candle, error)
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// Messenger delivers an outbound text to a chat.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string) error
}
