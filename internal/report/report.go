package report

import (
	"fmt"
	"strings"

	"github.com/goldwatch/signalbot/internal/model"
)

// Render formats an indicator snapshot into the fixed per-timeframe text
// block. All numeric fields are fixed-point with two fractional digits.
func Render(snap *model.Snapshot, interval string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⏱ Timeframe: %s\n", interval))
	b.WriteString(fmt.Sprintf("📈 Trend: %s\n", snap.Trend))
	b.WriteString(fmt.Sprintf("📊 Signal: %s\n", snap.Signal))
	b.WriteString(fmt.Sprintf("🔎 ATR: %.2f\n", snap.ATR))
	b.WriteString(fmt.Sprintf("💡 SL: %.2f | TP: %.2f\n", snap.StopLoss, snap.TakeProfit))
	b.WriteString(fmt.Sprintf("🔒 Support: %.2f | 🔓 Resistance: %.2f\n", snap.Support, snap.Resistance))
	return b.String()
}

// LivePriceLine formats the live-price header line.
func LivePriceLine(symbol string, price float64) string {
	return fmt.Sprintf("💰 Live %s Price: %.2f", symbol, price)
}

// LivePriceError is the fixed placeholder used when the spot-price fetch fails.
const LivePriceError = "❌ Error fetching live price."
