package helper

import (
	"slices"
	"strings"
)

// интервалы, которые принимают /margin и вотчер
var intervals = []string{"1m", "3m", "5m", "15m", "30m", "1h", "2h", "4h", "6h", "12h", "1d"}

var quoteSuffixes = []string{"USDT", "FDUSD", "USDC", "BUSD"}

// NormTF приводит таймфрейм к виду Binance: 60m -> 1h, 1H -> 1h.
func NormTF(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "60m":
		return "1h"
	case "24h":
		return "1d"
	default:
		return s
	}
}

func ValidInterval(tf string) bool {
	return slices.Contains(intervals, tf)
}

// Intervals: копия списка допустимых интервалов, для подсказок.
func Intervals() []string {
	return slices.Clone(intervals)
}

// NormalizeSymbol: верхний регистр, без пробелов, монета без котировки получает USDT.
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("/", "", "-", "", "_", "").Replace(s)
	if s == "" {
		return ""
	}
	for _, q := range quoteSuffixes {
		if strings.HasSuffix(s, q) && len(s) > len(q) {
			return s
		}
	}
	return s + "USDT"
}

// BaseAsset: монета без котировки, BTCUSDT -> BTC.
func BaseAsset(symbol string) string {
	for _, q := range quoteSuffixes {
		if strings.HasSuffix(symbol, q) && len(symbol) > len(q) {
			return strings.TrimSuffix(symbol, q)
		}
	}
	return symbol
}
