package strategy

import (
	"fmt"

	"signal_bot/internal/indicator"
	"signal_bot/internal/models"
)

const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0

	confluenceStopPct    = 2.0
	confluenceConfidence = 90.0
)

// Confluence требует все четыре условия сразу (RSI, MACD, MA7/MA21, Боллинджер).
// Частичное совпадение сигнала не даёт.
type Confluence struct{}

func NewConfluence() *Confluence { return &Confluence{} }

func (c *Confluence) Name() string { return KindConfluence }

// Evaluate считает снапшот и классифицирует его. Мало свечей: NONE.
func (c *Confluence) Evaluate(symbol, interval string, candles []models.Candle) models.Signal {
	snap, err := indicator.Snapshot(candles)
	if err != nil {
		return none(symbol, interval, "not enough candles")
	}
	return c.FromSnapshot(symbol, interval, snap)
}

func (c *Confluence) FromSnapshot(symbol, interval string, s models.IndicatorSnapshot) models.Signal {
	dir := Classify(s)
	if dir == models.DirectionNone {
		return none(symbol, interval, describe(s))
	}

	sig := models.Signal{
		Symbol:     symbol,
		Interval:   interval,
		Direction:  dir,
		Entry:      s.Close,
		TakeProfit: s.Bollinger.Middle,
		Confidence: confluenceConfidence,
		Reason:     describe(s),
	}
	if dir == models.DirectionLong {
		sig.StopLoss = s.Close * (1 - confluenceStopPct/100)
	} else {
		sig.StopLoss = s.Close * (1 + confluenceStopPct/100)
	}
	return sig
}

// Classify: чистая функция над снапшотом.
func Classify(s models.IndicatorSnapshot) models.Direction {
	cross := MACDCross(s)

	if s.RSI < rsiOversold && cross > 0 && s.MA7 > s.MA21 && s.Close < s.Bollinger.Lower {
		return models.DirectionLong
	}
	if s.RSI > rsiOverbought && cross < 0 && s.MA7 < s.MA21 && s.Close > s.Bollinger.Upper {
		return models.DirectionShort
	}
	return models.DirectionNone
}

// MACDCross: +1 линия прошла сигнал снизу вверх, -1 сверху вниз, 0 нет пересечения.
func MACDCross(s models.IndicatorSnapshot) int {
	switch {
	case s.PrevMACD <= s.PrevMACDSignal && s.MACD > s.MACDSignal:
		return 1
	case s.PrevMACD >= s.PrevMACDSignal && s.MACD < s.MACDSignal:
		return -1
	}
	return 0
}

// Trend сравнивает последние MA7 и MA21.
func Trend(s models.IndicatorSnapshot) string {
	switch {
	case s.MA7 > s.MA21:
		return "uptrend"
	case s.MA7 < s.MA21:
		return "downtrend"
	}
	return "flat"
}

// BandPosition: где цена относительно полос.
func BandPosition(s models.IndicatorSnapshot) string {
	switch {
	case s.Close > s.Bollinger.Upper:
		return "overbought"
	case s.Close < s.Bollinger.Lower:
		return "oversold"
	}
	return "inside"
}

func describe(s models.IndicatorSnapshot) string {
	cross := "no cross"
	switch MACDCross(s) {
	case 1:
		cross = "bullish cross"
	case -1:
		cross = "bearish cross"
	}
	return fmt.Sprintf("RSI %.2f, MACD %s, %s, %s", s.RSI, cross, Trend(s), BandPosition(s))
}
