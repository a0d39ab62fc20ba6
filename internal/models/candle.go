package models

import "time"

// Candle: свеча OHLCV, по возрастанию OpenTime.
type Candle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// Closes вытаскивает цены закрытия в том же порядке.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Band: одна полоса Боллинджера.
type Band struct {
	Middle float64
	Upper  float64
	Lower  float64
}

// IndicatorSnapshot пересчитывается целиком на каждый анализ.
type IndicatorSnapshot struct {
	Close float64

	RSI   float64
	MA7   float64
	MA21  float64
	EMA12 float64
	EMA26 float64

	MACD           float64
	MACDSignal     float64
	PrevMACD       float64
	PrevMACDSignal float64

	Bollinger Band
}
