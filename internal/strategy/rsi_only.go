package strategy

import (
	"fmt"

	"signal_bot/internal/indicator"
	"signal_bot/internal/models"
)

const (
	rsiOnlyStopPct    = 1.5
	rsiOnlyTakePct    = 2.0
	rsiOnlyConfidence = 70.0
)

// RSIOnly: грубый классификатор вотчера, только по RSI.
// Отдельный путь, с Confluence не смешивать.
type RSIOnly struct {
	Period int
}

func NewRSIOnly() *RSIOnly { return &RSIOnly{Period: indicator.DefaultRSIPeriod} }

func (r *RSIOnly) Name() string { return KindRSI }

func (r *RSIOnly) Evaluate(symbol, interval string, candles []models.Candle) models.Signal {
	closes := models.Closes(candles)
	rsi, ok := indicator.RSI(closes, r.Period)
	if !ok {
		return none(symbol, interval, "not enough candles")
	}

	entry := closes[len(closes)-1]
	reason := fmt.Sprintf("RSI(%d) %.2f", r.Period, rsi)

	switch {
	case rsi < rsiOversold:
		return models.Signal{
			Symbol:     symbol,
			Interval:   interval,
			Direction:  models.DirectionLong,
			Entry:      entry,
			StopLoss:   entry * (1 - rsiOnlyStopPct/100),
			TakeProfit: entry * (1 + rsiOnlyTakePct/100),
			Confidence: rsiOnlyConfidence,
			Reason:     reason,
		}
	case rsi > rsiOverbought:
		return models.Signal{
			Symbol:     symbol,
			Interval:   interval,
			Direction:  models.DirectionShort,
			Entry:      entry,
			StopLoss:   entry * (1 + rsiOnlyStopPct/100),
			TakeProfit: entry * (1 - rsiOnlyTakePct/100),
			Confidence: rsiOnlyConfidence,
			Reason:     reason,
		}
	}
	return none(symbol, interval, reason)
}
