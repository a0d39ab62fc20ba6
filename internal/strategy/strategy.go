package strategy

import "signal_bot/internal/models"

// Engine: то, что дергают команды и вотчер.
type Engine interface {
	Evaluate(symbol, interval string, candles []models.Candle) models.Signal
	Name() string
}

func none(symbol, interval, reason string) models.Signal {
	return models.Signal{
		Symbol:    symbol,
		Interval:  interval,
		Direction: models.DirectionNone,
		Reason:    reason,
	}
}

// Analyze: четырёхиндикаторный классификатор, для /margin.
func Analyze(symbol, interval string, candles []models.Candle) models.Signal {
	return NewConfluence().Evaluate(symbol, interval, candles)
}

// SimpleClassify: только RSI, для вотчера и /smargin.
func SimpleClassify(symbol, interval string, candles []models.Candle) models.Signal {
	return NewRSIOnly().Evaluate(symbol, interval, candles)
}
