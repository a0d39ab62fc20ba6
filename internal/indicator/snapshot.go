package indicator

import (
	"signal_bot/internal/models"
)

// MinCandles: EMA26 + 1, самое длинное требование среди индикаторов снапшота.
const MinCandles = MACDSlow + 1

// Snapshot считает все индикаторы по окну свечей заново.
func Snapshot(candles []models.Candle) (models.IndicatorSnapshot, error) {
	if len(candles) < MinCandles {
		return models.IndicatorSnapshot{}, models.ErrInsufficientData
	}
	closes := models.Closes(candles)

	rsi, ok := RSI(closes, DefaultRSIPeriod)
	if !ok {
		return models.IndicatorSnapshot{}, models.ErrInsufficientData
	}

	macd := MACD(closes)
	if len(macd.Signal) < 2 {
		return models.IndicatorSnapshot{}, models.ErrInsufficientData
	}
	bands := Bollinger(closes, DefaultBollingerPeriod)

	nl, ns := len(macd.Line), len(macd.Signal)
	return models.IndicatorSnapshot{
		Close:          last(closes),
		RSI:            rsi,
		MA7:            last(SMA(closes, 7)),
		MA21:           last(SMA(closes, 21)),
		EMA12:          last(EMA(closes, MACDFast)),
		EMA26:          last(EMA(closes, MACDSlow)),
		MACD:           macd.Line[nl-1],
		MACDSignal:     macd.Signal[ns-1],
		PrevMACD:       macd.Line[nl-2],
		PrevMACDSignal: macd.Signal[ns-2],
		Bollinger:      bands[len(bands)-1],
	}, nil
}
