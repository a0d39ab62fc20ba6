package indicator

const DefaultRSIPeriod = 14

// RSI: плоское среднее приростов/потерь по последним period дельтам (не Уайлдер).
// Нужно минимум period+1 цен, иначе ok=false. Нет потерь: 100.
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}

	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}

	if loss == 0 {
		return 100, true
	}

	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}
