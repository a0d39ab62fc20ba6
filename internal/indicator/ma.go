package indicator

// SMA: скользящее среднее с шагом 1, длина результата len(closes)-period+1.
func SMA(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) < period {
		return nil
	}

	out := make([]float64, 0, len(closes)-period+1)
	sum := 0.0
	for i, p := range closes {
		sum += p
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}

// EMA засевается первой ценой, а не SMA: первые значения смещены к ней.
// Длина результата равна длине входа.
func EMA(closes []float64, period int) []float64 {
	if period <= 0 || len(closes) == 0 {
		return nil
	}

	k := 2.0 / float64(period+1)
	out := make([]float64, len(closes))
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = closes[i]*k + out[i-1]*(1-k)
	}
	return out
}

func last(xs []float64) float64 {
	return xs[len(xs)-1]
}
