package indicator

import (
	"math"

	"signal_bot/internal/models"
)

const (
	DefaultBollingerPeriod = 20
	bollingerWidth         = 2.0
)

// Bollinger: среднее окна ± 2 стандартных отклонения генеральной совокупности.
// Окна скользят как у SMA.
func Bollinger(closes []float64, period int) []models.Band {
	if period <= 0 || len(closes) < period {
		return nil
	}

	out := make([]models.Band, 0, len(closes)-period+1)
	for end := period; end <= len(closes); end++ {
		window := closes[end-period : end]

		mean := 0.0
		for _, p := range window {
			mean += p
		}
		mean /= float64(period)

		variance := 0.0
		for _, p := range window {
			d := p - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		out = append(out, models.Band{
			Middle: mean,
			Upper:  mean + bollingerWidth*sd,
			Lower:  mean - bollingerWidth*sd,
		})
	}
	return out
}
