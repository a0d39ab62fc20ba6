package indicator

const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDResult: Line на всю длину входа, Signal считается как EMA9 от хвоста Line[MACDSlow-MACDFast:].
// Выравнивание по концу: Signal[len-1] соответствует Line[len-1].
type MACDResult struct {
	Line   []float64
	Signal []float64
}

func MACD(closes []float64) MACDResult {
	fast := EMA(closes, MACDFast)
	slow := EMA(closes, MACDSlow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	res := MACDResult{Line: line}
	if offset := MACDSlow - MACDFast; len(line) > offset {
		res.Signal = EMA(line[offset:], MACDSignal)
	}
	return res
}
