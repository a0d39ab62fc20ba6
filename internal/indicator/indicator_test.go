package indicator

import (
	"math"
	"testing"
	"time"

	"signal_bot/internal/models"
)

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

func zigzag(n int, start, up, down float64) []float64 {
	out := make([]float64, n)
	out[0] = start
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			out[i] = out[i-1] + up
		} else {
			out[i] = out[i-1] - down
		}
	}
	return out
}

func TestRSI_KnownSeries(t *testing.T) {
	closes := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
	}
	// последние 14 дельт: прирост 3.34, потери 1.43
	got, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected ok for 16 closes")
	}
	assertClose(t, "RSI(14)", got, 70.020964, 1e-5)
}

func TestRSI_Bounds(t *testing.T) {
	cases := map[string][]float64{
		"zigzag up":   zigzag(40, 100, 2, 1.5),
		"zigzag down": zigzag(40, 100, 1, 3),
		"falling":     {20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5},
		"flat":        {5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
	}
	for name, closes := range cases {
		got, ok := RSI(closes, 14)
		if !ok {
			t.Fatalf("%s: expected ok", name)
		}
		if got < 0 || got > 100 {
			t.Errorf("%s: RSI %.4f out of [0,100]", name, got)
		}
	}
}

func TestRSI_NoLossesIs100(t *testing.T) {
	closes := []float64{1, 2, 2, 3, 4, 4, 5, 6, 7, 7, 8, 9, 10, 10, 11}
	got, ok := RSI(closes, 14)
	if !ok || got != 100 {
		t.Fatalf("expected exactly 100, got %v ok=%v", got, ok)
	}

	// только последние period дельт: старое падение не влияет
	closes = append([]float64{50}, closes...)
	got, _ = RSI(closes, 14)
	if got != 100 {
		t.Fatalf("old drop outside the window changed RSI: %v", got)
	}
}

func TestRSI_AllLossesIsZero(t *testing.T) {
	closes := []float64{20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6}
	got, _ := RSI(closes, 14)
	assertClose(t, "RSI falling", got, 0, 1e-9)
}

func TestRSI_InsufficientData(t *testing.T) {
	if _, ok := RSI(make([]float64, 14), 14); ok {
		t.Fatal("14 closes must not be enough for period 14")
	}
	if _, ok := RSI(nil, 14); ok {
		t.Fatal("nil closes must not be enough")
	}
}

func TestSMA_LengthAndMean(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15, 16}
	for p := 1; p <= 9; p++ {
		got := SMA(closes, p)
		want := len(closes) - p + 1
		if want < 0 {
			want = 0
		}
		if len(got) != want {
			t.Fatalf("period %d: len %d, want %d", p, len(got), want)
		}
		for i, v := range got {
			sum := 0.0
			for _, c := range closes[i : i+p] {
				sum += c
			}
			assertClose(t, "SMA window", v, sum/float64(p), 1e-9)
		}
	}
	if got := SMA(closes, 0); len(got) != 0 {
		t.Fatalf("period 0 must give empty result, got %v", got)
	}
}

func TestEMA_SeededWithFirstPrice(t *testing.T) {
	got := EMA([]float64{1, 2, 3}, 2)
	if len(got) != 3 {
		t.Fatalf("len %d, want 3", len(got))
	}
	assertClose(t, "EMA[0]", got[0], 1, 1e-12)
	assertClose(t, "EMA[1]", got[1], 1.666667, 1e-6)
	assertClose(t, "EMA[2]", got[2], 2.555556, 1e-6)

	if EMA(nil, 5) != nil {
		t.Fatal("EMA of empty input must be nil")
	}
}

func TestMACD_SignalTailOffset(t *testing.T) {
	closes := zigzag(60, 100, 2, 1)
	m := MACD(closes)

	if len(m.Line) != len(closes) {
		t.Fatalf("line len %d, want %d", len(m.Line), len(closes))
	}
	if want := len(closes) - (MACDSlow - MACDFast); len(m.Signal) != want {
		t.Fatalf("signal len %d, want %d", len(m.Signal), want)
	}
	// сигнал засевается первым значением хвоста линии
	assertClose(t, "signal seed", m.Signal[0], m.Line[MACDSlow-MACDFast], 1e-12)

	fast, slow := EMA(closes, 12), EMA(closes, 26)
	for i := range closes {
		assertClose(t, "macd line", m.Line[i], fast[i]-slow[i], 1e-12)
	}
}

func TestMACD_ShortInputHasNoSignal(t *testing.T) {
	m := MACD([]float64{1, 2, 3})
	if len(m.Signal) != 0 {
		t.Fatalf("expected no signal for 3 closes, got %d", len(m.Signal))
	}
}

func TestBollinger_Ordering(t *testing.T) {
	closes := zigzag(50, 100, 3, 2)
	bands := Bollinger(closes, 20)
	if len(bands) != len(closes)-20+1 {
		t.Fatalf("len %d, want %d", len(bands), len(closes)-19)
	}
	for i, b := range bands {
		if !(b.Upper >= b.Middle && b.Middle >= b.Lower) {
			t.Fatalf("band %d out of order: %+v", i, b)
		}
	}
}

func TestBollinger_PopulationStdDev(t *testing.T) {
	bands := Bollinger([]float64{1, 2, 3, 4, 5}, 5)
	if len(bands) != 1 {
		t.Fatalf("expected one band, got %d", len(bands))
	}
	// sd генеральной совокупности = sqrt(2)
	assertClose(t, "middle", bands[0].Middle, 3, 1e-12)
	assertClose(t, "upper", bands[0].Upper, 5.828427, 1e-6)
	assertClose(t, "lower", bands[0].Lower, 0.171573, 1e-6)
}

func TestBollinger_ConstantWindow(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 42
	}
	for _, b := range Bollinger(closes, 20) {
		if b.Upper != b.Middle || b.Middle != b.Lower {
			t.Fatalf("constant window must collapse the band: %+v", b)
		}
	}
}

func TestSnapshot(t *testing.T) {
	closes := zigzag(100, 100, 2, 1.5)
	candles := make([]models.Candle, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		candles[i] = models.Candle{OpenTime: start.Add(time.Duration(i) * time.Minute), Close: c}
	}

	if _, err := Snapshot(candles[:MinCandles-1]); err != models.ErrInsufficientData {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}

	s, err := Snapshot(candles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Close != closes[len(closes)-1] {
		t.Errorf("close %.2f, want %.2f", s.Close, closes[len(closes)-1])
	}
	assertClose(t, "RSI", s.RSI, 100*14.0/24.5, 1e-9)
	if s.MA7 <= s.MA21 {
		t.Errorf("zigzag uptrend must give MA7 > MA21, got %.4f <= %.4f", s.MA7, s.MA21)
	}
	if !(s.Bollinger.Upper >= s.Bollinger.Middle && s.Bollinger.Middle >= s.Bollinger.Lower) {
		t.Errorf("band out of order: %+v", s.Bollinger)
	}
}
