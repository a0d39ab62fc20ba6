package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
)

const klinesBody = `[
 [1700000000000,"100.5","101.0","99.5","100.8","12.5",1700000059999,"1260.0",10,"6.0","604.8","0"],
 [1700000060000,"100.8","102.0","100.1","101.9","8.25",1700000119999,"840.7",7,"4.0","407.6","0"]
]`

func newBinanceServer(t *testing.T, handler http.HandlerFunc) *Binance {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBinance(srv.URL, srv.Client(), metrics.NewMetrics())
}

func TestKlines(t *testing.T) {
	b := newBinanceServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/klines" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("symbol") != "BTCUSDT" || q.Get("interval") != "1m" || q.Get("limit") != "2" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(klinesBody))
	})

	candles, err := b.Klines(context.Background(), "BTCUSDT", "1m", 2)
	if err != nil {
		t.Fatalf("Klines: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("len %d", len(candles))
	}
	c := candles[0]
	if c.Open != 100.5 || c.High != 101 || c.Low != 99.5 || c.Close != 100.8 || c.Volume != 12.5 {
		t.Errorf("candle parsed wrong: %+v", c)
	}
	if !c.OpenTime.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("open time %s", c.OpenTime)
	}
	if !candles[1].OpenTime.After(c.OpenTime) {
		t.Error("candles must be ascending")
	}
}

func TestKlines_Malformed(t *testing.T) {
	b := newBinanceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[1700000000000,"abc","101.0","99.5","100.8","12.5",1700000059999,"1260.0",10,"6.0","604.8","0"]]`))
	})
	_, err := b.Klines(context.Background(), "BTCUSDT", "1m", 1)
	var fe *models.FetchError
	if !errors.As(err, &fe) || !errors.Is(err, models.ErrMalformed) {
		t.Fatalf("expected malformed FetchError, got %v", err)
	}
}

func TestKlines_OutOfOrder(t *testing.T) {
	b := newBinanceServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
 [1700000060000,"1","1","1","1","1",1700000119999,"1",1,"1","1","0"],
 [1700000000000,"1","1","1","1","1",1700000059999,"1",1,"1","1","0"]
]`))
	})
	if _, err := b.Klines(context.Background(), "BTCUSDT", "1m", 2); !errors.Is(err, models.ErrMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestKlines_Upstream(t *testing.T) {
	b := newBinanceServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	})
	_, err := b.Klines(context.Background(), "NOPEUSDT", "1m", 10)
	if !errors.Is(err, models.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPrice(t *testing.T) {
	b := newBinanceServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/price" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"symbol":"ETHUSDT","price":"2345.67000000"}`))
	})

	tk, err := b.Price(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if tk.Symbol != "ETHUSDT" || tk.Price.String() != "2345.67" {
		t.Errorf("ticker %+v", tk)
	}
}
