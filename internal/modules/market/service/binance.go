package service

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/pkg/tracing"
)

const sourceBinance = "binance"

// Binance отдаёт спот-данные, свечи и последнюю цену.
type Binance struct {
	client  *binance.Client
	metrics *metrics.Metrics
}

func NewBinance(baseURL string, httpClient *http.Client, m *metrics.Metrics) *Binance {
	// ключи не нужны, только публичные ручки
	c := binance.NewClient("", "")
	if baseURL != "" {
		c.BaseURL = baseURL
	}
	if httpClient != nil {
		c.HTTPClient = httpClient
	}
	return &Binance{client: c, metrics: m}
}

// Klines: свечи по возрастанию OpenTime. Из ответа берутся только поля 0-5.
func (b *Binance) Klines(ctx context.Context, symbol, interval string, limit int) (out []models.Candle, err error) {
	span, ctx := tracing.StartSpan(ctx, "binance.klines",
		opentracing.Tag{Key: "symbol", Value: symbol},
		opentracing.Tag{Key: "interval", Value: interval},
	)
	started := time.Now()
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		b.metrics.ObserveFetch(sourceBinance, time.Since(started).Seconds(), err)
	}()

	raw, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, models.NewFetchError(sourceBinance, "klines", errors.Wrap(models.ErrUpstream, err.Error()))
	}

	out = make([]models.Candle, 0, len(raw))
	for i, k := range raw {
		c, err := parseKline(k)
		if err != nil {
			return nil, models.NewFetchError(sourceBinance, "klines", errors.Wrapf(err, "kline %d", i))
		}
		if len(out) > 0 && !c.OpenTime.After(out[len(out)-1].OpenTime) {
			return nil, models.NewFetchError(sourceBinance, "klines",
				errors.Wrapf(models.ErrMalformed, "kline %d is out of order", i))
		}
		out = append(out, c)
	}
	return out, nil
}

func parseKline(k *binance.Kline) (models.Candle, error) {
	if k == nil {
		return models.Candle{}, errors.Wrap(models.ErrMalformed, "nil kline")
	}
	if k.OpenTime <= 0 {
		return models.Candle{}, errors.Wrapf(models.ErrMalformed, "open time %d", k.OpenTime)
	}

	var parseErr error
	parse := func(name, s string) float64 {
		if parseErr != nil {
			return 0
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			parseErr = errors.Wrapf(models.ErrMalformed, "%s %q", name, s)
		}
		return v
	}

	c := models.Candle{
		OpenTime: time.UnixMilli(k.OpenTime).UTC(),
		Open:     parse("open", k.Open),
		High:     parse("high", k.High),
		Low:      parse("low", k.Low),
		Close:    parse("close", k.Close),
		Volume:   parse("volume", k.Volume),
	}
	if parseErr != nil {
		return models.Candle{}, parseErr
	}
	return c, nil
}

// Price
func (b *Binance) Price(ctx context.Context, symbol string) (t models.Ticker, err error) {
	span, ctx := tracing.StartSpan(ctx, "binance.price", opentracing.Tag{Key: "symbol", Value: symbol})
	started := time.Now()
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		b.metrics.ObserveFetch(sourceBinance, time.Since(started).Seconds(), err)
	}()

	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return models.Ticker{}, models.NewFetchError(sourceBinance, "price", errors.Wrap(models.ErrUpstream, err.Error()))
	}
	for _, p := range prices {
		if p == nil || p.Symbol != symbol {
			continue
		}
		px, err := decimal.NewFromString(p.Price)
		if err != nil {
			return models.Ticker{}, models.NewFetchError(sourceBinance, "price",
				errors.Wrapf(models.ErrMalformed, "price %q", p.Price))
		}
		return models.Ticker{Symbol: p.Symbol, Price: px}, nil
	}
	return models.Ticker{}, models.NewFetchError(sourceBinance, "price", errors.Wrap(models.ErrNotFound, symbol))
}
