package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"signal_bot/internal/helper"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/pkg/tracing"
)

const (
	sourceP2P  = "p2p"
	p2pPath    = "/bapi/c2c/v2/friendly/c2c/adv/search"
	p2pOK      = "000000"
	p2pRows    = 10
	p2pTimeout = 10 * time.Second
)

type p2pSearch struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	TradeType     string   `json:"tradeType"`
	Page          int      `json:"page"`
	Rows          int      `json:"rows"`
	PayTypes      []string `json:"payTypes"`
	PublisherType *string  `json:"publisherType"`
}

type p2pResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    []struct {
		Adv struct {
			Price string `json:"price"`
		} `json:"adv"`
		Advertiser struct {
			NickName string `json:"nickName"`
		} `json:"advertiser"`
	} `json:"data"`
}

// P2P: лучшие объявления Binance P2P.
type P2P struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

func NewP2P(baseURL string, httpClient *http.Client, m *metrics.Metrics) *P2P {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: p2pTimeout}
	}
	return &P2P{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		metrics: m,
	}
}

// BestQuote: первое объявление выдачи, Binance сортирует по цене.
func (p *P2P) BestQuote(ctx context.Context, asset, fiat string, side models.TradeType) (q models.P2PQuote, err error) {
	span, ctx := tracing.StartSpan(ctx, "binance.p2p",
		opentracing.Tag{Key: "asset", Value: asset},
		opentracing.Tag{Key: "fiat", Value: fiat},
	)
	started := time.Now()
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		p.metrics.ObserveFetch(sourceP2P, time.Since(started).Seconds(), err)
	}()

	var resp p2pResponse
	err = helper.DoJSON(ctx, p.http, helper.Request{
		Source: sourceP2P,
		Op:     "search",
		Method: http.MethodPost,
		URL:    p.baseURL + p2pPath,
		Body: p2pSearch{
			Asset:     asset,
			Fiat:      fiat,
			TradeType: string(side),
			Page:      1,
			Rows:      p2pRows,
			PayTypes:  []string{},
		},
	}, &resp)
	if err != nil {
		return models.P2PQuote{}, err
	}

	if resp.Code != p2pOK {
		return models.P2PQuote{}, models.NewFetchError(sourceP2P, "search",
			errors.Wrapf(models.ErrUpstream, "code %s: %s", resp.Code, resp.Message))
	}
	if len(resp.Data) == 0 {
		return models.P2PQuote{}, models.NewFetchError(sourceP2P, "search",
			errors.Wrapf(models.ErrNotFound, "no ads for %s/%s", asset, fiat))
	}

	best := resp.Data[0]
	price, err := decimal.NewFromString(best.Adv.Price)
	if err != nil || !price.IsPositive() {
		return models.P2PQuote{}, models.NewFetchError(sourceP2P, "search",
			errors.Wrapf(models.ErrMalformed, "price %q", best.Adv.Price))
	}

	return models.P2PQuote{
		Asset:      asset,
		Fiat:       fiat,
		TradeType:  side,
		Price:      price,
		Advertiser: best.Advertiser.NickName,
	}, nil
}
