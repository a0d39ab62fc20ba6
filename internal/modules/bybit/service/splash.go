package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"signal_bot/internal/helper"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/pkg/tracing"
)

const (
	sourceBybit = "bybit"

	projectListPath   = "/spot/api/deposit-activity/v2/project/ongoing/projectList"
	projectDetailPath = "/spot/api/deposit-activity/v2/project/detail"
)

type envelope[T any] struct {
	RetCode int    `json:"ret_code"`
	RetMsg  string `json:"ret_msg"`
	Result  T      `json:"result"`
}

type projectDTO struct {
	Code           helper.FlexString `json:"code"`
	Token          string            `json:"token"`
	ApplyStart     int64             `json:"applyStart"`
	ApplyEnd       int64             `json:"applyEnd"`
	DepositStart   int64             `json:"depositStart"`
	DepositEnd     int64             `json:"depositEnd"`
	Participants   helper.FlexString `json:"participants"`
	TotalPrizePool helper.FlexString `json:"totalPrizePool"`
}

type detailDTO struct {
	Token             string            `json:"token"`
	ApplyStart        int64             `json:"applyStart"`
	ApplyEnd          int64             `json:"applyEnd"`
	NewUserPrize      helper.FlexString `json:"newUserPrize"`
	NewUserPrizeToken string            `json:"newUserPrizeToken"`
	TradeAirdropTop   helper.FlexString `json:"tradeAirdropTop"`
	TradeToken        string            `json:"tradeToken"`
}

// Splash: клиент Bybit token splash (deposit activity).
type Splash struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

func NewSplash(baseURL string, httpClient *http.Client, m *metrics.Metrics) *Splash {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Splash{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		metrics: m,
	}
}

// Projects
func (s *Splash) Projects(ctx context.Context) (out []models.SplashProject, err error) {
	span, ctx := tracing.StartSpan(ctx, "bybit.projects")
	started := time.Now()
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		s.metrics.ObserveFetch(sourceBybit, time.Since(started).Seconds(), err)
	}()

	var resp envelope[[]projectDTO]
	if err = s.get(ctx, "projects", s.baseURL+projectListPath, &resp); err != nil {
		return nil, err
	}

	out = make([]models.SplashProject, 0, len(resp.Result))
	for _, p := range resp.Result {
		if p.Token == "" || p.Code == "" {
			return nil, models.NewFetchError(sourceBybit, "projects",
				errors.Wrap(models.ErrMalformed, "project without token or code"))
		}
		out = append(out, models.SplashProject{
			Code:           p.Code.String(),
			Token:          p.Token,
			ApplyStart:     fromMillis(p.ApplyStart),
			ApplyEnd:       fromMillis(p.ApplyEnd),
			DepositStart:   fromMillis(p.DepositStart),
			DepositEnd:     fromMillis(p.DepositEnd),
			Participants:   parseCount(p.Participants),
			TotalPrizePool: p.TotalPrizePool.String(),
		})
	}
	return out, nil
}

// Detail: детали проекта по коду.
func (s *Splash) Detail(ctx context.Context, projectCode string) (d models.SplashDetail, err error) {
	span, ctx := tracing.StartSpan(ctx, "bybit.detail", opentracing.Tag{Key: "project", Value: projectCode})
	started := time.Now()
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		s.metrics.ObserveFetch(sourceBybit, time.Since(started).Seconds(), err)
	}()

	var resp envelope[detailDTO]
	u := s.baseURL + projectDetailPath + "?projectCode=" + url.QueryEscape(projectCode)
	if err = s.get(ctx, "detail", u, &resp); err != nil {
		return models.SplashDetail{}, err
	}

	r := resp.Result
	return models.SplashDetail{
		Token:             r.Token,
		ApplyStart:        fromMillis(r.ApplyStart),
		ApplyEnd:          fromMillis(r.ApplyEnd),
		NewUserPrize:      r.NewUserPrize.String(),
		NewUserPrizeToken: r.NewUserPrizeToken,
		TradeAirdropTop:   r.TradeAirdropTop.String(),
		TradeToken:        r.TradeToken,
	}, nil
}

// DetailByToken ищет проект по тикеру в списке и тянет детали. Нет такого: ErrNotFound.
func (s *Splash) DetailByToken(ctx context.Context, token string) (models.SplashDetail, error) {
	projects, err := s.Projects(ctx)
	if err != nil {
		return models.SplashDetail{}, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Token, token) {
			return s.Detail(ctx, p.Code)
		}
	}
	return models.SplashDetail{}, models.NewFetchError(sourceBybit, "detail", errors.Wrap(models.ErrNotFound, token))
}

func (s *Splash) get(ctx context.Context, op, u string, out interface{ code() (int, string) }) error {
	if err := helper.DoJSON(ctx, s.http, helper.Request{Source: sourceBybit, Op: op, URL: u}, out); err != nil {
		return err
	}
	if code, msg := out.code(); code != 0 {
		return models.NewFetchError(sourceBybit, op, errors.Wrapf(models.ErrUpstream, "ret_code %d: %s", code, msg))
	}
	return nil
}

func (e *envelope[T]) code() (int, string) { return e.RetCode, e.RetMsg }

func parseCount(v helper.FlexString) int64 {
	n, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
