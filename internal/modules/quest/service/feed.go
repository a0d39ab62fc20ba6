package service

import (
	"context"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"signal_bot/internal/helper"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/pkg/tracing"
)

type questDTO struct {
	ID     helper.FlexString `json:"id"`
	Title  string            `json:"title"`
	Quests []questDTO        `json:"quests"`
}

// FeedClient тянет ленты квестов: GET со статическими заголовками.
type FeedClient struct {
	http    *http.Client
	metrics *metrics.Metrics
}

func NewFeedClient(httpClient *http.Client, m *metrics.Metrics) *FeedClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FeedClient{http: httpClient, metrics: m}
}

func (c *FeedClient) Fetch(ctx context.Context, feed config.Feed) (out []models.Quest, err error) {
	source := "quest:" + feed.Name
	span, ctx := tracing.StartSpan(ctx, "quest.fetch", opentracing.Tag{Key: "feed", Value: feed.Name})
	started := time.Now()
	defer func() {
		tracing.Fail(span, err)
		span.Finish()
		c.metrics.ObserveFetch(source, time.Since(started).Seconds(), err)
	}()

	var payload []questDTO
	err = helper.DoJSON(ctx, c.http, helper.Request{
		Source:  source,
		Op:      "fetch",
		URL:     feed.URL,
		Headers: feed.Headers,
	}, &payload)
	if err != nil {
		return nil, err
	}

	out, err = toQuests(payload)
	if err != nil {
		return nil, models.NewFetchError(source, "fetch", err)
	}
	return out, nil
}

func toQuests(in []questDTO) ([]models.Quest, error) {
	out := make([]models.Quest, 0, len(in))
	for i, q := range in {
		if q.ID == "" {
			return nil, errors.Wrapf(models.ErrMalformed, "quest %d has no id", i)
		}
		children, err := toQuests(q.Quests)
		if err != nil {
			return nil, errors.Wrapf(err, "quest %s", q.ID)
		}
		out = append(out, models.Quest{ID: q.ID.String(), Title: q.Title, Quests: children})
	}
	return out, nil
}
