package service

import (
	"context"

	"go.uber.org/multierr"

	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/notify"
	"signal_bot/pkg/logger"
)

type Fetcher interface {
	Fetch(ctx context.Context, feed config.Feed) ([]models.Quest, error)
}

type Sink interface {
	Dispatch(ctx context.Context, recipients []int64, text string) error
}

// Poller опрашивает все ленты за проход, ошибка одной не мешает остальным.
type Poller struct {
	feeds      []config.Feed
	recipients []int64
	fetcher    Fetcher
	dedup      *Deduplicator
	sink       Sink
	metrics    *metrics.Metrics
}

func NewPoller(feeds []config.Feed, recipients []int64, f Fetcher, d *Deduplicator, s Sink, m *metrics.Metrics) *Poller {
	return &Poller{
		feeds:      feeds,
		recipients: recipients,
		fetcher:    f,
		dedup:      d,
		sink:       s,
		metrics:    m,
	}
}

func (p *Poller) Tick(ctx context.Context) error {
	var errs error
	for _, feed := range p.feeds {
		if err := p.pollFeed(ctx, feed); err != nil {
			logger.Error("quests: feed %s: %v", feed.Name, err)
			if p.metrics != nil {
				p.metrics.FeedErrorsTotal.WithLabelValues(feed.Name).Inc()
			}
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (p *Poller) pollFeed(ctx context.Context, feed config.Feed) error {
	quests, err := p.fetcher.Fetch(ctx, feed)
	if err != nil {
		return err
	}

	fresh, err := p.dedup.Process(ctx, feed.Name, quests, func(q models.NewQuest) {
		// сбой доставки уже залогирован диспетчером
		_ = p.sink.Dispatch(ctx, p.recipients, notify.FormatQuest(q))
	})
	if err != nil {
		return err
	}

	if len(fresh) > 0 {
		logger.Info("quests: feed %s: %d new", feed.Name, len(fresh))
		if p.metrics != nil {
			p.metrics.QuestsNewTotal.WithLabelValues(feed.Name).Add(float64(len(fresh)))
		}
	}
	return nil
}
