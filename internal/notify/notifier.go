package notify

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"signal_bot/internal/metrics"
	"signal_bot/pkg/logger"
)

// Sender: единственное, что нужно от мессенджера для рассылки.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Dispatcher рассылает один текст списку чатов.
type Dispatcher struct {
	sender  Sender
	metrics *metrics.Metrics
}

func NewDispatcher(sender Sender, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{sender: sender, metrics: m}
}

// Dispatch доставляет всем: ошибка по одному чату логируется и копится, остальные получают текст.
func (d *Dispatcher) Dispatch(ctx context.Context, recipients []int64, text string) error {
	var errs error
	for _, chatID := range recipients {
		if err := d.sender.SendText(ctx, chatID, text); err != nil {
			logger.Error("notify: send to %d failed: %v", chatID, err)
			if d.metrics != nil {
				d.metrics.DispatchFailures.Inc()
			}
			errs = multierr.Append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errs
}
