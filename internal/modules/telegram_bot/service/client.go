package service

import (
	"context"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	health "signal_bot/internal/modules/health/service"
	"signal_bot/pkg/logger"
)

// Telegram отправляет текст и крутит цикл апдейтов.
type Telegram struct {
	bot    *tgbot.BotAPI
	router *Router
	state  *health.State

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTelegram(token string, router *Router, state *health.State) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: init bot")
	}
	logger.Info("telegram: authorized as @%s", b.Self.UserName)

	return &Telegram{
		bot:    b,
		router: router,
		state:  state,
	}, nil
}

// SendText режет длинный текст на части под лимит Telegram.
func (t *Telegram) SendText(ctx context.Context, chatID int64, text string) error {
	for _, part := range splitMessage(text, maxMessageLen) {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbot.NewMessage(chatID, part)
		msg.DisableWebPagePreview = true
		if _, err := t.bot.Send(msg); err != nil {
			return errors.Wrapf(err, "telegram: send to %d", chatID)
		}
	}
	return nil
}

// Start не блокирует: апдейты читаются в отдельной горутине по одному.
func (t *Telegram) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	t.cancel = cancel

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(ctx, update)
			}
		}
	}()
}

func (t *Telegram) Stop() {
	if t.cancel == nil {
		return
	}
	t.bot.StopReceivingUpdates()
	t.cancel()
	t.wg.Wait()
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	if t.state != nil {
		t.state.TouchUpdate()
	}

	// callback-кнопок и inline-режима нет, только сообщения
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	reply := t.router.Handle(ctx, msg.Chat.ID, msg.Text)
	if reply == "" {
		return
	}
	if err := t.SendText(ctx, msg.Chat.ID, reply); err != nil {
		logger.Error("telegram: reply failed: %v", err)
	}
}
