package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"signal_bot/internal/helper"
	"signal_bot/internal/indicator"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	"signal_bot/internal/notify"
	"signal_bot/internal/runner"
	"signal_bot/internal/strategy"
	"signal_bot/pkg/logger"
)

const (
	replyFetchFailed = "cannot fetch data"
	replyUnknown     = "Unknown command. Send /help for the list."
	replyNotFound    = "Token not found"

	analysisLimit = 100
	stable        = "USDT"
)

const helpText = "Commands:\n" +
	"/price <symbol> - last price, e.g. /price btc\n" +
	"/val <amount> <coin> - value in USDT and local fiat\n" +
	"/p2p <amount> <coin> - value at the best Binance P2P price\n" +
	"/margin <coin> <interval> - indicators and signal (1m 3m 5m 15m 30m 1h 2h 4h 6h 12h 1d)\n" +
	"/smargin <symbol> - RSI-only signal\n" +
	"/signal on|off - subscribe to the signal watcher\n" +
	"/splash [TOKEN] - ongoing Bybit token splash projects"

type MarketData interface {
	Klines(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
	Price(ctx context.Context, symbol string) (models.Ticker, error)
}

type P2PQuotes interface {
	BestQuote(ctx context.Context, asset, fiat string, side models.TradeType) (models.P2PQuote, error)
}

type Splash interface {
	Projects(ctx context.Context) ([]models.SplashProject, error)
	DetailByToken(ctx context.Context, token string) (models.SplashDetail, error)
}

type RouterConfig struct {
	Fiat string
	// интервал для /smargin, совпадает с вотчером
	Interval string
}

// Router разбирает текст сообщения и возвращает ответ. Пустая строка: отвечать не нужно.
type Router struct {
	cfg      RouterConfig
	market   MarketData
	p2p      P2PQuotes
	splash   Splash
	watchers *runner.Watchers
	metrics  *metrics.Metrics
}

func NewRouter(cfg RouterConfig, market MarketData, p2p P2PQuotes, splash Splash, w *runner.Watchers, m *metrics.Metrics) *Router {
	if cfg.Interval == "" {
		cfg.Interval = "1m"
	}
	return &Router{
		cfg:      cfg,
		market:   market,
		p2p:      p2p,
		splash:   splash,
		watchers: w,
		metrics:  m,
	}
}

func (r *Router) Handle(ctx context.Context, chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	// "token splash" без слеша тоже команда
	if strings.EqualFold(fields[0], "token") && len(fields) >= 2 && strings.EqualFold(fields[1], "splash") {
		r.count("splash")
		return r.handleSplash(ctx, fields[2:])
	}

	if !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	// в группах приходит /price@bot_name
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	args := fields[1:]

	r.count(cmd)
	switch cmd {
	case "start", "help":
		return helpText
	case "price":
		return r.handlePrice(ctx, args)
	case "val":
		return r.handleVal(ctx, args)
	case "p2p":
		return r.handleP2P(ctx, args)
	case "margin":
		return r.handleMargin(ctx, args)
	case "smargin":
		return r.handleSimple(ctx, args)
	case "signal":
		return r.handleSignal(chatID, args)
	case "splash":
		return r.handleSplash(ctx, args)
	default:
		return replyUnknown
	}
}

func (r *Router) count(cmd string) {
	if r.metrics == nil {
		return
	}
	switch cmd {
	case "start", "help", "price", "val", "p2p", "margin", "smargin", "signal", "splash":
	default:
		cmd = "unknown"
	}
	r.metrics.CommandsTotal.WithLabelValues(cmd).Inc()
}

func (r *Router) handlePrice(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return "Usage: /price <symbol>"
	}
	symbol := helper.NormalizeSymbol(args[0])
	t, err := r.market.Price(ctx, symbol)
	if err != nil {
		return fetchFailed("price", err)
	}
	return fmt.Sprintf("%s: %s", t.Symbol, t.Price.String())
}

func (r *Router) handleVal(ctx context.Context, args []string) string {
	const usage = "Usage: /val <amount> <coin>, e.g. /val 0.5 btc"
	amount, coin, ok := parseAmount(args)
	if !ok {
		return usage
	}

	usdt := amount
	if coin != stable {
		t, err := r.market.Price(ctx, helper.NormalizeSymbol(coin))
		if err != nil {
			return fetchFailed("val", err)
		}
		usdt = amount.Mul(t.Price)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s = %s %s", amount.String(), coin, usdt.Round(4).String(), stable)
	if r.cfg.Fiat == "" {
		return b.String()
	}

	// фиат по P2P-курсу USDT, при ошибке отвечаем без него
	q, err := r.p2p.BestQuote(ctx, stable, r.cfg.Fiat, models.TradeBuy)
	if err != nil {
		logger.Warn("telegram: p2p quote for /val failed: %v", err)
		return b.String()
	}
	fmt.Fprintf(&b, "\n≈ %s %s (P2P %s)", usdt.Mul(q.Price).Round(0).String(), r.cfg.Fiat, q.Price.String())
	return b.String()
}

func (r *Router) handleP2P(ctx context.Context, args []string) string {
	const usage = "Usage: /p2p <amount> <coin>, e.g. /p2p 100 usdt"
	amount, coin, ok := parseAmount(args)
	if !ok {
		return usage
	}
	if r.cfg.Fiat == "" {
		return "P2P fiat is not configured"
	}

	q, err := r.p2p.BestQuote(ctx, coin, r.cfg.Fiat, models.TradeBuy)
	if err != nil {
		return fetchFailed("p2p", err)
	}
	msg := fmt.Sprintf("%s %s = %s %s\nBest P2P price: %s %s",
		amount.String(), coin, amount.Mul(q.Price).Round(2).String(), q.Fiat, q.Price.String(), q.Fiat)
	if q.Advertiser != "" {
		msg += " (" + q.Advertiser + ")"
	}
	return msg
}

func (r *Router) handleMargin(ctx context.Context, args []string) string {
	usage := "Usage: /margin <coin> <interval>, interval one of " + strings.Join(helper.Intervals(), " ")
	if len(args) != 2 {
		return usage
	}
	interval := helper.NormTF(args[1])
	if !helper.ValidInterval(interval) {
		return usage
	}
	symbol := helper.NormalizeSymbol(args[0])

	candles, err := r.market.Klines(ctx, symbol, interval, analysisLimit)
	if err != nil {
		return fetchFailed("margin", err)
	}
	snap, err := indicator.Snapshot(candles)
	if err != nil {
		// мало истории у нового листинга
		return fmt.Sprintf("📊 %s %s\nSignal: NONE (not enough candles)", symbol, interval)
	}
	sig := strategy.NewConfluence().FromSnapshot(symbol, interval, snap)
	return notify.FormatAnalysis(symbol, interval, snap, sig)
}

func (r *Router) handleSimple(ctx context.Context, args []string) string {
	if len(args) != 1 {
		return "Usage: /smargin <symbol>"
	}
	symbol := helper.NormalizeSymbol(args[0])
	candles, err := r.market.Klines(ctx, symbol, r.cfg.Interval, analysisLimit)
	if err != nil {
		return fetchFailed("smargin", err)
	}

	sig := strategy.SimpleClassify(symbol, r.cfg.Interval, candles)
	if sig.IsNone() {
		return fmt.Sprintf("Signal: NONE for %s (%s)\n%s", symbol, r.cfg.Interval, sig.Reason)
	}
	return notify.FormatSignal(sig)
}

func (r *Router) handleSignal(chatID int64, args []string) string {
	if len(args) != 1 {
		return "Usage: /signal on|off"
	}
	switch strings.ToLower(args[0]) {
	case "on":
		if !r.watchers.Enable(chatID) {
			return "Signal watcher is already on"
		}
		return "✅ Signal watcher on"
	case "off":
		if !r.watchers.Disable(chatID) {
			return "Signal watcher is already off"
		}
		return "🛑 Signal watcher off"
	default:
		return "Usage: /signal on|off"
	}
}

func (r *Router) handleSplash(ctx context.Context, args []string) string {
	switch len(args) {
	case 0:
		projects, err := r.splash.Projects(ctx)
		if err != nil {
			return fetchFailed("splash", err)
		}
		return notify.FormatSplashList(projects)
	case 1:
		d, err := r.splash.DetailByToken(ctx, args[0])
		if errors.Is(err, models.ErrNotFound) {
			return replyNotFound
		}
		if err != nil {
			return fetchFailed("splash", err)
		}
		return notify.FormatSplashDetail(d)
	default:
		return "Usage: /splash [TOKEN]"
	}
}

// parseAmount: "<amount> <coin>", запятая как разделитель тоже подходит.
func parseAmount(args []string) (decimal.Decimal, string, bool) {
	if len(args) != 2 {
		return decimal.Zero, "", false
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(args[0], ",", "."))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, "", false
	}
	coin := helper.BaseAsset(strings.ToUpper(args[1]))
	if coin == "" {
		return decimal.Zero, "", false
	}
	return amount, coin, true
}

func fetchFailed(cmd string, err error) string {
	logger.Error("telegram: /%s failed: %v", cmd, err)
	return replyFetchFailed
}
