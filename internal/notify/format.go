package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"signal_bot/internal/models"
	"signal_bot/internal/strategy"
)

const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp: YYYY-MM-DD hh:mm:ss-UTC, для нулевого времени "-".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(timestampLayout) + "-UTC"
}

// FormatPrice: точность зависит от порядка цены, мелкие монеты не превращаются в 0.00.
func FormatPrice(v float64) string {
	places := int32(8)
	switch {
	case v >= 1000:
		places = 2
	case v >= 1:
		places = 4
	}
	return decimal.NewFromFloat(v).Round(places).String()
}

func FormatSignal(s models.Signal) string {
	emoji := "🟢"
	if s.Direction == models.DirectionShort {
		emoji = "🔴"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", emoji, s.Direction, s.Symbol)
	if s.Interval != "" {
		fmt.Fprintf(&b, " (%s)", s.Interval)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Entry: %s\n", FormatPrice(s.Entry))
	fmt.Fprintf(&b, "Stop loss: %s\n", FormatPrice(s.StopLoss))
	fmt.Fprintf(&b, "Take profit: %s\n", FormatPrice(s.TakeProfit))
	fmt.Fprintf(&b, "Confidence: %.0f%%", s.Confidence)
	if s.Reason != "" {
		fmt.Fprintf(&b, "\n%s", s.Reason)
	}
	return b.String()
}

// FormatAnalysis собирает ответ /margin из снапшота и решения.
func FormatAnalysis(symbol, interval string, snap models.IndicatorSnapshot, sig models.Signal) string {
	cross := "no cross"
	switch strategy.MACDCross(snap) {
	case 1:
		cross = "bullish cross"
	case -1:
		cross = "bearish cross"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s %s\n", symbol, interval)
	fmt.Fprintf(&b, "Close: %s\n", FormatPrice(snap.Close))
	fmt.Fprintf(&b, "RSI(14): %.2f\n", snap.RSI)
	fmt.Fprintf(&b, "MA7 / MA21: %s / %s (%s)\n", FormatPrice(snap.MA7), FormatPrice(snap.MA21), strategy.Trend(snap))
	fmt.Fprintf(&b, "EMA12 / EMA26: %s / %s\n", FormatPrice(snap.EMA12), FormatPrice(snap.EMA26))
	fmt.Fprintf(&b, "MACD: %.6f, signal %.6f (%s)\n", snap.MACD, snap.MACDSignal, cross)
	fmt.Fprintf(&b, "Bollinger: %s / %s / %s (%s)\n",
		FormatPrice(snap.Bollinger.Lower), FormatPrice(snap.Bollinger.Middle), FormatPrice(snap.Bollinger.Upper),
		strategy.BandPosition(snap))

	if sig.IsNone() {
		b.WriteString("Signal: NONE")
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(FormatSignal(sig))
	return b.String()
}

func FormatQuest(q models.NewQuest) string {
	title := q.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("🆕 New quest [%s]\n%s\nID: %s", q.Feed, title, q.ID)
}

func FormatSplashList(projects []models.SplashProject) string {
	if len(projects) == 0 {
		return "No ongoing token splash projects"
	}
	items := make([]string, 0, len(projects))
	for _, p := range projects {
		items = append(items, fmt.Sprintf(
			"✦ Token: (%s)\n"+
				"⏳ Registration: %s - %s\n"+
				"💰 Deposit starts: %s\n"+
				"👥 Participants: %d\n"+
				"🎁 Prize pool: 💎 %s %s\n",
			p.Token,
			FormatTimestamp(p.ApplyStart), FormatTimestamp(p.ApplyEnd),
			FormatTimestamp(p.DepositStart),
			p.Participants,
			p.TotalPrizePool, p.Token,
		))
	}
	return strings.Join(items, "\n\n")
}

func FormatSplashDetail(d models.SplashDetail) string {
	return fmt.Sprintf(
		"✦ Token: (%s)\n"+
			"⏳ Start: ⏰ %s\n"+
			"⏳ End: ⏰ %s\n"+
			"🏆 New user prize: 🎉 %s %s\n"+
			"💰 Trade airdrop top: 💎 %s %s\n",
		d.Token,
		FormatTimestamp(d.ApplyStart),
		FormatTimestamp(d.ApplyEnd),
		d.NewUserPrize, d.NewUserPrizeToken,
		d.TradeAirdropTop, d.TradeToken,
	)
}
