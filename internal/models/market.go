package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ticker struct {
	Symbol string
	Price  decimal.Decimal
}

type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// P2PQuote: лучшее объявление P2P по активу в фиате.
type P2PQuote struct {
	Asset      string
	Fiat       string
	TradeType  TradeType
	Price      decimal.Decimal
	Advertiser string
}

// SplashProject: проект Bybit token splash из списка ongoing.
type SplashProject struct {
	Code           string
	Token          string
	ApplyStart     time.Time
	ApplyEnd       time.Time
	DepositStart   time.Time
	DepositEnd     time.Time
	Participants   int64
	TotalPrizePool string
}

// SplashDetail: детали проекта по projectCode.
type SplashDetail struct {
	Token             string
	ApplyStart        time.Time
	ApplyEnd          time.Time
	NewUserPrize      string
	NewUserPrizeToken string
	TradeAirdropTop   string
	TradeToken        string
}
