package upbit

import (
	"github.com/shopspring/decimal"
)

type OrderbookUnit struct {
	AskPrice decimal.Decimal `json:"ask_price"`
	BidPrice decimal.Decimal `json:"bid_price"`
	AskSize  decimal.Decimal `json:"ask_size"`
	BidSize  decimal.Decimal `json:"bid_size"`
}

type Orderbook struct {
	Market         string          `json:"market"`
	Timestamp      int64           `json:"timestamp"`
	TotalAskSize   decimal.Decimal `json:"total_ask_size"`
	TotalBidSize   decimal.Decimal `json:"total_bid_size"`
	OrderbookUnits []OrderbookUnit `json:"orderbook_units"`
}

type Ticker struct {
	Market            string          `json:"market"`
	TradePrice        decimal.Decimal `json:"trade_price"`
	OpeningPrice      decimal.Decimal `json:"opening_price"`
	HighPrice         decimal.Decimal `json:"high_price"`
	LowPrice          decimal.Decimal `json:"low_price"`
	AccTradeVolume24h decimal.Decimal `json:"acc_trade_volume_24h"`
	SignedChangeRate  decimal.Decimal `json:"signed_change_rate"`
	Timestamp         int64           `json:"timestamp"`
}

type Account struct {
	Currency            string          `json:"currency"`
	Balance             decimal.Decimal `json:"balance"`
	Locked              decimal.Decimal `json:"locked"`
	AvgBuyPrice         decimal.Decimal `json:"avg_buy_price"`
	AvgBuyPriceModified bool            `json:"avg_buy_price_modified"`
	UnitCurrency        string          `json:"unit_currency"`
}

type Order struct {
	UUID            string          `json:"uuid"`
	Market          string          `json:"market"`
	Side            string          `json:"side"`
	OrdType         string          `json:"ord_type"`
	State           string          `json:"state"`
	Price           decimal.Decimal `json:"price"`
	Volume          decimal.Decimal `json:"volume"`
	RemainingVolume decimal.Decimal `json:"remaining_volume"`
	ExecutedVolume  decimal.Decimal `json:"executed_volume"`
	CreatedAt       string          `json:"created_at"`
}
