package binance

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type OrderType string

const (
	Limit  OrderType = "LIMIT"
	Market OrderType = "MARKET"
)

type TimeInForce string

const (
	GoodTilCanceled   TimeInForce = "GTC"
	ImmediateOrCancel TimeInForce = "IOC"
	FillOrKill        TimeInForce = "FOK"
)

// PriceLevel decodes Binance's ["price","qty"] depth entries.
type PriceLevel struct {
	Price decimal.Decimal
	Qty   decimal.Decimal
}

func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("price level needs 2 elements, got %d", len(raw))
	}
	price, err := decimal.NewFromString(raw[0])
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", raw[0], err)
	}
	qty, err := decimal.NewFromString(raw[1])
	if err != nil {
		return fmt.Errorf("invalid qty %q: %w", raw[1], err)
	}
	l.Price, l.Qty = price, qty
	return nil
}

type Depth struct {
	LastUpdateID int64        `json:"lastUpdateId"`
	Bids         []PriceLevel `json:"bids"`
	Asks         []PriceLevel `json:"asks"`
}

type TickerPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

type Balance struct {
	Asset  string          `json:"asset"`
	Free   decimal.Decimal `json:"free"`
	Locked decimal.Decimal `json:"locked"`
}

type Account struct {
	CanTrade   bool      `json:"canTrade"`
	UpdateTime int64     `json:"updateTime"`
	Balances   []Balance `json:"balances"`
}

type Order struct {
	Symbol        string          `json:"symbol"`
	OrderID       int64           `json:"orderId"`
	ClientOrderID string          `json:"clientOrderId"`
	Price         decimal.Decimal `json:"price"`
	OrigQty       decimal.Decimal `json:"origQty"`
	ExecutedQty   decimal.Decimal `json:"executedQty"`
	Status        string          `json:"status"`
	Side          Side            `json:"side"`
	Type          OrderType       `json:"type"`
	Time          int64           `json:"time"`
}

type OrderAck struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	TransactTime  int64  `json:"transactTime"`
	Status        string `json:"status"`
}

type CancelAck struct {
	Symbol            string `json:"symbol"`
	OrderID           int64  `json:"orderId"`
	OrigClientOrderID string `json:"origClientOrderId"`
	Status            string `json:"status"`
}
