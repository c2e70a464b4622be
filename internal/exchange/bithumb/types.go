package bithumb

import (
	"github.com/shopspring/decimal"
)

type Ticker struct {
	OpeningPrice decimal.Decimal `json:"opening_price"`
	ClosingPrice decimal.Decimal `json:"closing_price"`
	MinPrice     decimal.Decimal `json:"min_price"`
	MaxPrice     decimal.Decimal `json:"max_price"`
	UnitsTraded  decimal.Decimal `json:"units_traded"`
	PrevClosing  decimal.Decimal `json:"prev_closing_price"`
	Date         string          `json:"date"`
}

type OrderbookEntry struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Orderbook struct {
	OrderCurrency   string           `json:"order_currency"`
	PaymentCurrency string           `json:"payment_currency"`
	Timestamp       string           `json:"timestamp"`
	Bids            []OrderbookEntry `json:"bids"`
	Asks            []OrderbookEntry `json:"asks"`
}

type Transaction struct {
	TransactionDate string          `json:"transaction_date"`
	Type            string          `json:"type"`
	UnitsTraded     decimal.Decimal `json:"units_traded"`
	Price           decimal.Decimal `json:"price"`
	Total           decimal.Decimal `json:"total"`
}

type OrderInfo struct {
	OrderCurrency   string          `json:"order_currency"`
	PaymentCurrency string          `json:"payment_currency"`
	OrderID         string          `json:"order_id"`
	OrderDate       string          `json:"order_date"`
	Type            string          `json:"type"`
	Units           decimal.Decimal `json:"units"`
	UnitsRemaining  decimal.Decimal `json:"units_remaining"`
	Price           decimal.Decimal `json:"price"`
}
