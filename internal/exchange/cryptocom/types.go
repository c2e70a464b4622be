package cryptocom

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Ticker struct {
	InstrumentName string          `json:"i"`
	BestBid        decimal.Decimal `json:"b"`
	BestAsk        decimal.Decimal `json:"k"`
	LastTrade      decimal.Decimal `json:"a"`
	Timestamp      int64           `json:"t"`
	Volume24h      decimal.Decimal `json:"v"`
	High24h        decimal.Decimal `json:"h"`
	Low24h         decimal.Decimal `json:"l"`
	Change24h      decimal.Decimal `json:"c"`
}

type Trade struct {
	Price          decimal.Decimal `json:"p"`
	Quantity       decimal.Decimal `json:"q"`
	Side           string          `json:"s"`
	InstrumentName string          `json:"i"`
	Timestamp      int64           `json:"t"`
	ID             json.Number     `json:"d"`
}

// BookLevel decodes Crypto.com's [price, quantity, orders] book entries.
type BookLevel struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

func (l *BookLevel) UnmarshalJSON(data []byte) error {
	var raw []decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("book level needs at least 2 elements, got %d", len(raw))
	}
	l.Price, l.Quantity = raw[0], raw[1]
	return nil
}

type Book struct {
	Asks      []BookLevel `json:"asks"`
	Bids      []BookLevel `json:"bids"`
	Timestamp int64       `json:"t"`
}
