package okx

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Value is a decimal that tolerates the empty strings OKX uses where a
// number is absent (for example askPx on a one-sided book).
type Value struct {
	decimal.Decimal
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			v.Decimal = decimal.Zero
			return nil
		}
		dec, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		v.Decimal = dec
		return nil
	}
	return v.Decimal.UnmarshalJSON(data)
}

type Ticker struct {
	InstType string `json:"instType"`
	InstID   string `json:"instId"`
	Last     Value  `json:"last"`
	LastSz   Value  `json:"lastSz"`
	AskPx    Value  `json:"askPx"`
	AskSz    Value  `json:"askSz"`
	BidPx    Value  `json:"bidPx"`
	BidSz    Value  `json:"bidSz"`
	Open24h  Value  `json:"open24h"`
	High24h  Value  `json:"high24h"`
	Low24h   Value  `json:"low24h"`
	Vol24h   Value  `json:"vol24h"`
	Ts       string `json:"ts"`
}

// BookLevel decodes OKX's ["px","sz","liqOrders","numOrders"] book entries.
type BookLevel struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

func (l *BookLevel) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("book level needs at least 2 elements, got %d", len(raw))
	}
	price, err := decimal.NewFromString(raw[0])
	if err != nil {
		return fmt.Errorf("invalid px %q: %w", raw[0], err)
	}
	size, err := decimal.NewFromString(raw[1])
	if err != nil {
		return fmt.Errorf("invalid sz %q: %w", raw[1], err)
	}
	l.Price, l.Size = price, size
	return nil
}

type Book struct {
	Asks []BookLevel `json:"asks"`
	Bids []BookLevel `json:"bids"`
	Ts   string      `json:"ts"`
}

type BalanceDetail struct {
	Ccy       string `json:"ccy"`
	CashBal   Value  `json:"cashBal"`
	AvailBal  Value  `json:"availBal"`
	FrozenBal Value  `json:"frozenBal"`
}

type Balance struct {
	TotalEq Value           `json:"totalEq"`
	Details []BalanceDetail `json:"details"`
}

type OrderAck struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId"`
	SCode   string `json:"sCode"`
	SMsg    string `json:"sMsg"`
}
