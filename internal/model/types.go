package model

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/trade-aggregator/internal/pb/exchangespb"
	"github.com/rickgao/trade-aggregator/internal/pb/syncpb"
)

// Trade represents an executed trade reported by an exchange.
// No field is validated; the store decides what it accepts.
type Trade struct {
	Symbol    string  // Market symbol (e.g., "BTCUSDT")
	Price     string  // Decimal string (e.g., "50000.00")
	Quantity  string  // Decimal string (e.g., "0.01")
	TradeTime float64 // Seconds since epoch, fractional
	Exchange  string  // Exchange identifier (e.g., "binance")
}

// Time returns the trade time in UTC, rounded to microseconds (the
// resolution of a Postgres timestamptz).
func (t Trade) Time() time.Time {
	return SecondsToTime(t.TradeTime)
}

// Proto converts the trade to its wire form.
func (t Trade) Proto() *syncpb.TradeRequest {
	return &syncpb.TradeRequest{
		Symbol:    t.Symbol,
		Price:     t.Price,
		Quantity:  t.Quantity,
		TradeTime: t.TradeTime,
		Exchange:  t.Exchange,
	}
}

// TradeFromProto converts a wire request to a Trade.
func TradeFromProto(req *syncpb.TradeRequest) Trade {
	return Trade{
		Symbol:    req.GetSymbol(),
		Price:     req.GetPrice(),
		Quantity:  req.GetQuantity(),
		TradeTime: req.GetTradeTime(),
		Exchange:  req.GetExchange(),
	}
}

// SecondsToTime converts fractional epoch seconds to a UTC time with
// microsecond precision.
func SecondsToTime(sec float64) time.Time {
	whole := math.Floor(sec)
	micros := math.Round((sec - whole) * 1e6)
	return time.Unix(int64(whole), int64(micros)*int64(time.Microsecond)).UTC()
}

// Market describes a tradeable pair listed by an exchange.
type Market struct {
	Symbol              string // e.g., "BTCUSDT"
	Status              string // e.g., "TRADING"
	BaseAsset           string
	BaseAssetPrecision  int32
	QuoteAsset          string
	QuoteAssetPrecision int32
	Exchange            string
}

// Proto converts the market to its SyncMarkets wire form.
func (m Market) Proto() *syncpb.SyncMarketsRequest {
	return &syncpb.SyncMarketsRequest{
		Symbol:              m.Symbol,
		Status:              m.Status,
		BaseAsset:           m.BaseAsset,
		BaseAssetPrecision:  m.BaseAssetPrecision,
		QuoteAsset:          m.QuoteAsset,
		QuoteAssetPrecision: m.QuoteAssetPrecision,
		Exchange:            m.Exchange,
	}
}

// Exchange is a trading venue registered with the gateway.
type Exchange struct {
	ID          uuid.UUID // Primary key
	Name        string    // Unique name (e.g., "binance")
	Description string
}

// Proto converts the exchange to its wire form.
func (e Exchange) Proto() *exchangespb.Exchange {
	return &exchangespb.Exchange{
		Id:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
	}
}
