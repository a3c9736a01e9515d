package binance

import (
	"context"
	"strings"

	"github.com/rickgao/trade-aggregator/internal/model"
)

// ExchangeName is the exchange identifier sent with every trade.
const ExchangeName = "binance"

// Symbol is one entry of GET /api/v3/exchangeInfo.
type Symbol struct {
	Symbol              string `json:"symbol"`
	Status              string `json:"status"`
	BaseAsset           string `json:"baseAsset"`
	BaseAssetPrecision  int32  `json:"baseAssetPrecision"`
	QuoteAsset          string `json:"quoteAsset"`
	QuoteAssetPrecision int32  `json:"quoteAssetPrecision"`
}

// ExchangeInfo from GET /api/v3/exchangeInfo
type ExchangeInfo struct {
	Timezone   string   `json:"timezone"`
	ServerTime int64    `json:"serverTime"`
	Symbols    []Symbol `json:"symbols"`
}

// Market converts the symbol to the SyncMarkets payload.
func (s Symbol) Market() model.Market {
	return model.Market{
		Symbol:              s.Symbol,
		Status:              s.Status,
		BaseAsset:           s.BaseAsset,
		BaseAssetPrecision:  s.BaseAssetPrecision,
		QuoteAsset:          s.QuoteAsset,
		QuoteAssetPrecision: s.QuoteAssetPrecision,
		Exchange:            ExchangeName,
	}
}

// GetExchangeInfo fetches the exchange's symbol list.
func (c *Client) GetExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	var info ExchangeInfo
	if err := c.get(ctx, "/api/v3/exchangeInfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TradingSymbols returns the symbols with status TRADING. When allow is
// non-empty only those symbols (case-insensitive) are kept.
func TradingSymbols(info *ExchangeInfo, allow []string) []Symbol {
	allowed := make(map[string]bool, len(allow))
	for _, s := range allow {
		allowed[strings.ToUpper(s)] = true
	}

	var out []Symbol
	for _, s := range info.Symbols {
		if s.Status != "TRADING" {
			continue
		}
		if len(allowed) > 0 && !allowed[s.Symbol] {
			continue
		}
		out = append(out, s)
	}
	return out
}
