// Package syncpb contains the messages and service definition of the
// sync.SyncService protobuf API (proto/sync.proto).
package syncpb

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

func text(m protoadapt.MessageV1) string {
	return prototext.Format(protoadapt.MessageV2Of(m))
}

// Empty is returned by every SyncService method.
type Empty struct{}

func (m *Empty) Reset()         { *m = Empty{} }
func (m *Empty) String() string { return text(m) }
func (*Empty) ProtoMessage()    {}

// SyncMarketsRequest describes one market listed by an exchange.
type SyncMarketsRequest struct {
	Symbol              string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Status              string `protobuf:"bytes,2,opt,name=status,proto3" json:"status,omitempty"`
	BaseAsset           string `protobuf:"bytes,3,opt,name=base_asset,json=baseAsset,proto3" json:"base_asset,omitempty"`
	BaseAssetPrecision  int32  `protobuf:"varint,4,opt,name=base_asset_precision,json=baseAssetPrecision,proto3" json:"base_asset_precision,omitempty"`
	QuoteAsset          string `protobuf:"bytes,5,opt,name=quote_asset,json=quoteAsset,proto3" json:"quote_asset,omitempty"`
	QuoteAssetPrecision int32  `protobuf:"varint,6,opt,name=quote_asset_precision,json=quoteAssetPrecision,proto3" json:"quote_asset_precision,omitempty"`
	Exchange            string `protobuf:"bytes,7,opt,name=exchange,proto3" json:"exchange,omitempty"`
}

func (m *SyncMarketsRequest) Reset()         { *m = SyncMarketsRequest{} }
func (m *SyncMarketsRequest) String() string { return text(m) }
func (*SyncMarketsRequest) ProtoMessage()    {}

func (m *SyncMarketsRequest) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *SyncMarketsRequest) GetExchange() string {
	if m != nil {
		return m.Exchange
	}
	return ""
}

// TradeRequest is a single executed trade reported by an exchange feeder.
type TradeRequest struct {
	Symbol   string `protobuf:"bytes,1,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Price    string `protobuf:"bytes,2,opt,name=price,proto3" json:"price,omitempty"`
	Quantity string `protobuf:"bytes,3,opt,name=quantity,proto3" json:"quantity,omitempty"`
	// TradeTime is seconds since the Unix epoch; the fraction carries sub-second precision.
	TradeTime float64 `protobuf:"fixed64,4,opt,name=trade_time,json=tradeTime,proto3" json:"trade_time,omitempty"`
	Exchange  string  `protobuf:"bytes,5,opt,name=exchange,proto3" json:"exchange,omitempty"`
}

func (m *TradeRequest) Reset()         { *m = TradeRequest{} }
func (m *TradeRequest) String() string { return text(m) }
func (*TradeRequest) ProtoMessage()    {}

func (m *TradeRequest) GetSymbol() string {
	if m != nil {
		return m.Symbol
	}
	return ""
}

func (m *TradeRequest) GetPrice() string {
	if m != nil {
		return m.Price
	}
	return ""
}

func (m *TradeRequest) GetQuantity() string {
	if m != nil {
		return m.Quantity
	}
	return ""
}

func (m *TradeRequest) GetTradeTime() float64 {
	if m != nil {
		return m.TradeTime
	}
	return 0
}

func (m *TradeRequest) GetExchange() string {
	if m != nil {
		return m.Exchange
	}
	return ""
}
