// Package exchangespb contains the messages and service definition of the
// exchanges.ExchangeService protobuf API (proto/exchanges.proto).
package exchangespb

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/protoadapt"
)

func text(m protoadapt.MessageV1) string {
	return prototext.Format(protoadapt.MessageV2Of(m))
}

// Exchange is a trading venue known to the gateway.
type Exchange struct {
	Id          string `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Name        string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Description string `protobuf:"bytes,3,opt,name=description,proto3" json:"description,omitempty"`
}

func (m *Exchange) Reset()         { *m = Exchange{} }
func (m *Exchange) String() string { return text(m) }
func (*Exchange) ProtoMessage()    {}

func (m *Exchange) GetId() string {
	if m != nil {
		return m.Id
	}
	return ""
}

func (m *Exchange) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *Exchange) GetDescription() string {
	if m != nil {
		return m.Description
	}
	return ""
}

type ListExchangesRequest struct{}

func (m *ListExchangesRequest) Reset()         { *m = ListExchangesRequest{} }
func (m *ListExchangesRequest) String() string { return text(m) }
func (*ListExchangesRequest) ProtoMessage()    {}

type ListExchangesResponse struct {
	Exchanges []*Exchange `protobuf:"bytes,1,rep,name=exchanges,proto3" json:"exchanges,omitempty"`
}

func (m *ListExchangesResponse) Reset()         { *m = ListExchangesResponse{} }
func (m *ListExchangesResponse) String() string { return text(m) }
func (*ListExchangesResponse) ProtoMessage()    {}

func (m *ListExchangesResponse) GetExchanges() []*Exchange {
	if m != nil {
		return m.Exchanges
	}
	return nil
}

type AddExchangeRequest struct {
	Name        string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Description string `protobuf:"bytes,2,opt,name=description,proto3" json:"description,omitempty"`
}

func (m *AddExchangeRequest) Reset()         { *m = AddExchangeRequest{} }
func (m *AddExchangeRequest) String() string { return text(m) }
func (*AddExchangeRequest) ProtoMessage()    {}

func (m *AddExchangeRequest) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *AddExchangeRequest) GetDescription() string {
	if m != nil {
		return m.Description
	}
	return ""
}

type AddExchangeResponse struct{}

func (m *AddExchangeResponse) Reset()         { *m = AddExchangeResponse{} }
func (m *AddExchangeResponse) String() string { return text(m) }
func (*AddExchangeResponse) ProtoMessage()    {}
