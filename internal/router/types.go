package router

// Config holds configuration for the trade router.
type Config struct {
	Exchange   string // Exchange name stamped on every trade
	BufferSize int    // Initial capacity of the trade queue
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Exchange:   "binance",
		BufferSize: 10000,
	}
}

// Stats contains runtime statistics.
type Stats struct {
	MessagesReceived int64
	TradesRouted     int64
	ParseErrors      int64
	UnknownMessages  int64
	Queue            QueueStats
}

// Wire types for JSON parsing

// combinedFrame is the envelope of every combined-stream message:
// {"stream":"btcusdt@aggTrade","data":{...}}.
type combinedFrame struct {
	Stream string       `json:"stream"`
	Data   aggTradeWire `json:"data"`
}

// aggTradeWire is the payload of an aggregated trade event.
type aggTradeWire struct {
	EventType    string `json:"e"` // "aggTrade"
	EventTime    int64  `json:"E"` // Milliseconds
	Symbol       string `json:"s"`
	AggTradeID   int64  `json:"a"`
	Price        string `json:"p"`
	Quantity     string `json:"q"`
	FirstTradeID int64  `json:"f"`
	LastTradeID  int64  `json:"l"`
	TradeTime    int64  `json:"T"` // Milliseconds
	BuyerIsMaker bool   `json:"m"`
	Ignore       bool   `json:"M"`
}
