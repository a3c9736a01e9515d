package binance

import (
	"strings"
)

// AggTradeStream returns the aggregated trade stream name for symbol.
func AggTradeStream(symbol string) string {
	return strings.ToLower(symbol) + "@aggTrade"
}

// ChunkStreams splits names into groups of at most size, keeping order.
func ChunkStreams(names []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	chunks := make([][]string, 0, (len(names)+size-1)/size)
	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))
		chunks = append(chunks, names[start:end])
	}
	return chunks
}

// CombinedStreamURL returns the websocket URL subscribing to streams.
func CombinedStreamURL(wsURL string, streams []string) string {
	return strings.TrimRight(wsURL, "/") + "/stream?streams=" + strings.Join(streams, "/")
}
