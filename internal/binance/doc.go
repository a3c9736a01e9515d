// Package binance provides the Binance spot REST client and the stream
// naming used by the feeder.
//
// REST endpoint:
//   - https://api.binance.com/api/v3/exchangeInfo
//
// Combined websocket streams:
//   - wss://stream.binance.com:9443/stream?streams=btcusdt@aggTrade/ethusdt@aggTrade
//
// One combined connection carries at most 1024 streams; the feeder uses 50.
package binance
