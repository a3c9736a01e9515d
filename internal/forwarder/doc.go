// Package forwarder sends routed trades to the gateway.
//
// The forwarder:
//   - Drains the router's trade buffer
//   - Calls PushTrade with bounded concurrency and a per-push timeout
//   - Counts processed, sent and failed trades
//   - Announces the feeder's markets with the SyncMarkets stream
package forwarder
