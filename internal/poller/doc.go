// Package poller implements the market poller.
//
// The market poller:
//   - Fetches the exchange's market list on start and every interval
//   - Hands each list to a handler, which announces it to the gateway
//   - Bounds every cycle with a timeout; a failed cycle is logged and retried
//     on the next tick
package poller
