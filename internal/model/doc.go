// Package model defines the data types shared by the gateway and the feeder.
//
// Conventions:
//   - Prices and quantities: decimal strings exactly as reported by the exchange
//   - Trade times: float64 seconds since the Unix epoch on the wire, time.Time in the store
//   - Exchange IDs: uuid.UUID
package model
