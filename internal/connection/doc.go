// Package connection maintains the feeder's websocket connections.
//
// A Stream owns one combined-stream URL. It dials a session, relays every
// frame to the router, and redials with exponential backoff when the
// session fails. Staleness is detected with read deadlines: frames, pings
// and pongs each push the deadline forward, and the client pings the server
// at half the timeout.
package connection
