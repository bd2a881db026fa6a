// Package network provides the datagram transport of the croupier.
//
// # Core Components
//
// Server: owns a UDP socket, reads one datagram at a time into a fixed
// size buffer and hands it to a Handler. Every Delivery the handler returns
// is written back with its own datagram.
//
// # Addressing
//
// The sender of a datagram is passed to the handler as an Endpoint.
// Deliveries carry their destination explicitly, so replies to the sender
// and notices to a registered endpoint share the same write path.
//
// # Failure Isolation
//
// A failed send is logged and the loop moves on. Serve returns only when
// its context is cancelled or the socket fails.
package network
