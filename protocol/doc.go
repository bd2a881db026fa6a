// Package protocol implements the croupier text protocol.
//
// Every datagram carries one command: a keyword followed by space separated
// arguments.
//
//	registerPlayer <ip> <port> <name>
//	bet <name> <amount>
//	hit <name>
//	stand <name>
//	split <name>
//	doubleDown <name>
//	surrender <name>
//	registerCounter <ip> <port> <name>
//	removePlayer <name>
//
// # Parsing
//
// Parse turns a line into one of the Command variants. Unknown keywords
// yield ErrUnknownCommand and are ignored by the Dispatcher. A known keyword
// with the wrong number of arguments, or a bet or port that is not a
// non-negative integer, yields ErrMalformed and the message is dropped.
//
// # Dispatching
//
// Dispatcher applies a parsed command to a Table and returns the deliveries
// to send back. Acknowledgements are addressed to the sender of the
// datagram; card notices are addressed to the endpoint the player registered
// with.
package protocol
