package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/protocol"
)

// DefaultBufferSize is the largest datagram read in one go; longer ones are
// truncated.
const DefaultBufferSize = 1024

// Handler processes one datagram. *protocol.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, payload []byte, sender blackjack.Endpoint) []protocol.Delivery
}

// Server is a UDP endpoint driving a Handler.
type Server struct {
	conn       *net.UDPConn
	handler    Handler
	logger     *slog.Logger
	bufferSize int
}

type serverOption func(Server) Server

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) serverOption {
	return func(s Server) Server {
		s.logger = logger
		return s
	}
}

// WithBufferSize sets the largest datagram read.
func WithBufferSize(size int) serverOption {
	return func(s Server) Server {
		s.bufferSize = size
		return s
	}
}

// Listen binds a UDP socket on addr.
func Listen(addr string, h Handler, opts ...serverOption) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	s := Server{
		conn:       conn,
		handler:    h,
		logger:     slog.Default(),
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		s = opt(s)
	}
	return &s, nil
}

// Addr returns the bound local address.
func (s *Server) Addr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// Serve runs the receive loop until ctx is cancelled. Cancellation closes
// the socket and Serve returns nil.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.conn.Close()
	})
	defer stop()

	s.logger.Info("croupier listening", "address", s.Addr().String())
	buffer := make([]byte, s.bufferSize)
	for {
		n, from, err := s.conn.ReadFromUDP(buffer)
		if err != nil {
			if errors.Is(err, net.ErrClosed) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("receiving datagram: %w", err)
		}
		sender := blackjack.Endpoint{Host: from.IP.String(), Port: from.Port}
		payload := make([]byte, n)
		copy(payload, buffer[:n])
		s.logger.Debug("datagram received", "from", sender.String(), "bytes", n)
		for _, d := range s.handler.Handle(ctx, payload, sender) {
			if err := s.send(d); err != nil {
				s.logger.Warn("send failed", "to", d.To.String(), "text", d.Text, "error", err)
			}
		}
	}
}

// Close releases the socket.
func (s *Server) Close() error {
	err := s.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (s *Server) send(d protocol.Delivery) error {
	addr, err := net.ResolveUDPAddr("udp", d.To.String())
	if err != nil {
		return err
	}
	_, err = s.conn.WriteToUDP([]byte(d.Text), addr)
	return err
}
