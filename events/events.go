// Package events publishes table events to NATS.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/luca-patrignani/croupier/domain/blackjack"
)

// DefaultPrefix is the subject prefix events are published under.
const DefaultPrefix = "croupier.events"

// Connect opens a NATS connection identified by name.
func Connect(url, name string) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	return nats.Connect(url, opts...)
}

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher sends every recorded event as JSON on "<prefix>.<kind>".
type Publisher struct {
	conn   Conn
	prefix string
}

// NewPublisher publishes on conn under prefix, DefaultPrefix when empty.
func NewPublisher(conn Conn, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Publisher{conn: conn, prefix: prefix}
}

// Subject returns the subject ev is published on.
func (p *Publisher) Subject(kind blackjack.EventKind) string {
	return p.prefix + "." + string(kind)
}

// Record publishes ev as JSON.
func (p *Publisher) Record(ev blackjack.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(p.Subject(ev.Kind), data); err != nil {
		return fmt.Errorf("publishing %s: %w", ev.Kind, err)
	}
	return nil
}

// Fanout hands each event to every recorder and joins their errors.
type Fanout []blackjack.Recorder

// Record passes ev to every recorder, even after a failure.
func (f Fanout) Record(ev blackjack.Event) error {
	var errs []error
	for _, r := range f {
		if err := r.Record(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
