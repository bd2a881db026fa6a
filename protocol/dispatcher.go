package protocol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/domain/shoe"
)

// Table is the game state a Dispatcher drives. *blackjack.Engine implements it.
type Table interface {
	RegisterPlayer(name string, ep blackjack.Endpoint) (blackjack.Outcome, error)
	Bet(name string, amount int) (blackjack.Outcome, error)
	Hit(name string) (blackjack.Outcome, error)
	Stand(name string) (blackjack.Outcome, error)
	Split(name string) (blackjack.Outcome, error)
	DoubleDown(name string) (blackjack.Outcome, error)
	Surrender(name string) (blackjack.Outcome, error)
	RegisterCounter(name string) (blackjack.Outcome, error)
	RemovePlayer(name string) (blackjack.Outcome, error)
}

// Delivery is one datagram to send.
type Delivery struct {
	To   blackjack.Endpoint
	Text string
}

// Dispatcher turns datagrams into table commands and their replies.
type Dispatcher struct {
	table  Table
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher for t. A nil logger means slog.Default().
func NewDispatcher(t Table, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{table: t, logger: logger}
}

// Handle processes one datagram received from sender. It never fails: a
// message that cannot be applied produces no deliveries.
func (d *Dispatcher) Handle(ctx context.Context, payload []byte, sender blackjack.Endpoint) (deliveries []Delivery) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "command panicked", "from", sender.String(), "panic", fmt.Sprint(r))
			deliveries = nil
		}
	}()
	if ctx.Err() != nil {
		return nil
	}

	line := string(payload)
	cmd, err := Parse(line)
	switch {
	case errors.Is(err, ErrUnknownCommand):
		d.logger.DebugContext(ctx, "ignoring unknown command", "from", sender.String(), "error", err)
		return nil
	case err != nil:
		d.logger.WarnContext(ctx, "dropping malformed command", "from", sender.String(), "line", line, "error", err)
		return nil
	}

	out, err := d.apply(cmd)
	if err != nil {
		if errors.Is(err, shoe.ErrExhausted) {
			d.logger.ErrorContext(ctx, "shoe exhausted, command dropped", "command", cmd.Keyword(), "from", sender.String(), "error", err)
		} else {
			d.logger.ErrorContext(ctx, "command failed", "command", cmd.Keyword(), "from", sender.String(), "error", err)
		}
		return nil
	}
	if out.Declined != nil {
		d.logger.InfoContext(ctx, "command declined", "command", cmd.Keyword(), "from", sender.String(), "reason", out.Declined)
	}

	deliveries = make([]Delivery, 0, len(out.Messages))
	for _, m := range out.Messages {
		to := sender
		if m.Target == blackjack.ToPlayer {
			to = m.Endpoint
		}
		deliveries = append(deliveries, Delivery{To: to, Text: m.Text})
	}
	return deliveries
}

func (d *Dispatcher) apply(cmd Command) (blackjack.Outcome, error) {
	switch c := cmd.(type) {
	case RegisterPlayer:
		return d.table.RegisterPlayer(c.Name, c.Endpoint)
	case Bet:
		return d.table.Bet(c.Name, c.Amount)
	case Hit:
		return d.table.Hit(c.Name)
	case Stand:
		return d.table.Stand(c.Name)
	case Split:
		return d.table.Split(c.Name)
	case DoubleDown:
		return d.table.DoubleDown(c.Name)
	case Surrender:
		return d.table.Surrender(c.Name)
	case RegisterCounter:
		return d.table.RegisterCounter(c.Name)
	case RemovePlayer:
		return d.table.RemovePlayer(c.Name)
	}
	return blackjack.Outcome{}, fmt.Errorf("%T: %w", cmd, ErrUnknownCommand)
}
