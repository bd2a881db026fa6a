package blackjack

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/luca-patrignani/croupier/domain/card"
	"github.com/luca-patrignani/croupier/domain/shoe"
)

// Target says where a message is delivered.
type Target int

const (
	// ToSender addresses whoever sent the current command.
	ToSender Target = iota
	// ToPlayer addresses the endpoint recorded at registration.
	ToPlayer
)

// Message is one outbound text datagram.
type Message struct {
	Target   Target
	Endpoint Endpoint // set when Target is ToPlayer
	Text     string
}

// Outcome holds the ordered messages a command produced. Declined is set
// when the command was refused; it wraps one of the package sentinel errors.
type Outcome struct {
	Messages []Message
	Declined error

	events []Event
}

func (o *Outcome) reply(text string) {
	o.Messages = append(o.Messages, Message{Target: ToSender, Text: text})
}

func (o *Outcome) decline(err error, text string) {
	o.Declined = err
	o.reply(text)
}

// Texts returns the message bodies in order.
func (o Outcome) Texts() []string {
	texts := make([]string, len(o.Messages))
	for i, m := range o.Messages {
		texts[i] = m.Text
	}
	return texts
}

// Snapshot is a consistent copy of the table state.
type Snapshot struct {
	Sessions      []Session `json:"sessions"`
	Capacity      int       `json:"capacity"`
	ShoeRemaining int       `json:"shoe_remaining"`
	Decks         int       `json:"decks"`
}

// Engine validates commands against the registry and draws from the shoe.
// All exported methods are safe for concurrent use.
type Engine struct {
	mu          sync.Mutex
	registry    *Registry
	shoe        *shoe.Shoe
	routing     HitRouting
	openingDeal bool
	recorder    Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithCapacity sets the number of seats at the table.
func WithCapacity(capacity int) Option {
	return func(e *Engine) {
		e.registry = NewRegistry(capacity)
	}
}

// WithHitRouting selects the hit routing rule.
func WithHitRouting(r HitRouting) Option {
	return func(e *Engine) {
		e.routing = r
	}
}

// WithOpeningDeal makes an accepted bet deal two cards to an empty primary hand.
func WithOpeningDeal(enabled bool) Option {
	return func(e *Engine) {
		e.openingDeal = enabled
	}
}

// WithRecorder sets where accepted events are sent.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock overrides the time source used for events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine dealing from s.
func NewEngine(s *shoe.Shoe, opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(TableCapacity),
		shoe:     s,
		routing:  RouteReference,
		recorder: nopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// exec runs fn under the engine lock. The produced events reach the recorder
// before the lock is released, so they are recorded in execution order.
func (e *Engine) exec(fn func(o *Outcome) error) (Outcome, error) {
	var o Outcome
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := fn(&o); err != nil {
		return Outcome{}, err
	}
	for _, ev := range o.events {
		if rerr := e.recorder.Record(ev); rerr != nil {
			e.logger.Warn("recording event failed", "kind", ev.Kind, "player", ev.Player, "error", rerr)
		}
	}
	o.events = nil
	return o, nil
}

func (e *Engine) event(o *Outcome, kind EventKind, s *Session) *Event {
	o.events = append(o.events, Event{
		Kind:      kind,
		Player:    s.Name,
		SessionID: s.ID.String(),
		Bet:       s.Bet,
		Time:      e.now(),
	})
	return &o.events[len(o.events)-1]
}

// ensureCards fails with shoe.ErrExhausted before any state is touched.
func (e *Engine) ensureCards(n int) error {
	if e.shoe.Remaining() < n {
		return fmt.Errorf("need %d cards, %d left: %w", n, e.shoe.Remaining(), shoe.ErrExhausted)
	}
	return nil
}

// deal draws one card into hand k and queues the card notice for the
// player's registered endpoint.
func (e *Engine) deal(o *Outcome, s *Session, k HandKind) (card.Card, error) {
	c, err := e.shoe.Deal()
	if err != nil {
		return card.Card{}, err
	}
	s.addCard(k, c)
	o.Messages = append(o.Messages, Message{Target: ToPlayer, Endpoint: s.Endpoint, Text: CardNotice(c)})
	ev := e.event(o, EventCardDealt, s)
	ev.Hand = k
	ev.Cards = []string{c.String()}
	ev.Value = Value(s.Hand(k))
	e.logger.Debug("card dealt", "player", s.Name, "hand", k, "card", c.Pretty(), "value", ev.Value, "shoe", e.shoe.Remaining())
	return c, nil
}

// checkBust zeros the bet and announces the loss when hand k is over 21.
func (e *Engine) checkBust(o *Outcome, s *Session, k HandKind) {
	if !IsBust(s.Hand(k)) {
		return
	}
	s.Bet = 0
	o.reply(RespGameOverBust)
	ev := e.event(o, EventBust, s)
	ev.Hand = k
	ev.Value = Value(s.Hand(k))
	e.logger.Info("player bust", "player", s.Name, "hand", k, "cards", card.Pretties(s.Hand(k)), "value", ev.Value)
}

// RegisterPlayer seats a new player reachable at ep.
func (e *Engine) RegisterPlayer(name string, ep Endpoint) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s := NewSession(name, ep, e.now())
		if err := e.registry.Insert(s); err != nil {
			reason := reasonTableFull
			if errors.Is(err, ErrNameTaken) {
				reason = reasonNameTaken
			}
			o.decline(err, respRegistrationDeclined+reason)
			e.logger.Info("registration declined", "player", name, "reason", err)
			return nil
		}
		o.reply(RespRegistrationSuccessful)
		e.event(o, EventRegistered, s)
		e.logger.Info("player registered", "player", name, "endpoint", ep.String(), "session", s.ID, "seated", e.registry.Len())
		return nil
	})
}

// Bet sets the player's stake. With the opening deal enabled and an empty
// primary hand, two cards are dealt before the bet is acknowledged.
func (e *Engine) Bet(name string, amount int) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok {
			o.decline(ErrUnknownPlayer, respBetDeclined+reasonUnknownPlayer)
			return nil
		}
		if amount < 0 {
			o.decline(fmt.Errorf("negative bet %d: %w", amount, ErrInvalidState), respBetDeclined+reasonInvalidBet)
			return nil
		}
		opening := e.openingDeal && len(s.Primary) == 0
		if opening {
			if err := e.ensureCards(2); err != nil {
				return err
			}
		}
		s.Bet = amount
		e.event(o, EventBet, s)
		if opening {
			for range 2 {
				if _, err := e.deal(o, s, PrimaryHand); err != nil {
					return err
				}
			}
		}
		o.reply(RespBetAccepted)
		return nil
	})
}

// Hit deals one card into the hand selected by the routing rule.
func (e *Engine) Hit(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok || s.Standing {
			o.decline(e.standingErr(ok), respActionDeclined+reasonStanding)
			return nil
		}
		k, ok := e.routing.target(s)
		if !ok {
			// no hand holds cards yet: nothing is dealt and nothing is sent
			o.Declined = fmt.Errorf("no hand to hit: %w", ErrInvalidState)
			return nil
		}
		if err := e.ensureCards(1); err != nil {
			return err
		}
		if _, err := e.deal(o, s, k); err != nil {
			return err
		}
		o.reply(RespActionAccepted)
		e.checkBust(o, s, k)
		return nil
	})
}

// Stand ends the player's turn on the primary hand.
func (e *Engine) Stand(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok {
			o.decline(ErrUnknownPlayer, respActionDeclined+reasonUnknownPlayer)
			return nil
		}
		s.Standing = true
		o.reply(RespActionAccepted)
		ev := e.event(o, EventStand, s)
		ev.Value = Value(s.Primary)
		return nil
	})
}

// Split divides a two card pair into two hands and deals one card to each.
func (e *Engine) Split(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok || s.HasSplit {
			err := ErrUnknownPlayer
			if ok {
				err = fmt.Errorf("already split: %w", ErrInvalidState)
			}
			o.decline(err, respActionDeclined+reasonAlreadySplit)
			return nil
		}
		if !s.canSplit() {
			o.decline(fmt.Errorf("hand is not a pair: %w", ErrInvalidState), respActionDeclined+reasonNoPair)
			return nil
		}
		if err := e.ensureCards(2); err != nil {
			return err
		}
		s.Split = []card.Card{s.Primary[1]}
		s.Primary = s.Primary[:1:1]
		s.HasSplit = true
		ev := e.event(o, EventSplit, s)
		ev.Cards = []string{s.Primary[0].String(), s.Split[0].String()}
		if _, err := e.deal(o, s, PrimaryHand); err != nil {
			return err
		}
		if _, err := e.deal(o, s, SplitHand); err != nil {
			return err
		}
		o.reply(RespActionAccepted)
		return nil
	})
}

// DoubleDown doubles the bet, deals exactly one card and ends the turn.
func (e *Engine) DoubleDown(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok || s.Standing {
			o.decline(e.standingErr(ok), respActionDeclined+reasonStanding)
			return nil
		}
		if len(s.Primary) != 2 {
			o.decline(fmt.Errorf("double down needs two cards, has %d: %w", len(s.Primary), ErrInvalidState), respActionDeclined+reasonDoubleDownCards)
			return nil
		}
		if s.Bet > math.MaxInt/2 {
			o.decline(fmt.Errorf("bet %d cannot be doubled: %w", s.Bet, ErrInvalidState), respActionDeclined+reasonDoubleDownCards)
			return nil
		}
		if err := e.ensureCards(1); err != nil {
			return err
		}
		s.Bet *= 2
		e.event(o, EventDoubleDown, s)
		if _, err := e.deal(o, s, PrimaryHand); err != nil {
			return err
		}
		s.Standing = true
		o.reply(RespActionAccepted)
		e.checkBust(o, s, PrimaryHand)
		return nil
	})
}

// Surrender refunds half the bet and removes the player from the table.
func (e *Engine) Surrender(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok {
			o.decline(ErrUnknownPlayer, respActionDeclined+reasonUnknownPlayer)
			return nil
		}
		if len(s.Primary) != 2 {
			o.decline(fmt.Errorf("surrender needs two cards, has %d: %w", len(s.Primary), ErrInvalidState), respActionDeclined+reasonSurrenderCards)
			return nil
		}
		s.Bet /= 2
		e.registry.Remove(name)
		o.reply(RespSurrendered)
		e.event(o, EventSurrender, s)
		e.logger.Info("player surrendered", "player", name, "refund", s.Bet)
		return nil
	})
}

// RegisterCounter acknowledges a counter for an already seated player. It
// only checks that the name is registered.
func (e *Engine) RegisterCounter(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		if _, ok := e.registry.Lookup(name); !ok {
			o.decline(ErrUnknownPlayer, respRegistrationDeclined+reasonUnknownName)
			return nil
		}
		o.reply(RespRegistrationSuccessful)
		return nil
	})
}

// RemovePlayer deletes the player's session.
func (e *Engine) RemovePlayer(name string) (Outcome, error) {
	return e.exec(func(o *Outcome) error {
		s, ok := e.registry.Lookup(name)
		if !ok {
			o.decline(ErrUnknownPlayer, RespPlayerNotFound)
			return nil
		}
		e.registry.Remove(name)
		o.reply(RespPlayerRemoved)
		e.event(o, EventRemoved, s)
		e.logger.Info("player removed", "player", name, "seated", e.registry.Len())
		return nil
	})
}

// Player returns a copy of the named session.
func (e *Engine) Player(name string) (Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.registry.Lookup(name)
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// Snapshot copies the whole table state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		Capacity:      e.registry.Capacity(),
		ShoeRemaining: e.shoe.Remaining(),
		Decks:         e.shoe.Decks(),
	}
	for _, name := range e.registry.Names() {
		s, _ := e.registry.Lookup(name)
		snap.Sessions = append(snap.Sessions, s.clone())
	}
	return snap
}

func (e *Engine) standingErr(found bool) error {
	if !found {
		return ErrUnknownPlayer
	}
	return fmt.Errorf("already standing: %w", ErrInvalidState)
}
