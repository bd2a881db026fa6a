package protocol

import "github.com/luca-patrignani/croupier/domain/blackjack"

// Command is one parsed protocol message. The set of variants is closed.
type Command interface {
	// Keyword returns the protocol keyword of the command.
	Keyword() string
	command()
}

// RegisterPlayer seats a player reachable at Endpoint.
type RegisterPlayer struct {
	Endpoint blackjack.Endpoint
	Name     string
}

// Bet sets the player's stake.
type Bet struct {
	Name   string
	Amount int
}

// Hit asks for one more card.
type Hit struct{ Name string }

// Stand ends the player's turn.
type Stand struct{ Name string }

// Split divides a pair into two hands.
type Split struct{ Name string }

// DoubleDown doubles the stake for exactly one card.
type DoubleDown struct{ Name string }

// Surrender gives up half the stake and leaves the table.
type Surrender struct{ Name string }

// RegisterCounter carries an endpoint for wire compatibility; only the name
// is checked.
type RegisterCounter struct {
	Endpoint blackjack.Endpoint
	Name     string
}

// RemovePlayer deletes the player's session.
type RemovePlayer struct{ Name string }

const (
	kwRegisterPlayer  = "registerPlayer"
	kwBet             = "bet"
	kwHit             = "hit"
	kwStand           = "stand"
	kwSplit           = "split"
	kwDoubleDown      = "doubleDown"
	kwSurrender       = "surrender"
	kwRegisterCounter = "registerCounter"
	kwRemovePlayer    = "removePlayer"
)

func (RegisterPlayer) Keyword() string  { return kwRegisterPlayer }
func (Bet) Keyword() string             { return kwBet }
func (Hit) Keyword() string             { return kwHit }
func (Stand) Keyword() string           { return kwStand }
func (Split) Keyword() string           { return kwSplit }
func (DoubleDown) Keyword() string      { return kwDoubleDown }
func (Surrender) Keyword() string       { return kwSurrender }
func (RegisterCounter) Keyword() string { return kwRegisterCounter }
func (RemovePlayer) Keyword() string    { return kwRemovePlayer }

func (RegisterPlayer) command()  {}
func (Bet) command()             {}
func (Hit) command()             {}
func (Stand) command()           {}
func (Split) command()           {}
func (DoubleDown) command()      {}
func (Surrender) command()       {}
func (RegisterCounter) command() {}
func (RemovePlayer) command()    {}
