package blackjack

import "github.com/luca-patrignani/croupier/domain/card"

// Response vocabulary. Decline reasons are kept verbatim for existing clients.
const (
	RespRegistrationSuccessful = "registration successful"
	RespBetAccepted            = "bet accepted"
	RespActionAccepted         = "action accepted"
	RespSurrendered            = "action accepted gameover surrender erfolgreich"
	RespPlayerRemoved          = "player removed"
	RespPlayerNotFound         = "player not found"
	RespGameOverBust           = "gameover Du hast verloren"

	respRegistrationDeclined = "registration declined "
	respBetDeclined          = "bet declined "
	respActionDeclined       = "action declined "
)

// Decline reasons.
const (
	reasonTableFull       = "zu viele Spieler"
	reasonNameTaken       = "Spielername bereits vergeben"
	reasonUnknownName     = "unbekannter Spielername"
	reasonUnknownPlayer   = "unbekannter Spieler"
	reasonInvalidBet      = "ungültiger Einsatz"
	reasonStanding        = "unbekannter Spieler oder bereits gestanden"
	reasonAlreadySplit    = "unbekannter Spieler oder bereits gesplittet"
	reasonNoPair          = "keine passenden Karten zum Split"
	reasonDoubleDownCards = "nicht genug Karten für DoubleDown"
	reasonSurrenderCards  = "nicht genug Karten für Surrender"
)

// CardNotice is the proactive message announcing a dealt card.
func CardNotice(c card.Card) string {
	return "card " + c.String()
}
