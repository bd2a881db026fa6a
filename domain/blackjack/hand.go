package blackjack

import "github.com/luca-patrignani/croupier/domain/card"

// BustLimit is the highest total that is not a bust.
const BustLimit = 21

// Value returns the blackjack total of hand. Aces count 11 and are folded
// to 1, one at a time, while the total exceeds 21.
func Value(hand []card.Card) int {
	total, _ := evaluate(hand)
	return total
}

// IsBust reports whether the hand total exceeds 21 after folding aces.
func IsBust(hand []card.Card) bool {
	return Value(hand) > BustLimit
}

// IsSoft reports whether at least one ace still counts as 11.
func IsSoft(hand []card.Card) bool {
	_, soft := evaluate(hand)
	return soft > 0
}

// IsBlackjack reports a two card 21.
func IsBlackjack(hand []card.Card) bool {
	return len(hand) == 2 && Value(hand) == BustLimit
}

// evaluate returns the folded total and the number of aces still counted as 11.
func evaluate(hand []card.Card) (total int, softAces int) {
	for _, c := range hand {
		if c.Rank() == card.Ace {
			softAces++
		}
		total += c.BaseValue()
	}
	for total > BustLimit && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}
