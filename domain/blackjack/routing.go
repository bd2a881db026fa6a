package blackjack

import "fmt"

// HitRouting decides which hand a hit is dealt into. The protocol gives the
// client no way to pick a hand, so the rule is fixed per table.
type HitRouting string

const (
	// RouteReference favors the primary hand while it holds cards and either
	// no split hand exists or a split was performed; otherwise it targets an
	// unresolved split hand. After a split every hit lands on the primary
	// hand.
	RouteReference HitRouting = "reference"
	// RouteSplitAfterBust follows RouteReference until the primary hand of a
	// split session busts, then hits go to the split hand.
	RouteSplitAfterBust HitRouting = "split-after-bust"
)

// ParseHitRouting validates a routing name.
func ParseHitRouting(name string) (HitRouting, error) {
	switch r := HitRouting(name); r {
	case RouteReference, RouteSplitAfterBust:
		return r, nil
	}
	return "", fmt.Errorf("unknown hit routing %q", name)
}

// target returns the hand to deal into, or false when no hand qualifies.
func (r HitRouting) target(s *Session) (HandKind, bool) {
	if r == RouteSplitAfterBust && s.HasSplit && len(s.Split) > 0 && IsBust(s.Primary) {
		return SplitHand, true
	}
	if len(s.Primary) > 0 && (len(s.Split) == 0 || s.HasSplit) {
		return PrimaryHand, true
	}
	if len(s.Split) > 0 && !s.HasSplit {
		return SplitHand, true
	}
	return "", false
}
