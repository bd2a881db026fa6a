package shoe

import (
	"fmt"
	"math/rand/v2"

	"github.com/luca-patrignani/croupier/domain/card"
	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// randomSeed draws a ChaCha8 seed from the suite's cryptographic stream.
func randomSeed() (seed [32]byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("random stream: %v", r)
		}
	}()
	suite.RandomStream().XORKeyStream(seed[:], seed[:])
	return seed, nil
}

// shuffle applies a uniform Fisher-Yates permutation.
func shuffle(cards []card.Card, seed [32]byte) {
	r := rand.New(rand.NewChaCha8(seed))
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
