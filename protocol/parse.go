package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/luca-patrignani/croupier/domain/blackjack"
)

var (
	// ErrUnknownCommand is returned for an empty line or an unknown keyword.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMalformed is returned for a known keyword with bad arguments.
	ErrMalformed = errors.New("malformed command")
)

// arity is the number of arguments after the keyword.
var arity = map[string]int{
	kwRegisterPlayer:  3,
	kwBet:             2,
	kwHit:             1,
	kwStand:           1,
	kwSplit:           1,
	kwDoubleDown:      1,
	kwSurrender:       1,
	kwRegisterCounter: 3,
	kwRemovePlayer:    1,
}

// Parse decodes a single command line.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty message: %w", ErrUnknownCommand)
	}
	kw, args := fields[0], fields[1:]
	n, ok := arity[kw]
	if !ok {
		return nil, fmt.Errorf("%q: %w", kw, ErrUnknownCommand)
	}
	if len(args) != n {
		return nil, fmt.Errorf("%s takes %d arguments, got %d: %w", kw, n, len(args), ErrMalformed)
	}

	switch kw {
	case kwRegisterPlayer, kwRegisterCounter:
		ep, err := parseEndpoint(args[0], args[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kw, err)
		}
		if kw == kwRegisterPlayer {
			return RegisterPlayer{Endpoint: ep, Name: args[2]}, nil
		}
		return RegisterCounter{Endpoint: ep, Name: args[2]}, nil
	case kwBet:
		amount, err := strconv.Atoi(args[1])
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("bet amount %q: %w", args[1], ErrMalformed)
		}
		return Bet{Name: args[0], Amount: amount}, nil
	case kwHit:
		return Hit{Name: args[0]}, nil
	case kwStand:
		return Stand{Name: args[0]}, nil
	case kwSplit:
		return Split{Name: args[0]}, nil
	case kwDoubleDown:
		return DoubleDown{Name: args[0]}, nil
	case kwSurrender:
		return Surrender{Name: args[0]}, nil
	default:
		return RemovePlayer{Name: args[0]}, nil
	}
}

func parseEndpoint(host, port string) (blackjack.Endpoint, error) {
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return blackjack.Endpoint{}, fmt.Errorf("port %q: %w", port, ErrMalformed)
	}
	return blackjack.Endpoint{Host: host, Port: p}, nil
}
