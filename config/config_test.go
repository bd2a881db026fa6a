package config

import (
	"testing"

	"github.com/luca-patrignani/croupier/domain/blackjack"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":12345" || cfg.Decks != 4 || cfg.Capacity != 5 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.HitRouting != blackjack.RouteReference || cfg.OpeningDeal || !cfg.Ledger {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.NatsURL != "" || cfg.StatusAddr != "" || cfg.DiscoveryPort != 0 {
		t.Fatalf("expected optional components disabled, got %+v", cfg)
	}
}

func TestLoad_Environment(t *testing.T) {
	cfg, err := Load(nil, env(map[string]string{
		"CROUPIER_ADDR":           "127.0.0.1:4000",
		"CROUPIER_DECKS":          "6",
		"CROUPIER_CAPACITY":       "7",
		"CROUPIER_HIT_ROUTING":    "split-after-bust",
		"CROUPIER_OPENING_DEAL":   "true",
		"NATS_URL":                "nats://broker:4222",
		"CROUPIER_STATUS_ADDR":    ":8080",
		"CROUPIER_DISCOVERY_PORT": "53550",
	}))
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Addr:          "127.0.0.1:4000",
		Decks:         6,
		Capacity:      7,
		HitRouting:    blackjack.RouteSplitAfterBust,
		OpeningDeal:   true,
		NatsURL:       "nats://broker:4222",
		EventsPrefix:  "croupier.events",
		StatusAddr:    ":8080",
		DiscoveryPort: 53550,
		AnnounceEvery: DefaultAnnounce,
		Ledger:        true,
	}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
}

func TestLoad_OpeningDealIsOptIn(t *testing.T) {
	cfg, err := Load(nil, env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpeningDeal {
		t.Fatal("expected bet not to deal by default")
	}
	cfg, err = Load([]string{"-opening-deal"}, env(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.OpeningDeal {
		t.Fatal("expected -opening-deal to enable the deal")
	}
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	cfg, err := Load([]string{"-decks", "2", "-addr", ":9999"}, env(map[string]string{"CROUPIER_DECKS": "6"}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Decks != 2 || cfg.Addr != ":9999" {
		t.Fatalf("expected flags to win, got %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		args []string
		env  map[string]string
	}{
		"zero decks":      {args: []string{"-decks", "0"}},
		"negative seats":  {args: []string{"-capacity", "-1"}},
		"unknown routing": {args: []string{"-hit-routing", "random"}},
		"bad env number":  {env: map[string]string{"CROUPIER_DECKS": "four"}},
		"bad env bool":    {env: map[string]string{"CROUPIER_OPENING_DEAL": "maybe"}},
		"port overflow":   {args: []string{"-discovery-port", "70000"}},
		"unknown flag":    {args: []string{"-tables", "3"}},
		"zero announce":   {args: []string{"-discovery-port", "5000", "-announce-every", "0s"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(tt.args, env(tt.env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
