// Package config reads the croupier settings from flags with environment
// fallbacks. A flag given on the command line wins over the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/luca-patrignani/croupier/domain/blackjack"
)

// Config holds every croupier setting.
type Config struct {
	Addr          string
	Decks         int
	Capacity      int
	HitRouting    blackjack.HitRouting
	OpeningDeal   bool
	NatsURL       string
	EventsPrefix  string
	StatusAddr    string
	DiscoveryPort uint16
	AnnounceEvery time.Duration
	Ledger        bool
	Debug         bool
}

// Defaults for settings without an environment value.
const (
	DefaultAddr     = ":12345"
	DefaultDecks    = 4
	DefaultAnnounce = 2 * time.Second
)

// getEnv returns the value of key or fallback when it is unset or empty.
func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(getenv func(string) string, key string, fallback int) (int, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(getenv func(string) string, key string, fallback bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// Load parses args (without the program name) on top of the environment
// read through getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	decks, err := envInt(getenv, "CROUPIER_DECKS", DefaultDecks)
	if err != nil {
		return Config{}, err
	}
	capacity, err := envInt(getenv, "CROUPIER_CAPACITY", blackjack.TableCapacity)
	if err != nil {
		return Config{}, err
	}
	discoveryPort, err := envInt(getenv, "CROUPIER_DISCOVERY_PORT", 0)
	if err != nil {
		return Config{}, err
	}
	openingDeal, err := envBool(getenv, "CROUPIER_OPENING_DEAL", false)
	if err != nil {
		return Config{}, err
	}
	ledgerOn, err := envBool(getenv, "CROUPIER_LEDGER", true)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	var routing string
	var port uint
	fs := flag.NewFlagSet("croupier", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", getEnv(getenv, "CROUPIER_ADDR", DefaultAddr), "UDP address to listen on")
	fs.IntVar(&cfg.Decks, "decks", decks, "number of decks in the shoe")
	fs.IntVar(&cfg.Capacity, "capacity", capacity, "number of seats at the table")
	fs.StringVar(&routing, "hit-routing", getEnv(getenv, "CROUPIER_HIT_ROUTING", string(blackjack.RouteReference)), "hand a hit goes to after a split: reference or split-after-bust")
	fs.BoolVar(&cfg.OpeningDeal, "opening-deal", openingDeal, "deal two cards on the first accepted bet of an empty hand; off keeps the plain protocol where bet never deals")
	fs.StringVar(&cfg.NatsURL, "nats-url", getEnv(getenv, "NATS_URL", ""), "NATS server for event publishing, empty disables")
	fs.StringVar(&cfg.EventsPrefix, "events-prefix", getEnv(getenv, "CROUPIER_EVENTS_PREFIX", "croupier.events"), "NATS subject prefix")
	fs.StringVar(&cfg.StatusAddr, "status-addr", getEnv(getenv, "CROUPIER_STATUS_ADDR", ""), "HTTP status address, empty disables")
	fs.UintVar(&port, "discovery-port", uint(discoveryPort), "multicast announcement port, 0 disables")
	fs.DurationVar(&cfg.AnnounceEvery, "announce-every", DefaultAnnounce, "interval between announcements")
	fs.BoolVar(&cfg.Ledger, "ledger", ledgerOn, "keep a hash chained journal of events")
	fs.BoolVar(&cfg.Debug, "debug", getEnv(getenv, "CROUPIER_DEBUG", "") != "", "log every dealt card")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if port > 65535 {
		return Config{}, fmt.Errorf("discovery port %d out of range", port)
	}
	cfg.DiscoveryPort = uint16(port)
	cfg.HitRouting, err = blackjack.ParseHitRouting(routing)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Decks < 1 {
		errs = append(errs, fmt.Errorf("decks must be at least 1, got %d", c.Decks))
	}
	if c.Capacity < 1 {
		errs = append(errs, fmt.Errorf("capacity must be at least 1, got %d", c.Capacity))
	}
	if c.AnnounceEvery <= 0 && c.DiscoveryPort != 0 {
		errs = append(errs, fmt.Errorf("announce interval must be positive, got %s", c.AnnounceEvery))
	}
	return errors.Join(errs...)
}
