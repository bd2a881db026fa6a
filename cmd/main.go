package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pterm/pterm"

	"github.com/luca-patrignani/croupier/config"
	"github.com/luca-patrignani/croupier/discovery"
	"github.com/luca-patrignani/croupier/domain/blackjack"
	"github.com/luca-patrignani/croupier/domain/shoe"
	"github.com/luca-patrignani/croupier/events"
	"github.com/luca-patrignani/croupier/ledger"
	"github.com/luca-patrignani/croupier/network"
	"github.com/luca-patrignani/croupier/protocol"
	"github.com/luca-patrignani/croupier/status"
)

func main() {
	// Create a new slog handler with the default PTerm logger
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if cfg.Debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}

	printBanner()
	printConfig(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := newCroupier(cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	if err := c.run(ctx); err != nil {
		logger.Error("croupier stopped", "error", err)
		os.Exit(1)
	}
	printTable(c.engine.Snapshot())
}

// croupier holds the running components.
type croupier struct {
	cfg       config.Config
	logger    *slog.Logger
	engine    *blackjack.Engine
	journal   *ledger.Journal
	nc        *nats.Conn
	server    *network.Server
	status    *http.Server
	announcer *discovery.Announcer
}

func newCroupier(cfg config.Config, logger *slog.Logger) (*croupier, error) {
	c := &croupier{cfg: cfg, logger: logger}

	s, err := shoe.New(cfg.Decks)
	if err != nil {
		return nil, err
	}

	var recorders events.Fanout
	if cfg.Ledger {
		c.journal = ledger.NewJournal()
		recorders = append(recorders, c.journal)
	}
	if cfg.NatsURL != "" {
		c.nc, err = events.Connect(cfg.NatsURL, "croupier")
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}
		recorders = append(recorders, events.NewPublisher(c.nc, cfg.EventsPrefix))
		logger.Info("publishing events", "url", cfg.NatsURL, "prefix", cfg.EventsPrefix)
	}

	c.engine = blackjack.NewEngine(s,
		blackjack.WithCapacity(cfg.Capacity),
		blackjack.WithHitRouting(cfg.HitRouting),
		blackjack.WithOpeningDeal(cfg.OpeningDeal),
		blackjack.WithRecorder(recorders),
		blackjack.WithLogger(logger.With("component", "engine")),
	)

	dispatcher := protocol.NewDispatcher(c.engine, logger.With("component", "protocol"))
	c.server, err = network.Listen(cfg.Addr, dispatcher, network.WithLogger(logger.With("component", "network")))
	if err != nil {
		c.Close()
		return nil, err
	}

	if cfg.StatusAddr != "" {
		host, port, err := splitHostPort(cfg.StatusAddr, 8080)
		if err != nil {
			c.Close()
			return nil, err
		}
		var journal status.Journal
		if c.journal != nil {
			journal = c.journal
		}
		c.status = &http.Server{
			Addr:              net.JoinHostPort(host, port),
			Handler:           status.NewRouter(c.engine, journal, logger.With("component", "status")),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	if cfg.DiscoveryPort != 0 {
		addr, err := advertisedAddress(c.server.Addr())
		if err != nil {
			c.Close()
			return nil, err
		}
		c.announcer = &discovery.Announcer{
			Info: discovery.Info{
				Service:  discovery.Service,
				Address:  addr,
				Decks:    cfg.Decks,
				Capacity: cfg.Capacity,
			},
			Port:     cfg.DiscoveryPort,
			Interval: cfg.AnnounceEvery,
			Logger:   logger.With("component", "discovery"),
		}
	}
	return c, nil
}

// run serves until ctx is cancelled, then releases every component.
func (c *croupier) run(ctx context.Context) error {
	defer c.Close()

	if c.status != nil {
		go func() {
			c.logger.Info("status API listening", "address", c.status.Addr)
			if err := c.status.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				c.logger.Error("status API failed", "error", err)
			}
		}()
	}
	if c.announcer != nil {
		if err := c.announcer.Start(); err != nil {
			c.logger.Warn("discovery disabled", "error", err)
			c.announcer = nil
		} else {
			c.logger.Info("announcing", "address", c.announcer.Info.Address, "port", c.announcer.Port)
			go func(entries <-chan discovery.Entry) {
				for entry := range entries {
					c.logger.Info("another croupier announced", "address", entry.Info.Address, "from", entry.From)
				}
			}(c.announcer.Entries)
		}
	}
	return c.server.Serve(ctx)
}

func (c *croupier) Close() error {
	var errs []error
	if c.announcer != nil {
		errs = append(errs, c.announcer.Close())
		c.announcer = nil
	}
	if c.status != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, c.status.Shutdown(ctx))
		cancel()
	}
	if c.server != nil {
		errs = append(errs, c.server.Close())
	}
	if c.nc != nil {
		errs = append(errs, c.nc.Drain())
		c.nc = nil
	}
	if c.journal != nil {
		if err := c.journal.Verify(); err != nil {
			errs = append(errs, fmt.Errorf("ledger: %w", err))
		} else {
			c.logger.Info("ledger verified", "blocks", c.journal.Len(), "head", c.journal.Latest().Hash)
		}
	}
	return errors.Join(errs...)
}
