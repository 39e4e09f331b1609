// Package ingest implements the speed layer: a NATS consumer that
// feeds raw report text through the parser registry and writes
// ingestion envelopes to storage. The parser itself stays synchronous
// and single-threaded per call; concurrency lives entirely here.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"noakweather/internal/registry"
	"noakweather/internal/storage"
	"noakweather/internal/wx"
)

// Config holds NATS consumer settings.
type Config struct {
	URL     string // NATS server URL, e.g. nats.DefaultURL
	Subject string // raw-report subject, e.g. "wx.raw.>"
	Workers int    // parse workers; defaults to 4
}

// Consumer subscribes to raw reports and persists parsed envelopes.
type Consumer struct {
	cfg   Config
	reg   *registry.Registry
	store storage.Store
	log   zerolog.Logger
}

// New creates a consumer dispatching through reg and writing to store.
func New(cfg Config, reg *registry.Registry, store storage.Store, log zerolog.Logger) *Consumer {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Consumer{cfg: cfg, reg: reg, store: store, log: log}
}

// Run connects, subscribes and processes messages until the context is
// cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	nc, err := nats.Connect(c.cfg.URL,
		nats.Name("noakweather-ingest"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	defer nc.Drain()

	msgs := make(chan *nats.Msg, 256)
	sub, err := nc.ChanSubscribe(c.cfg.Subject, msgs)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.cfg.Subject, err)
	}
	defer sub.Unsubscribe()

	c.log.Info().Str("subject", c.cfg.Subject).Int("workers", c.cfg.Workers).
		Msg("ingest consumer started")

	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-msgs:
					if !ok {
						return
					}
					if err := c.Process(ctx, string(msg.Data)); err != nil {
						c.log.Warn().Err(err).Msg("report dropped")
					}
				}
			}
		}()
	}

	<-ctx.Done()
	close(msgs)
	wg.Wait()
	return ctx.Err()
}

// Process parses one raw report and writes its envelope. It is the
// per-message unit of work, split out so tests can drive it without a
// broker.
func (c *Consumer) Process(ctx context.Context, raw string) error {
	report, err := c.reg.ParseAuto(raw)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	env, err := wx.NewEnvelope(report)
	if err != nil {
		return fmt.Errorf("envelope: %w", err)
	}

	if err := c.store.SaveEnvelope(ctx, env); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	c.log.Debug().Str("station", env.Station).Str("source", env.SourceType).
		Msg("report ingested")
	return nil
}
