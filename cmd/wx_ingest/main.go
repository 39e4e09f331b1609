// Ingest daemon: consumes raw reports from NATS, decodes them through
// the parser registry, persists envelopes and serves the read API.
//
// Configuration comes from the environment (a local .env is loaded in
// development):
//
//	NATS_URL        NATS server URL          (default nats://localhost:4222)
//	NATS_SUBJECT    raw report subject       (default wx.raw.>)
//	INGEST_WORKERS  parse worker count       (default 4)
//	API_PORT        REST API port            (default 8070)
//	SQLITE_PATH     embedded archive path; when set, the server
//	                databases are skipped entirely and the read API
//	                is not started
//	CH_HOST/CH_PORT/CH_DATABASE/CH_USER/CH_PASSWORD
//	PG_HOST/PG_PORT/PG_DATABASE/PG_USER/PG_PASSWORD
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"noakweather/internal/api"
	"noakweather/internal/ingest"
	"noakweather/internal/parsers/metar"
	"noakweather/internal/parsers/taf"
	"noakweather/internal/registry"
	"noakweather/internal/storage"
)

func main() {
	// Development convenience; missing .env is fine.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New()
	reg.Register(metar.New(log))
	reg.Register(taf.New(log))

	var store storage.Store
	var state api.StateStore
	var history api.HistoryStore

	if path := os.Getenv("SQLITE_PATH"); path != "" {
		lite, err := storage.OpenSQLite(path)
		if err != nil {
			log.Fatal().Err(err).Msg("open sqlite archive")
		}
		defer lite.Close()
		store, history = lite, lite
		log.Info().Str("path", path).Msg("using embedded sqlite archive")
	} else {
		cfg := storageConfig()
		db, err := storage.Open(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("open databases")
		}
		defer db.Close()
		if err := db.CreateSchemas(ctx); err != nil {
			log.Fatal().Err(err).Msg("create schemas")
		}
		store, state, history = db, db.PG, db.CH
	}

	if state != nil {
		srv := api.NewServer(state, history, envInt("API_PORT", 8070), log)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error().Err(err).Msg("api server stopped")
			}
		}()
	}

	consumer := ingest.New(ingest.Config{
		URL:     envStr("NATS_URL", "nats://localhost:4222"),
		Subject: envStr("NATS_SUBJECT", "wx.raw.>"),
		Workers: envInt("INGEST_WORKERS", 4),
	}, reg, store, log)

	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("ingest consumer failed")
	}
	log.Info().Msg("shutdown complete")
}

func storageConfig() storage.Config {
	cfg := storage.DefaultConfig()
	cfg.ClickHouse.Host = envStr("CH_HOST", cfg.ClickHouse.Host)
	cfg.ClickHouse.Port = envInt("CH_PORT", cfg.ClickHouse.Port)
	cfg.ClickHouse.Database = envStr("CH_DATABASE", cfg.ClickHouse.Database)
	cfg.ClickHouse.User = envStr("CH_USER", cfg.ClickHouse.User)
	cfg.ClickHouse.Password = envStr("CH_PASSWORD", cfg.ClickHouse.Password)
	cfg.Postgres.Host = envStr("PG_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = envInt("PG_PORT", cfg.Postgres.Port)
	cfg.Postgres.Database = envStr("PG_DATABASE", cfg.Postgres.Database)
	cfg.Postgres.User = envStr("PG_USER", cfg.Postgres.User)
	cfg.Postgres.Password = envStr("PG_PASSWORD", cfg.Postgres.Password)
	return cfg
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
