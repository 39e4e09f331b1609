package ingest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	_ "noakweather/internal/parsers" // register metar + taf
	"noakweather/internal/registry"
	"noakweather/internal/wx"
)

type fakeStore struct {
	saved []wx.Envelope
	fail  error
}

func (f *fakeStore) SaveEnvelope(_ context.Context, env wx.Envelope) error {
	if f.fail != nil {
		return f.fail
	}
	f.saved = append(f.saved, env)
	return nil
}

func TestProcessParsesAndStores(t *testing.T) {
	store := &fakeStore{}
	c := New(Config{}, registry.Default(), store, zerolog.Nop())

	err := c.Process(context.Background(),
		"METAR KJFK 142252Z 19005KT 10SM FEW100 16/M03 A3012 RMK AO2 SLP214")
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved envelopes = %d, want 1", len(store.saved))
	}
	env := store.saved[0]
	if env.Station != "KJFK" || env.SourceType != wx.SourceMetar || env.ReportType != "METAR" {
		t.Errorf("envelope = %+v", env)
	}
	if len(env.Parsed) == 0 {
		t.Error("envelope has no parsed payload")
	}
}

func TestProcessRejectsUnparseable(t *testing.T) {
	store := &fakeStore{}
	c := New(Config{}, registry.Default(), store, zerolog.Nop())

	if err := c.Process(context.Background(), "complete nonsense"); err == nil {
		t.Error("expected error for unparseable input")
	}
	if len(store.saved) != 0 {
		t.Errorf("unparseable input was stored: %+v", store.saved)
	}
}
