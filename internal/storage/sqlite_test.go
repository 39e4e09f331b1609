package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"noakweather/internal/wx"
)

func TestSQLiteArchiveRoundTrip(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	base := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		env := wx.Envelope{
			Station:    "KJFK",
			ObservedAt: base.Add(time.Duration(i) * time.Hour),
			ReportType: "METAR",
			SourceType: wx.SourceMetar,
			RawText:    "METAR KJFK ...",
			Parsed:     json.RawMessage(`{"station":"KJFK"}`),
		}
		if err := db.SaveEnvelope(ctx, env); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	other := wx.Envelope{
		Station:    "KBOS",
		ObservedAt: base,
		ReportType: "METAR",
		SourceType: wx.SourceMetar,
		RawText:    "METAR KBOS ...",
		Parsed:     json.RawMessage(`{"station":"KBOS"}`),
	}
	if err := db.SaveEnvelope(ctx, other); err != nil {
		t.Fatalf("save other station: %v", err)
	}

	got, err := db.History(ctx, "KJFK", 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("history rows = %d, want 2", len(got))
	}
	// Newest first.
	if !got[0].ObservedAt.After(got[1].ObservedAt) {
		t.Errorf("history not newest-first: %v then %v", got[0].ObservedAt, got[1].ObservedAt)
	}
	if got[0].Station != "KJFK" || string(got[0].Parsed) != `{"station":"KJFK"}` {
		t.Errorf("row = %+v", got[0])
	}
}
