package wx

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEnvelope(t *testing.T) {
	obs := time.Date(2024, time.July, 14, 22, 52, 0, 0, time.UTC)
	m := &Metar{
		Station:    "KJFK",
		Time:       obs,
		ReportType: "METAR",
		Raw:        "METAR KJFK 142252Z 19005KT",
		Conditions: Conditions{
			Wind: &Wind{Direction: 190, Speed: 5, Unit: UnitKnots},
		},
	}

	env, err := NewEnvelope(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Station != "KJFK" || env.ReportType != "METAR" || env.SourceType != SourceMetar {
		t.Errorf("envelope header = %+v", env)
	}
	if !env.ObservedAt.Equal(obs) {
		t.Errorf("observed at = %v", env.ObservedAt)
	}
	if env.RawText != m.Raw {
		t.Errorf("raw text = %q", env.RawText)
	}

	// The parsed payload round-trips with the contract field names.
	var decoded map[string]any
	if err := json.Unmarshal(env.Parsed, &decoded); err != nil {
		t.Fatalf("parsed payload is not JSON: %v", err)
	}
	for _, key := range []string{"station", "observed_at", "report_type", "raw_text", "conditions"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("parsed payload missing %q", key)
		}
	}
}

func TestNewEnvelopeTaf(t *testing.T) {
	issued := time.Date(2024, time.July, 15, 11, 30, 0, 0, time.UTC)
	from, to := issued.Add(30*time.Minute), issued.Add(30*time.Hour)
	tf := &Taf{
		Station:    "KLAX",
		IssuedAt:   issued,
		ValidFrom:  from,
		ValidTo:    to,
		ReportType: "TAF",
		Raw:        "TAF KLAX 151130Z 1512/1618",
		Periods:    []ForecastPeriod{{Change: ChangeBase, From: &from, To: &to}},
	}

	env, err := NewEnvelope(tf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.SourceType != SourceTaf || env.ReportType != "TAF" {
		t.Errorf("envelope = %+v", env)
	}
	if !env.ObservedAt.Equal(issued) {
		t.Errorf("observed at = %v, want the issue time", env.ObservedAt)
	}
}
