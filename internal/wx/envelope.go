package wx

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the ingestion form handed to downstream storage. Field
// names and units are a contract with consumers; keep them stable.
type Envelope struct {
	Station    string          `json:"station"`
	ObservedAt time.Time       `json:"observed_at"` // issue time for TAF
	ReportType string          `json:"report_type"` // METAR, SPECI or TAF
	SourceType string          `json:"source_type"` // NOAA_METAR or NOAA_TAF
	RawText    string          `json:"raw_text"`
	Parsed     json.RawMessage `json:"parsed"`
}

// NewEnvelope serializes a report into its ingestion envelope.
func NewEnvelope(r Report) (Envelope, error) {
	parsed, err := json.Marshal(r)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal report: %w", err)
	}

	env := Envelope{
		Station:    r.StationID(),
		ObservedAt: r.ObservedAt(),
		SourceType: r.SourceType(),
		RawText:    r.RawText(),
		Parsed:     parsed,
	}

	switch rep := r.(type) {
	case *Metar:
		env.ReportType = rep.ReportType
	case *Taf:
		env.ReportType = rep.ReportType
	default:
		return Envelope{}, fmt.Errorf("unknown report type %T", r)
	}

	return env, nil
}
