// Package wx provides the domain types for decoded aviation weather
// reports: METAR/SPECI surface observations and TAF forecasts.
package wx

import "time"

// Source type discriminators used by the parser registry.
const (
	SourceMetar = "NOAA_METAR"
	SourceTaf   = "NOAA_TAF"
)

// Report is the common interface for all decoded reports.
type Report interface {
	SourceType() string // "NOAA_METAR" or "NOAA_TAF"
	StationID() string  // 4-char ICAO identifier
	ObservedAt() time.Time
	RawText() string
}

// Metar represents a decoded METAR or SPECI surface observation.
type Metar struct {
	Station    string     `json:"station"`
	Time       time.Time  `json:"observed_at"`
	ReportType string     `json:"report_type"` // METAR or SPECI
	Modifier   string     `json:"modifier,omitempty"`
	Raw        string     `json:"raw_text"`
	Conditions Conditions `json:"conditions"`

	RunwayVisualRange []RunwayVisualRange `json:"runway_visual_range,omitempty"`
	NoSig             bool                `json:"nosig,omitempty"`
	Remarks           *Remarks            `json:"remarks,omitempty"`
}

func (m *Metar) SourceType() string    { return SourceMetar }
func (m *Metar) StationID() string     { return m.Station }
func (m *Metar) ObservedAt() time.Time { return m.Time }
func (m *Metar) RawText() string       { return m.Raw }

// Taf represents a decoded Terminal Aerodrome Forecast.
type Taf struct {
	Station    string    `json:"station"`
	IssuedAt   time.Time `json:"issued_at"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidTo    time.Time `json:"valid_to"`
	ReportType string    `json:"report_type"` // TAF
	Modifier   string    `json:"modifier,omitempty"`
	Raw        string    `json:"raw_text"`

	// Periods is non-empty; the first element is always the BASE period.
	Periods []ForecastPeriod `json:"periods"`

	MaxTemp *TempForecast `json:"max_temp,omitempty"`
	MinTemp *TempForecast `json:"min_temp,omitempty"`

	// Unparsed holds tokens no pattern consumed, verbatim.
	Unparsed []string `json:"unparsed,omitempty"`
}

func (t *Taf) SourceType() string    { return SourceTaf }
func (t *Taf) StationID() string     { return t.Station }
func (t *Taf) ObservedAt() time.Time { return t.IssuedAt }
func (t *Taf) RawText() string       { return t.Raw }

// Conditions is the meteorological element block shared by METAR bodies
// and TAF forecast periods.
type Conditions struct {
	Wind        *Wind            `json:"wind,omitempty"`
	Visibility  *Visibility      `json:"visibility,omitempty"`
	Temperature *Temperature     `json:"temperature,omitempty"`
	Pressure    *Pressure        `json:"pressure,omitempty"`
	Weather     []PresentWeather `json:"weather,omitempty"`
	Sky         []SkyCondition   `json:"sky,omitempty"`
}

// Wind speed units.
const (
	UnitKnots             = "KT"
	UnitMetersPerSecond   = "MPS"
	UnitKilometersPerHour = "KMH"
)

// Wind describes the surface wind group. Exactly one of Calm, Variable
// or a directed wind (Direction set) applies.
type Wind struct {
	Calm     bool `json:"calm,omitempty"`
	Variable bool `json:"variable,omitempty"` // VRB: direction unknown

	Direction int    `json:"direction,omitempty"` // degrees true, 0-360
	Speed     int    `json:"speed"`
	Gust      int    `json:"gust,omitempty"`
	Unit      string `json:"unit"` // KT, MPS or KMH

	// VarFrom/VarTo hold the dddVddd variable-direction range.
	VarFrom int `json:"var_from,omitempty"`
	VarTo   int `json:"var_to,omitempty"`
}

// Visibility distance units.
const (
	UnitStatuteMiles = "SM"
	UnitMeters       = "M"
	UnitKilometers   = "KM"
)

// Visibility modifiers.
const (
	VisCAVOK = "CAVOK"
	VisNDV   = "NDV"
)

// Visibility describes prevailing visibility. When Modifier is CAVOK no
// numeric distance is carried; NDV accompanies a meter distance.
type Visibility struct {
	Distance    float64 `json:"distance,omitempty"`
	Unit        string  `json:"unit,omitempty"` // SM, M or KM
	LessThan    bool    `json:"less_than,omitempty"`
	GreaterThan bool    `json:"greater_than,omitempty"`
	Modifier    string  `json:"modifier,omitempty"`  // CAVOK or NDV
	Direction   string  `json:"direction,omitempty"` // lowest-visibility sector, e.g. NE
}

// PresentWeather describes one present-weather group, e.g. +TSRA or VCFG.
type PresentWeather struct {
	Intensity     string   `json:"intensity,omitempty"` // "-", "+" or "VC"
	Descriptor    string   `json:"descriptor,omitempty"`
	Precipitation []string `json:"precipitation,omitempty"`
	Obscuration   string   `json:"obscuration,omitempty"`
	Other         string   `json:"other,omitempty"`
	Raw           string   `json:"raw"`
}

// Sky coverage codes.
const (
	CoverSKC = "SKC"
	CoverCLR = "CLR"
	CoverNSC = "NSC"
	CoverFEW = "FEW"
	CoverSCT = "SCT"
	CoverBKN = "BKN"
	CoverOVC = "OVC"
	CoverVV  = "VV"
)

// SkyCondition describes one cloud layer or the vertical visibility.
// Height is feet above ground and nil when the layer carries none
// (SKC/CLR/NSC) or it was reported unknown.
type SkyCondition struct {
	Coverage string `json:"coverage"`
	Height   *int   `json:"height,omitempty"`
	Type     string `json:"type,omitempty"` // CB, TCU, ACC...
}

// Pressure units.
const (
	UnitInHg = "inHg"
	UnitHPa  = "hPa"
)

// Pressure is an altimeter setting or sea-level pressure value.
type Pressure struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // inHg or hPa
}

// Temperature carries the body temperature/dewpoint group in whole °C.
type Temperature struct {
	Value    int  `json:"value"`
	Dewpoint *int `json:"dewpoint,omitempty"`
}

// RunwayVisualRange describes one RVR group. Low (and High for variable
// ranges) are feet. Cleared and NotAvailable are the CLRD / RVRNO states.
type RunwayVisualRange struct {
	Runway       string `json:"runway"`
	Low          int    `json:"low,omitempty"`
	High         int    `json:"high,omitempty"` // set for NNNNVNNNN variable ranges
	LowLessThan  bool   `json:"low_less_than,omitempty"`
	LowMoreThan  bool   `json:"low_more_than,omitempty"`
	HighLessThan bool   `json:"high_less_than,omitempty"`
	HighMoreThan bool   `json:"high_more_than,omitempty"`
	Trend        string `json:"trend,omitempty"` // N, U or D
	Cleared      bool   `json:"cleared,omitempty"`
	NotAvailable bool   `json:"not_available,omitempty"`
}

// TAF change indicators.
const (
	ChangeBase  = "BASE"
	ChangeFM    = "FM"
	ChangeTempo = "TEMPO"
	ChangeBecmg = "BECMG"
	ChangeProb  = "PROB"
)

// ForecastPeriod is one TAF period: the base forecast or a change group.
type ForecastPeriod struct {
	Change      string     `json:"change"` // BASE, FM, TEMPO, BECMG or PROB
	At          *time.Time `json:"at,omitempty"`   // FM change instant
	From        *time.Time `json:"from,omitempty"` // period start
	To          *time.Time `json:"to,omitempty"`   // period end
	Probability int        `json:"probability,omitempty"` // 30 or 40 for PROB
	Conditions  Conditions `json:"conditions"`
}

// TempForecast is a TAF TX/TN temperature forecast.
type TempForecast struct {
	Value int       `json:"value"` // whole °C
	At    time.Time `json:"at"`
}

// ClockTime is a time-of-day within the observation's hour context.
// Hour is nil when the report gave minutes only (e.g. "WSHFT 45").
type ClockTime struct {
	Hour   *int `json:"hour,omitempty"`
	Minute int  `json:"minute"`
}
