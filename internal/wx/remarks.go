package wx

// Remarks holds the decoded METAR RMK section. Every field is optional;
// tokens no remark decoder consumed end up verbatim in FreeText.
type Remarks struct {
	StationType string `json:"station_type,omitempty"` // AO1 or AO2

	SeaLevelPressure            *float64 `json:"sea_level_pressure,omitempty"` // hPa
	SeaLevelPressureUnavailable bool     `json:"sea_level_pressure_unavailable,omitempty"`

	PeakWind  *PeakWind  `json:"peak_wind,omitempty"`
	WindShift *WindShift `json:"wind_shift,omitempty"`

	VariableVisibility *VariableVisibility `json:"variable_visibility,omitempty"`
	SectorVisibility   *SectorVisibility   `json:"sector_visibility,omitempty"`
	SecondSiteVis      *SecondSiteVis      `json:"second_site_visibility,omitempty"`
	TowerVisibility    *float64            `json:"tower_visibility,omitempty"`   // SM
	SurfaceVisibility  *float64            `json:"surface_visibility,omitempty"` // SM

	VariableCeiling   *VariableCeiling   `json:"variable_ceiling,omitempty"`
	SecondSiteCeiling *SecondSiteCeiling `json:"second_site_ceiling,omitempty"`

	Obscurations   []Obscuration   `json:"obscurations,omitempty"`
	StormLocations []StormLocation `json:"storm_locations,omitempty"`
	CloudTypes     []CloudOkta     `json:"cloud_types,omitempty"`
	Lightning      *Lightning      `json:"lightning,omitempty"`

	PressureRisingRapidly  bool `json:"pressure_rising_rapidly,omitempty"`
	PressureFallingRapidly bool `json:"pressure_falling_rapidly,omitempty"`

	Temperature *PreciseTemperature `json:"precise_temperature,omitempty"`
	SixHourMax  *float64            `json:"six_hour_max_temp,omitempty"`  // °C
	SixHourMin  *float64            `json:"six_hour_min_temp,omitempty"`  // °C
	DayMax      *float64            `json:"24_hour_max_temp,omitempty"`   // °C
	DayMin      *float64            `json:"24_hour_min_temp,omitempty"`   // °C

	Precipitation []Precipitation `json:"precipitation,omitempty"`

	PressureTendency *PressureTendency `json:"pressure_tendency,omitempty"`
	QNH              *Pressure         `json:"qnh,omitempty"`

	HailSize *float64 `json:"hail_size,omitempty"` // inches

	WeatherEvents []WeatherEvent `json:"weather_events,omitempty"`

	Maintenance         []MaintenanceIndicator `json:"maintenance,omitempty"`
	MaintenanceRequired bool                   `json:"maintenance_required,omitempty"`

	FreeText string `json:"free_text,omitempty"`
}

// PeakWind is the PK WND remark: highest instantaneous wind since the
// last routine report.
type PeakWind struct {
	Direction int       `json:"direction"` // degrees true
	Speed     int       `json:"speed"`     // knots
	At        ClockTime `json:"at"`
}

// WindShift records a WSHFT remark, optionally qualified FROPA.
type WindShift struct {
	At             ClockTime `json:"at"`
	FrontalPassage bool      `json:"frontal_passage,omitempty"`
}

// VariableVisibility is the "VIS min V max" remark, statute miles.
type VariableVisibility struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SectorVisibility is the "VIS dir dist" remark.
type SectorVisibility struct {
	Direction string  `json:"direction"`
	Distance  float64 `json:"distance"` // SM
}

// SecondSiteVis is the "VIS dist location" remark.
type SecondSiteVis struct {
	Distance float64 `json:"distance"` // SM
	Location string  `json:"location"` // e.g. RWY11
}

// VariableCeiling is the "CIG lowVhigh" remark, feet.
type VariableCeiling struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// SecondSiteCeiling is the "CIG hhh location" remark, feet.
type SecondSiteCeiling struct {
	Height   int    `json:"height"`
	Location string `json:"location"` // e.g. RWY11
}

// Obscuration is a surface/aloft obscuration layer remark, e.g. "FU BKN020".
type Obscuration struct {
	Phenomenon string       `json:"phenomenon"` // FU, BR, FG...
	Layer      SkyCondition `json:"layer"`
}

// StormLocation is a thunderstorm/cloud location remark, e.g. "CB W MOV E".
type StormLocation struct {
	Phenomenon string `json:"phenomenon"` // TS, CB, TCU...
	Proximity  string `json:"proximity,omitempty"` // OHD, VC or DSNT
	Direction  string `json:"direction,omitempty"`
	Moving     string `json:"moving,omitempty"`
}

// CloudOkta is a cloud-type observation in eighths of sky cover.
type CloudOkta struct {
	Type string `json:"type"` // CU, SC, CI...
	Okta int    `json:"okta"` // 0-8
}

// Lightning describes an LTG remark.
type Lightning struct {
	Frequency string   `json:"frequency,omitempty"` // OCNL, FRQ or CONS
	Types     []string `json:"types,omitempty"`     // IC, CC, CG, CA
	Proximity string   `json:"proximity,omitempty"` // OHD, VC or DSNT
	Direction string   `json:"direction,omitempty"` // sector or ALQDS
}

// PreciseTemperature is the hourly TsnTTTsnTTT remark in tenths of °C.
type PreciseTemperature struct {
	Value    float64  `json:"value"`
	Dewpoint *float64 `json:"dewpoint,omitempty"`
}

// Precipitation is a liquid-precipitation amount remark. Amount is
// inches; Trace marks the indeterminate (////) sentinel.
type Precipitation struct {
	PeriodHours int     `json:"period_hours"` // 1, 6 or 24
	Amount      float64 `json:"amount"`
	Trace       bool    `json:"trace,omitempty"`
}

// PressureTendency is the 5appp remark: WMO Code 0200 character plus the
// 3-hour pressure change in hPa.
type PressureTendency struct {
	Code   int     `json:"code"` // 0-8
	Change float64 `json:"change"`
}

// WeatherEvent is one atom of a weather begin/end chain such as
// FZRAB1159E1240SNB30.
type WeatherEvent struct {
	Intensity     string     `json:"intensity,omitempty"`
	Descriptor    string     `json:"descriptor,omitempty"`
	Precipitation []string   `json:"precipitation,omitempty"`
	Obscuration   string     `json:"obscuration,omitempty"`
	Other         string     `json:"other,omitempty"`
	Begin         *ClockTime `json:"begin,omitempty"`
	End           *ClockTime `json:"end,omitempty"`
}

// MaintenanceIndicator is an automated-station sensor status remark.
type MaintenanceIndicator struct {
	Code     string `json:"code"` // RVRNO, PWINO, PNO, FZRANO, TSNO, VISNO, CHINO or $
	Location string `json:"location,omitempty"`
}
