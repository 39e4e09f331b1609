// Package metar assembles METAR and SPECI surface observations from
// the token engine's element decoders.
package metar

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"noakweather/internal/decode"
	"noakweather/internal/engine"
	"noakweather/internal/patterns"
	"noakweather/internal/registry"
	"noakweather/internal/wx"
)

// Parser decodes METAR and SPECI reports. The zero value is usable;
// Now may be pinned by tests to make month/year resolution
// deterministic.
type Parser struct {
	Log zerolog.Logger
	Now func() time.Time
}

func init() {
	registry.Register(&Parser{Log: zerolog.Nop()})
}

// New creates a parser that logs element-level decode problems through
// log.
func New(log zerolog.Logger) *Parser {
	return &Parser{Log: log}
}

func (p *Parser) Name() string       { return "metar" }
func (p *Parser) SourceType() string { return wx.SourceMetar }

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// CanParse reports whether the input starts like a METAR/SPECI report:
// an optional archive date prefix, then a METAR|SPECI leader or
// directly the "ICAO DDHHMMZ" header.
func (p *Parser) CanParse(raw string) bool {
	text := patterns.CollapseWhitespace(raw)
	if m := patterns.MonthDayYearPattern.FindString(text); m != "" {
		text = text[len(m):]
	}
	return patterns.ReportTypePattern.MatchString(text) ||
		patterns.StationDayTimePattern.MatchString(text)
}

// builder is the per-parse scratch space threaded through the handler
// chains. Parser instances themselves stay immutable.
type builder struct {
	out *wx.Metar
	ref time.Time // issue reference for month/year resolution

	cond decode.Conditions
	rmk  decode.Remarks

	unparsedBody []string
}

// Parse runs the assembler state machine: header, body up to RMK,
// remarks. Only a missing station header is fatal; element problems
// are logged and recovered.
func (p *Parser) Parse(raw string) (wx.Report, error) {
	text := patterns.CollapseWhitespace(raw)

	out := &wx.Metar{
		ReportType: "METAR",
		Raw:        text,
		Remarks:    nil,
	}
	b := &builder{out: out, ref: p.now()}
	b.cond = decode.Conditions{Out: &out.Conditions, Log: p.Log}

	body, remarks, hasRemarks := splitRemarks(text)

	residue := engine.Run(p.mainChain(b), body, p.Log)
	if residue != "" {
		// The catch-all makes this unreachable; belt and braces.
		b.unparsedBody = append(b.unparsedBody, residue)
	}

	if out.Station == "" {
		return nil, fmt.Errorf("metar: station identifier missing in %q", text)
	}

	if hasRemarks || len(b.unparsedBody) > 0 {
		out.Remarks = &wx.Remarks{}
		b.rmk = decode.Remarks{Out: out.Remarks, Log: p.Log}
		engine.Run(p.remarksChain(b), remarks, p.Log)
		b.rmk.AddFreeText(b.unparsedBody...)
		b.rmk.Finalize()
	}

	return out, nil
}

// splitRemarks divides a report at the literal RMK token.
func splitRemarks(text string) (body, remarks string, found bool) {
	loc := patterns.RemarksDelimPattern.FindStringIndex(text)
	if loc == nil {
		return text, "", false
	}
	return text[:loc[0]], text[loc[1]:], true
}

// mainChain is the MAIN handler registry of the body engine. The order
// is a behavioral contract; repeating entries re-anchor on their own
// pattern before the scan restarts.
func (p *Parser) mainChain(b *builder) engine.Chain {
	return engine.Chain{
		{Name: "reportType", Pattern: patterns.ReportTypePattern, Handle: func(m *engine.Match) error {
			b.out.ReportType = m.Group("type")
			return nil
		}},
		{Name: "issueDate", Pattern: patterns.MonthDayYearPattern, Handle: func(m *engine.Match) error {
			ref, err := issueDate(m)
			if err != nil {
				return err
			}
			b.ref = ref
			return nil
		}},
		{Name: "station", Pattern: patterns.StationDayTimePattern, Handle: func(m *engine.Match) error {
			if b.out.Station != "" {
				return fmt.Errorf("second station header %q", m.Group("station"))
			}
			t, err := dayTime(b.ref, m)
			if err != nil {
				return err
			}
			b.out.Station = m.Group("station")
			b.out.Time = t
			return nil
		}},
		{Name: "modifier", Pattern: patterns.ReportModifierPattern, Handle: func(m *engine.Match) error {
			if b.out.Modifier == "" {
				b.out.Modifier = m.Group("mod")
			} else {
				p.Log.Warn().Str("modifier", m.Group("mod")).
					Msg("extra report modifier ignored")
			}
			return nil
		}},
		{Name: "wind", Pattern: patterns.WindPattern, Handle: b.cond.Wind},
		{Name: "visibility", Pattern: patterns.VisibilityPattern, Handle: b.cond.Visibility},
		{Name: "rvr", Pattern: patterns.RunwayPattern, Repeats: true, Handle: func(m *engine.Match) error {
			r, err := decode.RunwayVisualRange(m)
			if err != nil {
				return err
			}
			b.out.RunwayVisualRange = append(b.out.RunwayVisualRange, r)
			return nil
		}},
		{Name: "presentWeather", Pattern: patterns.PresentWeatherPattern, Repeats: true, Handle: b.cond.Weather},
		{Name: "skyCondition", Pattern: patterns.SkyConditionPattern, Repeats: true, Handle: b.cond.Sky},
		{Name: "tempDewpoint", Pattern: patterns.TempDewpointPattern, Handle: b.cond.TempDewpoint},
		{Name: "altimeter", Pattern: patterns.AltimeterPattern, Handle: b.cond.Altimeter},
		{Name: "nosig", Pattern: patterns.NoSigPattern, Handle: func(*engine.Match) error {
			b.out.NoSig = true
			return nil
		}},
		{Name: "unparsed", Pattern: patterns.UnparsedPattern, Handle: func(m *engine.Match) error {
			b.unparsedBody = append(b.unparsedBody, m.Group("token"))
			return nil
		}},
	}
}

// remarksChain is the REMARKS handler registry. Variable ceiling stays
// ahead of second-site ceiling as part of the registry order; the two
// grammars ("CIG 005V010" and "CIG 005 RWY11") do not overlap, so the
// order does not change which of them matches.
func (p *Parser) remarksChain(b *builder) engine.Chain {
	return engine.Chain{
		{Name: "autoStation", Pattern: patterns.AutoStationPattern, Handle: b.rmk.AutoStation},
		{Name: "seaLevelPressure", Pattern: patterns.SeaLevelPressurePattern, Handle: b.rmk.SeaLevelPressure},
		{Name: "peakWind", Pattern: patterns.PeakWindPattern, Handle: b.rmk.PeakWind},
		{Name: "windShift", Pattern: patterns.WindShiftPattern, Handle: b.rmk.WindShift},
		{Name: "visibilityRemark", Pattern: patterns.VisibilityRemarkPattern, Handle: b.rmk.VisibilityRemark},
		{Name: "variableCeiling", Pattern: patterns.VariableCeilingPattern, Handle: b.rmk.VariableCeiling},
		{Name: "ceilingSecondSite", Pattern: patterns.CeilingSecondSitePattern, Handle: b.rmk.CeilingSecondSite},
		{Name: "obscuration", Pattern: patterns.ObscurationPattern, Repeats: true, Handle: b.rmk.Obscuration},
		{Name: "tsCloudLoc", Pattern: patterns.TsCloudLocPattern, Repeats: true, Handle: b.rmk.StormLocation},
		{Name: "cloudOkta", Pattern: patterns.CloudOktaPattern, Repeats: true, Handle: b.rmk.CloudOkta},
		{Name: "lightning", Pattern: patterns.LightningPattern, Handle: b.rmk.Lightning},
		{Name: "pressureRapid", Pattern: patterns.PressureRapidPattern, Handle: b.rmk.PressureRapid},
		{Name: "preciseTemp", Pattern: patterns.PreciseTempPattern, Handle: b.rmk.PreciseTemp},
		{Name: "hourlyPrecip", Pattern: patterns.PrecipHourlyPattern, Handle: b.rmk.HourlyPrecip},
		{Name: "sixHourTemp", Pattern: patterns.Temp6HrPattern, Repeats: true, Handle: b.rmk.SixHourTemp},
		{Name: "dayTemp", Pattern: patterns.Temp24HrPattern, Handle: b.rmk.DayTemp},
		{Name: "pressureTendency", Pattern: patterns.Press3HrPattern, Handle: b.rmk.PressureTendency},
		{Name: "longPrecip", Pattern: patterns.Precip3Hr24HrPattern, Handle: b.rmk.LongPrecip},
		{Name: "pressQ", Pattern: patterns.PressQPattern, Handle: b.rmk.PressQ},
		{Name: "maintenance", Pattern: patterns.MaintenancePattern, Repeats: true, Handle: b.rmk.Maintenance},
		{Name: "hailSize", Pattern: patterns.HailSizePattern, Handle: b.rmk.HailSize},
		{Name: "beginEndWeather", Pattern: patterns.BeginEndWeatherPattern, Repeats: true, Handle: b.rmk.WeatherEvents},
		{Name: "unparsed", Pattern: patterns.UnparsedPattern, Handle: b.rmk.Unparsed},
	}
}

// issueDate decodes the archive "YYYY/MM/DD HH:MM" prefix.
func issueDate(m *engine.Match) (time.Time, error) {
	var vals [5]int
	for i, g := range []string{"year", "month", "day", "hour", "minute"} {
		v, err := atoiGroup(m, g)
		if err != nil {
			return time.Time{}, err
		}
		vals[i] = v
	}
	return time.Date(vals[0], time.Month(vals[1]), vals[2], vals[3], vals[4], 0, 0, time.UTC), nil
}

// dayTime decodes a DDHHMMZ group against the reference time.
func dayTime(ref time.Time, m *engine.Match) (time.Time, error) {
	day, err := atoiGroup(m, "day")
	if err != nil {
		return time.Time{}, err
	}
	hour, err := atoiGroup(m, "hour")
	if err != nil {
		return time.Time{}, err
	}
	minute, err := atoiGroup(m, "minute")
	if err != nil {
		return time.Time{}, err
	}
	return decode.ObservationTime(ref, day, hour, minute), nil
}

func atoiGroup(m *engine.Match, name string) (int, error) {
	var v int
	if _, err := fmt.Sscanf(m.Group(name), "%d", &v); err != nil {
		return 0, fmt.Errorf("bad %s group %q", name, m.Group(name))
	}
	return v, nil
}
