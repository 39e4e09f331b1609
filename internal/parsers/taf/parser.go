// Package taf assembles Terminal Aerodrome Forecasts: a header, a base
// period, FM/TEMPO/BECMG/PROB change groups and TX/TN temperature
// forecasts.
package taf

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

// Parser decodes TAF reports. Now may be pinned by tests.
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

func (p *Parser) Name() string       { return "taf" }
func (p *Parser) SourceType() string { return wx.SourceTaf }

func (p *Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// CanParse reports whether the input starts with a TAF leader,
// optionally behind an archive date prefix.
func (p *Parser) CanParse(raw string) bool {
	text := patterns.CollapseWhitespace(raw)
	if m := patterns.MonthDayYearPattern.FindString(text); m != "" {
		text = text[len(m):]
	}
	return patterns.TafPattern.MatchString(text)
}

// builder is the per-parse scratch space. cur is the period being
// filled; cond stays bound to its Conditions across period switches.
type builder struct {
	out   *wx.Taf
	issue time.Time
	cur   wx.ForecastPeriod
	cond  decode.Conditions
}

func (b *builder) flush() {
	b.out.Periods = append(b.out.Periods, b.cur)
}

func (b *builder) start(per wx.ForecastPeriod) {
	b.flush()
	b.cur = per
}

// Parse runs the assembler: header (date prefix, TAF, modifier,
// station, issue time, validity), then a single engine pass that fills
// the base period and the change groups. A missing validity window is
// fatal.
func (p *Parser) Parse(raw string) (wx.Report, error) {
	text := patterns.CollapseWhitespace(raw)

	out := &wx.Taf{ReportType: "TAF", Raw: text}
	ref := p.now()

	rest := text
	if m := patterns.MonthDayYearPattern.FindStringSubmatch(rest); m != nil {
		var year, month, day, hour, minute int
		if _, err := fmt.Sscanf(m[0], "%d/%d/%d %d:%d", &year, &month, &day, &hour, &minute); err == nil {
			ref = time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
		}
		rest = rest[len(m[0]):]
	}

	if m := patterns.TafPattern.FindString(rest); m != "" {
		rest = rest[len(m):]
	}
	if m := patterns.ReportModifierPattern.FindStringSubmatch(rest); m != nil {
		out.Modifier = m[1]
		rest = rest[len(m[0]):]
	}

	sm := patterns.StationDayTimePattern.FindStringSubmatch(rest)
	if sm == nil {
		return nil, fmt.Errorf("taf: station identifier missing in %q", text)
	}
	var day, hour, minute int
	if _, err := fmt.Sscanf(sm[2]+sm[3]+sm[4], "%2d%2d%2d", &day, &hour, &minute); err != nil {
		return nil, fmt.Errorf("taf: bad issue time in %q", sm[0])
	}
	out.Station = sm[1]
	out.IssuedAt = decode.ObservationTime(ref, day, hour, minute)
	rest = rest[len(sm[0]):]

	vm := patterns.ValidityPattern.FindStringSubmatch(rest)
	if vm == nil {
		return nil, fmt.Errorf("taf: validity period missing in %q", text)
	}
	var fd, fh, td, th int
	fmt.Sscanf(vm[1]+vm[2], "%2d%2d", &fd, &fh)
	fmt.Sscanf(vm[3]+vm[4], "%2d%2d", &td, &th)
	out.ValidFrom = decode.ForecastTime(out.IssuedAt, fd, fh)
	out.ValidTo = decode.ForecastTime(out.IssuedAt, td, th)
	rest = rest[len(vm[0]):]

	validFrom, validTo := out.ValidFrom, out.ValidTo
	b := &builder{
		out:   out,
		issue: out.IssuedAt,
		cur: wx.ForecastPeriod{
			Change: wx.ChangeBase,
			From:   &validFrom,
			To:     &validTo,
		},
	}
	b.cond = decode.Conditions{Out: &b.cur.Conditions, Log: p.Log}

	engine.Run(p.groupChain(b), rest, p.Log)
	b.flush()

	return out, nil
}

// groupChain is the TAF-GROUPS handler registry followed by the shared
// condition handlers. Group leaders close the current period and start
// the next; everything else fills the current period.
func (p *Parser) groupChain(b *builder) engine.Chain {
	return engine.Chain{
		{Name: "changeGroup", Pattern: patterns.GroupChangePattern, Repeats: true, Handle: func(m *engine.Match) error {
			per, err := b.changePeriod(m)
			if err != nil {
				return err
			}
			b.start(per)
			return nil
		}},
		{Name: "fmGroup", Pattern: patterns.GroupFmPattern, Repeats: true, Handle: func(m *engine.Match) error {
			per, err := b.fmPeriod(m)
			if err != nil {
				return err
			}
			b.start(per)
			return nil
		}},
		{Name: "tempForecast", Pattern: patterns.TempForecastPattern, Handle: b.tempForecast},
		{Name: "wind", Pattern: patterns.WindPattern, Handle: b.cond.Wind},
		{Name: "visibility", Pattern: patterns.VisibilityPattern, Handle: b.cond.Visibility},
		{Name: "rvr", Pattern: patterns.RunwayPattern, Repeats: true, Handle: func(m *engine.Match) error {
			// RVR is not a forecast element; acknowledge and drop.
			if _, err := decode.RunwayVisualRange(m); err != nil {
				return err
			}
			p.Log.Debug().Str("token", m.Text()).Msg("rvr group in taf ignored")
			return nil
		}},
		{Name: "presentWeather", Pattern: patterns.PresentWeatherPattern, Repeats: true, Handle: b.cond.Weather},
		{Name: "skyCondition", Pattern: patterns.SkyConditionPattern, Repeats: true, Handle: b.cond.Sky},
		{Name: "tempDewpoint", Pattern: patterns.TempDewpointPattern, Handle: b.cond.TempDewpoint},
		{Name: "altimeter", Pattern: patterns.AltimeterPattern, Handle: b.cond.Altimeter},
		{Name: "unparsed", Pattern: patterns.UnparsedPattern, Handle: func(m *engine.Match) error {
			b.out.Unparsed = append(b.out.Unparsed, m.Group("token"))
			return nil
		}},
	}
}

// changePeriod builds the period for a TEMPO/BECMG/PROB group leader.
func (b *builder) changePeriod(m *engine.Match) (wx.ForecastPeriod, error) {
	per := wx.ForecastPeriod{Change: wx.ChangeProb}
	if ind := m.Group("probind"); ind != "" {
		per.Change = ind
	} else if ind := m.Group("ind"); ind != "" {
		per.Change = ind
	}
	if prob := m.Group("prob"); prob != "" {
		var v int
		fmt.Sscanf(prob, "%d", &v)
		per.Probability = v
	}

	var fd, fh, td, th int
	if _, err := fmt.Sscanf(
		m.Group("fromday")+m.Group("fromhour")+m.Group("today")+m.Group("tohour"),
		"%2d%2d%2d%2d", &fd, &fh, &td, &th); err != nil {
		return per, fmt.Errorf("bad change period in %q", m.Text())
	}
	from := decode.ForecastTime(b.issue, fd, fh)
	to := decode.ForecastTime(b.issue, td, th)
	per.From, per.To = &from, &to
	return per, nil
}

// fmPeriod builds the period for an FM group leader.
func (b *builder) fmPeriod(m *engine.Match) (wx.ForecastPeriod, error) {
	var day, hour, minute int
	if _, err := fmt.Sscanf(
		m.Group("day")+m.Group("hour")+m.Group("minute"),
		"%2d%2d%2d", &day, &hour, &minute); err != nil {
		return wx.ForecastPeriod{}, fmt.Errorf("bad fm time in %q", m.Text())
	}
	at := decode.ChangeTime(b.out.ValidFrom, day, hour, minute)
	return wx.ForecastPeriod{Change: wx.ChangeFM, At: &at}, nil
}

// tempForecast decodes a TX/TN group onto the report.
func (b *builder) tempForecast(m *engine.Match) error {
	var v, day, hour int
	if _, err := fmt.Sscanf(m.Group("value"), "%d", &v); err != nil {
		return fmt.Errorf("bad temperature forecast %q", m.Text())
	}
	if m.Group("sign") == "M" {
		v = -v
	}
	if _, err := fmt.Sscanf(m.Group("day")+m.Group("hour"), "%2d%2d", &day, &hour); err != nil {
		return fmt.Errorf("bad temperature forecast time %q", m.Text())
	}

	fc := &wx.TempForecast{Value: v, At: decode.ForecastTime(b.issue, day, hour)}
	if m.Group("kind") == "TX" {
		b.out.MaxTemp = fc
	} else {
		b.out.MinTemp = fc
	}
	return nil
}
