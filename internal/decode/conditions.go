package decode

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"noakweather/internal/engine"
	"noakweather/internal/patterns"
	"noakweather/internal/wx"
)

// Conditions accumulates the meteorological elements shared by METAR
// bodies and TAF forecast periods. The METAR and TAF assemblers bind
// its handlers into their chains rather than inheriting from a common
// parser.
type Conditions struct {
	Out *wx.Conditions
	Log zerolog.Logger
}

// Wind decodes the surface wind group.
func (b *Conditions) Wind(m *engine.Match) error {
	dir, speed := m.Group("dir"), m.Group("speed")
	if dir == "///" || speed == "//" {
		return nil // reported missing
	}

	spd, err := atoi(speed)
	if err != nil {
		return err
	}

	w := wx.Wind{Speed: spd, Unit: m.Group("unit")}
	if w.Unit == "" {
		w.Unit = wx.UnitKnots
	}

	if g := m.Group("gust"); g != "" {
		w.Gust, err = atoi(g)
		if err != nil {
			return err
		}
		if w.Gust <= w.Speed {
			b.Log.Warn().Str("token", strings.TrimSpace(m.Text())).
				Msg("gust not above sustained speed")
		}
	}

	if dir == "VRB" {
		w.Variable = true
	} else {
		d, err := atoi(dir)
		if err != nil {
			return err
		}
		if d > 360 {
			return fmt.Errorf("wind direction %d out of range", d)
		}
		if d == 0 && spd == 0 && w.Gust == 0 {
			w.Calm = true
		} else {
			w.Direction = d
		}
	}

	if vf := m.Group("varfrom"); vf != "" {
		from, err := atoi(vf)
		if err != nil {
			return err
		}
		to, err := atoi(m.Group("varto"))
		if err != nil {
			return err
		}
		w.VarFrom, w.VarTo = from, to
	}

	b.Out.Wind = &w
	return nil
}

// Visibility decodes the prevailing-visibility group.
func (b *Conditions) Visibility(m *engine.Match) error {
	v := wx.Visibility{}

	switch {
	case m.Group("cavok") != "":
		v.Modifier = wx.VisCAVOK

	case m.Group("novis") != "":
		return nil // reported missing

	case m.Group("num") != "":
		d, err := mixedFraction(m.Group("whole"), m.Group("num")+"/"+m.Group("den"))
		if err != nil {
			return err
		}
		v.Distance, v.Unit = d, wx.UnitStatuteMiles
		v.LessThan = m.Group("fracineq") == "M"
		v.GreaterThan = m.Group("fracineq") == "P"

	case m.Group("miles") != "":
		d, err := atoi(m.Group("miles"))
		if err != nil {
			return err
		}
		v.Distance, v.Unit = float64(d), wx.UnitStatuteMiles
		v.LessThan = m.Group("milesineq") == "M"
		v.GreaterThan = m.Group("milesineq") == "P"

	case m.Group("meters") != "":
		d, err := atoi(m.Group("meters"))
		if err != nil {
			return err
		}
		v.Distance, v.Unit = float64(d), wx.UnitMeters
		if m.Group("ndv") != "" {
			v.Modifier = wx.VisNDV
		}
		v.Direction = m.Group("sector")

	default:
		return fmt.Errorf("empty visibility group")
	}

	b.Out.Visibility = &v
	return nil
}

// Weather decodes one present-weather group and appends it.
func (b *Conditions) Weather(m *engine.Match) error {
	w := wx.PresentWeather{
		Intensity:   m.Group("intensity"),
		Descriptor:  m.Group("desc"),
		Obscuration: m.Group("obsc"),
		Other:       m.Group("other"),
		Raw:         strings.TrimSpace(m.Text()),
	}
	for c := m.Group("precip"); c != ""; c = c[2:] {
		w.Precipitation = append(w.Precipitation, c[:2])
	}

	if w.Descriptor == "" && len(w.Precipitation) == 0 && w.Obscuration == "" && w.Other == "" {
		return fmt.Errorf("weather group %q has no phenomenon", w.Raw)
	}

	b.Out.Weather = append(b.Out.Weather, w)
	return nil
}

// Sky decodes one cloud layer or vertical-visibility group and appends it.
func (b *Conditions) Sky(m *engine.Match) error {
	cover := patterns.NormalizeCoverage(m.Group("cover"))
	if cover == "///" {
		return nil // coverage unknown, layer dropped
	}

	height := m.Group("height")
	layer := wx.SkyCondition{Coverage: cover}

	switch cover {
	case wx.CoverSKC, wx.CoverCLR, wx.CoverNSC:
		if height != "" {
			return fmt.Errorf("%s layer with height %q", cover, height)
		}
	case wx.CoverVV:
		if height == "" || height == "///" {
			return fmt.Errorf("vertical visibility without height")
		}
	}

	if height != "" && height != "///" {
		h, err := atoi(height)
		if err != nil {
			return err
		}
		layer.Height = intp(h * 100)
	}
	if t := m.Group("type"); t != "///" {
		layer.Type = t
	}

	b.Out.Sky = append(b.Out.Sky, layer)
	return nil
}

// missing-value sentinels for the body temperature group.
func tempMissing(s string) bool {
	return s == "" || s == "//" || s == "XX" || s == "MM"
}

// TempDewpoint decodes the body temperature/dewpoint group. A missing
// temperature suppresses the whole record even when the dewpoint parsed.
func (b *Conditions) TempDewpoint(m *engine.Match) error {
	if tempMissing(m.Group("temp")) {
		return nil
	}

	v, err := atoi(m.Group("temp"))
	if err != nil {
		return err
	}
	if m.Group("tsign") != "" {
		v = -v
	}
	t := wx.Temperature{Value: v}

	if d := m.Group("dew"); !tempMissing(d) {
		dv, err := atoi(d)
		if err != nil {
			return err
		}
		if m.Group("dsign") != "" {
			dv = -dv
		}
		t.Dewpoint = intp(dv)
	}

	b.Out.Temperature = &t
	return nil
}

// Altimeter decodes the altimeter-setting group.
func (b *Conditions) Altimeter(m *engine.Match) error {
	raw, ins := m.Group("value"), false
	if raw == "" {
		raw, ins = m.Group("insvalue"), true
	}
	if raw == "////" {
		return nil // reported missing
	}

	v, err := atoi(raw)
	if err != nil {
		return err
	}

	var p wx.Pressure
	switch prefix := m.Group("prefix"); {
	case ins || m.Group("ins") != "":
		// The INS suffix wins even against a QNH prefix.
		p = wx.Pressure{Value: float64(v) / 100, Unit: wx.UnitInHg}
	case prefix == "A" || prefix == "AA":
		p = wx.Pressure{Value: float64(v) / 100, Unit: wx.UnitInHg}
	case prefix == "Q" || prefix == "QNH":
		p = wx.Pressure{Value: float64(v), Unit: wx.UnitHPa}
	default:
		p = heuristicPressure(v)
	}

	b.Out.Pressure = &p
	return nil
}

// heuristicPressure classifies an unprefixed 4-digit pressure group:
// 2000-3999 reads as inches of mercury times 100, anything lower as
// whole hectopascals.
func heuristicPressure(v int) wx.Pressure {
	if v >= 2000 && v <= 3999 {
		return wx.Pressure{Value: float64(v) / 100, Unit: wx.UnitInHg}
	}
	return wx.Pressure{Value: float64(v), Unit: wx.UnitHPa}
}
