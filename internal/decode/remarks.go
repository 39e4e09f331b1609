package decode

import (
	"strings"

	"github.com/rs/zerolog"

	"noakweather/internal/engine"
	"noakweather/internal/wx"
)

// Remarks accumulates the decoded RMK section of a METAR.
type Remarks struct {
	Out *wx.Remarks
	Log zerolog.Logger

	freeText []string
}

// AutoStation decodes the AO1/AO2 automated-station indicator.
func (b *Remarks) AutoStation(m *engine.Match) error {
	b.Out.StationType = "AO" + m.Group("disc")
	return nil
}

// SeaLevelPressure decodes SLPppp. Values of 500 and above fold into
// the 900 hPa decade, lower values into the 1000 hPa decade.
func (b *Remarks) SeaLevelPressure(m *engine.Match) error {
	v := m.Group("value")
	if v == "NO" {
		b.Out.SeaLevelPressureUnavailable = true
		return nil
	}

	ppp, err := atoi(v)
	if err != nil {
		return err
	}
	hpa := 1000 + float64(ppp)/10
	if ppp >= 500 {
		hpa = 900 + float64(ppp)/10
	}
	b.Out.SeaLevelPressure = floatp(hpa)
	return nil
}

// PeakWind decodes the PK WND remark.
func (b *Remarks) PeakWind(m *engine.Match) error {
	dir, err := atoi(m.Group("dir"))
	if err != nil {
		return err
	}
	speed, err := atoi(m.Group("speed"))
	if err != nil {
		return err
	}
	minute, err := atoi(m.Group("minute"))
	if err != nil {
		return err
	}
	at, err := clock(m.Group("hour"), minute)
	if err != nil {
		return err
	}

	b.Out.PeakWind = &wx.PeakWind{Direction: dir, Speed: speed, At: at}
	return nil
}

// WindShift decodes the WSHFT remark with its optional FROPA qualifier.
func (b *Remarks) WindShift(m *engine.Match) error {
	minute, err := atoi(m.Group("minute"))
	if err != nil {
		return err
	}
	at, err := clock(m.Group("hour"), minute)
	if err != nil {
		return err
	}

	b.Out.WindShift = &wx.WindShift{At: at, FrontalPassage: m.Group("fropa") != ""}
	return nil
}

// VisibilityRemark decodes the visibility remark family: variable
// visibility, sector visibility, tower/surface visibility and
// second-location visibility. All distances are statute miles.
func (b *Remarks) VisibilityRemark(m *engine.Match) error {
	switch {
	case m.Group("min") != "":
		min, err := mixedFraction(m.Group("minwhole"), m.Group("min"))
		if err != nil {
			return err
		}
		max, err := mixedFraction(m.Group("maxwhole"), m.Group("max"))
		if err != nil {
			return err
		}
		b.Out.VariableVisibility = &wx.VariableVisibility{Min: min, Max: max}

	case m.Group("secdir") != "":
		d, err := mixedFraction(m.Group("secwhole"), m.Group("secdist"))
		if err != nil {
			return err
		}
		b.Out.SectorVisibility = &wx.SectorVisibility{
			Direction: m.Group("secdir"),
			Distance:  d,
		}

	default:
		d, err := mixedFraction(m.Group("whole"), m.Group("dist"))
		if err != nil {
			return err
		}
		switch {
		case m.Group("loc") != "":
			b.Out.SecondSiteVis = &wx.SecondSiteVis{Distance: d, Location: m.Group("loc")}
		case m.Group("site") == "TWR":
			b.Out.TowerVisibility = floatp(d)
		default:
			// SFC VIS, and plain VIS without a qualifier.
			b.Out.SurfaceVisibility = floatp(d)
		}
	}
	return nil
}

// VariableCeiling decodes "CIG lllVhhh" into feet.
func (b *Remarks) VariableCeiling(m *engine.Match) error {
	low, err := atoi(m.Group("low"))
	if err != nil {
		return err
	}
	high, err := atoi(m.Group("high"))
	if err != nil {
		return err
	}
	b.Out.VariableCeiling = &wx.VariableCeiling{Low: low * 100, High: high * 100}
	return nil
}

// CeilingSecondSite decodes "CIG hhh RWYnn" into feet.
func (b *Remarks) CeilingSecondSite(m *engine.Match) error {
	h, err := atoi(m.Group("height"))
	if err != nil {
		return err
	}
	b.Out.SecondSiteCeiling = &wx.SecondSiteCeiling{
		Height:   h * 100,
		Location: m.Group("loc"),
	}
	return nil
}

// Obscuration decodes a surface/aloft obscuration layer remark.
func (b *Remarks) Obscuration(m *engine.Match) error {
	h, err := atoi(m.Group("height"))
	if err != nil {
		return err
	}
	b.Out.Obscurations = append(b.Out.Obscurations, wx.Obscuration{
		Phenomenon: m.Group("phenom"),
		Layer: wx.SkyCondition{
			Coverage: m.Group("cover"),
			Height:   intp(h * 100),
		},
	})
	return nil
}

// StormLocation decodes a thunderstorm/cloud location remark.
func (b *Remarks) StormLocation(m *engine.Match) error {
	b.Out.StormLocations = append(b.Out.StormLocations, wx.StormLocation{
		Phenomenon: m.Group("phenom"),
		Proximity:  m.Group("prox"),
		Direction:  m.Group("dir"),
		Moving:     m.Group("mov"),
	})
	return nil
}

// CloudOkta decodes one cloud-type observation in oktas.
func (b *Remarks) CloudOkta(m *engine.Match) error {
	okta, err := atoi(m.Group("okta"))
	if err != nil {
		return err
	}
	b.Out.CloudTypes = append(b.Out.CloudTypes, wx.CloudOkta{
		Type: m.Group("type"),
		Okta: okta,
	})
	return nil
}

// Lightning decodes an LTG remark.
func (b *Remarks) Lightning(m *engine.Match) error {
	l := wx.Lightning{
		Frequency: m.Group("freq"),
		Proximity: m.Group("prox"),
		Direction: m.Group("dir"),
	}
	for t := m.Group("types"); t != ""; t = t[2:] {
		l.Types = append(l.Types, t[:2])
	}
	b.Out.Lightning = &l
	return nil
}

// PressureRapid decodes PRESRR / PRESFR.
func (b *Remarks) PressureRapid(m *engine.Match) error {
	if m.Group("tend") == "R" {
		b.Out.PressureRisingRapidly = true
	} else {
		b.Out.PressureFallingRapidly = true
	}
	return nil
}

// PreciseTemp decodes the hourly TsnTTTsnTTT remark. The sign digit 1
// marks a negative value; digits are tenths of °C.
func (b *Remarks) PreciseTemp(m *engine.Match) error {
	t, err := signedTenths(m.Group("tsign"), m.Group("temp"))
	if err != nil {
		return err
	}
	pt := wx.PreciseTemperature{Value: t}

	if d := m.Group("dew"); d != "" {
		dv, err := signedTenths(m.Group("dsign"), d)
		if err != nil {
			return err
		}
		pt.Dewpoint = floatp(dv)
	}

	b.Out.Temperature = &pt
	return nil
}

// signedTenths converts a sign digit (1 = negative) plus a 3-digit
// tenths-of-°C group.
func signedTenths(sign, digits string) (float64, error) {
	v, err := atoi(digits)
	if err != nil {
		return 0, err
	}
	t := float64(v) / 10
	if sign == "1" {
		t = -t
	}
	return t, nil
}

// HourlyPrecip decodes Prrrr in hundredths of inches.
func (b *Remarks) HourlyPrecip(m *engine.Match) error {
	p, err := precipAmount(1, m.Group("amount"))
	if err != nil {
		return err
	}
	b.Out.Precipitation = append(b.Out.Precipitation, p)
	return nil
}

// SixHourTemp decodes 1snTTT (6-hour max) or 2snTTT (6-hour min).
// Both may appear; order is not significant.
func (b *Remarks) SixHourTemp(m *engine.Match) error {
	v, err := signedTenths(m.Group("sign"), m.Group("value"))
	if err != nil {
		return err
	}
	if m.Group("which") == "1" {
		b.Out.SixHourMax = floatp(v)
	} else {
		b.Out.SixHourMin = floatp(v)
	}
	return nil
}

// DayTemp decodes the 24-hour 4snTTTsnTTT group: max first, min second.
func (b *Remarks) DayTemp(m *engine.Match) error {
	max, err := signedTenths(m.Group("maxsign"), m.Group("max"))
	if err != nil {
		return err
	}
	min, err := signedTenths(m.Group("minsign"), m.Group("min"))
	if err != nil {
		return err
	}
	b.Out.DayMax, b.Out.DayMin = floatp(max), floatp(min)
	return nil
}

// PressureTendency decodes 5appp: WMO Code 0200 character plus the
// 3-hour change in tenths of hPa.
func (b *Remarks) PressureTendency(m *engine.Match) error {
	code, err := atoi(m.Group("code"))
	if err != nil {
		return err
	}
	change, err := atoi(m.Group("change"))
	if err != nil {
		return err
	}
	b.Out.PressureTendency = &wx.PressureTendency{
		Code:   code,
		Change: float64(change) / 10,
	}
	return nil
}

// LongPrecip decodes 6rrrr (3/6-hour) and 7rrrr (24-hour) amounts. The
// 7 leader always reads as the 24-hour amount.
func (b *Remarks) LongPrecip(m *engine.Match) error {
	hours := 6
	if m.Group("period") == "7" {
		hours = 24
	}
	p, err := precipAmount(hours, m.Group("amount"))
	if err != nil {
		return err
	}
	b.Out.Precipitation = append(b.Out.Precipitation, p)
	return nil
}

// precipAmount converts an rrrr group (hundredths of inches) with the
// slash sentinel meaning an indeterminate trace.
func precipAmount(hours int, amount string) (wx.Precipitation, error) {
	p := wx.Precipitation{PeriodHours: hours}
	if strings.Trim(amount, "/") == "" {
		p.Trace = true
		return p, nil
	}
	v, err := atoi(amount)
	if err != nil {
		return p, err
	}
	p.Amount = float64(v) / 100
	return p, nil
}

// PressQ decodes QNH/QFE pressure remarks.
func (b *Remarks) PressQ(m *engine.Match) error {
	v, err := atoi(m.Group("value"))
	if err != nil {
		return err
	}
	var p wx.Pressure
	if m.Group("ins") != "" {
		p = wx.Pressure{Value: float64(v) / 100, Unit: wx.UnitInHg}
	} else {
		p = heuristicPressure(v)
	}
	b.Out.QNH = &p
	return nil
}

// Maintenance decodes automated-maintenance indicators. The $ sign sets
// the maintenance-required flag and is recorded as an indicator too.
func (b *Remarks) Maintenance(m *engine.Match) error {
	code := m.Group("ind")
	if code == "" {
		code = m.Group("locind")
	}
	if code == "$" {
		b.Out.MaintenanceRequired = true
	}
	b.Out.Maintenance = append(b.Out.Maintenance, wx.MaintenanceIndicator{
		Code:     code,
		Location: m.Group("loc"),
	})
	return nil
}

// HailSize decodes "GR s" hailstone sizes in inches.
func (b *Remarks) HailSize(m *engine.Match) error {
	s, err := mixedFraction(m.Group("whole"), m.Group("size"))
	if err != nil {
		return err
	}
	b.Out.HailSize = floatp(s)
	return nil
}

// Unparsed records a token no remark pattern consumed.
func (b *Remarks) Unparsed(m *engine.Match) error {
	b.freeText = append(b.freeText, m.Group("token"))
	return nil
}

// AddFreeText appends residue text captured outside the engine run.
func (b *Remarks) AddFreeText(tokens ...string) {
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			b.freeText = append(b.freeText, t)
		}
	}
}

// Finalize folds accumulated free-text tokens into the remarks record.
// Nothing is silently discarded: whatever no decoder consumed lands in
// FreeText verbatim.
func (b *Remarks) Finalize() {
	b.Out.FreeText = strings.Join(b.freeText, " ")
}
