package decode

import (
	"noakweather/internal/engine"
	"noakweather/internal/wx"
)

// RunwayVisualRange decodes one RVR group. The METAR assembler appends
// the result to the report; the TAF assembler only logs it, since RVR
// groups are not forecast elements.
func RunwayVisualRange(m *engine.Match) (wx.RunwayVisualRange, error) {
	if m.Group("rvrno") != "" {
		return wx.RunwayVisualRange{NotAvailable: true}, nil
	}

	r := wx.RunwayVisualRange{Runway: m.Group("rwy")}
	if m.Group("clrd") != "" {
		r.Cleared = true
		return r, nil
	}

	low, err := atoi(m.Group("low"))
	if err != nil {
		return r, err
	}
	r.Low = low
	r.LowLessThan = m.Group("lowineq") == "M"
	r.LowMoreThan = m.Group("lowineq") == "P"

	if h := m.Group("high"); h != "" {
		high, err := atoi(h)
		if err != nil {
			return r, err
		}
		r.High = high
		r.HighLessThan = m.Group("highineq") == "M"
		r.HighMoreThan = m.Group("highineq") == "P"
	}

	r.Trend = m.Group("trend")
	return r, nil
}
