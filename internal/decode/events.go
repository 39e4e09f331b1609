package decode

import (
	"fmt"
	"regexp"

	"noakweather/internal/engine"
	"noakweather/internal/wx"
)

// eventMarkerPattern splits the timing tail of a begin/end atom into
// individual Bmm/Bhhmm/Emm/Ehhmm markers.
var eventMarkerPattern = regexp.MustCompile(`[BE]\d{2,4}`)

var precipCodes = map[string]bool{
	"DZ": true, "RA": true, "SN": true, "SG": true, "IC": true,
	"PL": true, "GR": true, "GS": true, "UP": true,
}

var obscurationCodes = map[string]bool{
	"BR": true, "FG": true, "FU": true, "VA": true,
	"DU": true, "SA": true, "HZ": true, "PY": true,
}

// NSW is carried through as an ordinary code; whether a chain may
// legally contain it is left to the reader of the events.
var otherCodes = map[string]bool{
	"PO": true, "SQ": true, "FC": true, "SS": true, "DS": true, "NSW": true,
}

// WeatherEvents decodes one phenomenon-plus-timing atom of a weather
// begin/end chain (e.g. the FZRAB1159E1240 piece of
// FZRAB1159E1240SNB30). The engine's repeat flag re-anchors after each
// atom, so chained atoms arrive here one at a time. A single atom can
// describe several events when begin/end markers alternate.
func (b *Remarks) WeatherEvents(m *engine.Match) error {
	base := wx.WeatherEvent{
		Intensity:  m.Group("intensity"),
		Descriptor: m.Group("desc"),
	}
	if err := classifyEventCodes(m.Group("code"), &base); err != nil {
		return err
	}

	var events []wx.WeatherEvent
	cur := base
	for _, marker := range eventMarkerPattern.FindAllString(m.Group("times"), -1) {
		at, err := markerTime(marker[1:])
		if err != nil {
			return err
		}
		if marker[0] == 'B' {
			if cur.Begin != nil || cur.End != nil {
				events = append(events, cur)
				cur = base
			}
			cur.Begin = &at
		} else {
			if cur.End != nil {
				events = append(events, cur)
				cur = base
			}
			cur.End = &at
		}
	}
	events = append(events, cur)

	b.Out.WeatherEvents = append(b.Out.WeatherEvents, events...)
	return nil
}

// classifyEventCodes splits the concatenated weather code of an atom
// into precipitation, obscuration and other components.
func classifyEventCodes(code string, ev *wx.WeatherEvent) error {
	for code != "" {
		n := 2
		if len(code) >= 3 && otherCodes[code[:3]] {
			n = 3
		}
		if len(code) < n {
			return fmt.Errorf("truncated weather code %q", code)
		}
		c := code[:n]
		switch {
		case precipCodes[c]:
			ev.Precipitation = append(ev.Precipitation, c)
		case obscurationCodes[c]:
			ev.Obscuration = c
		case otherCodes[c]:
			ev.Other = c
		default:
			return fmt.Errorf("unknown weather code %q", c)
		}
		code = code[n:]
	}
	return nil
}

// markerTime parses the digits of a B/E marker: two digits are minutes
// past the current hour, four digits are HHMM.
func markerTime(digits string) (wx.ClockTime, error) {
	if len(digits) == 4 {
		h, err := atoi(digits[:2])
		if err != nil {
			return wx.ClockTime{}, err
		}
		min, err := atoi(digits[2:])
		if err != nil {
			return wx.ClockTime{}, err
		}
		return wx.ClockTime{Hour: intp(h), Minute: min}, nil
	}
	min, err := atoi(digits)
	if err != nil {
		return wx.ClockTime{}, err
	}
	return wx.ClockTime{Minute: min}, nil
}
