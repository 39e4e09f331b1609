package decode

import (
	"regexp"
	"testing"

	"github.com/rs/zerolog"

	"noakweather/internal/engine"
	"noakweather/internal/patterns"
	"noakweather/internal/wx"
)

// drive anchors the pattern at the head of input and runs the handler.
func drive(t *testing.T, re *regexp.Regexp, input string, h engine.HandlerFunc) error {
	t.Helper()
	m, ok := engine.MatchPattern(re, input)
	if !ok {
		t.Fatalf("pattern %q did not match %q", re.String(), input)
	}
	return h(m)
}

func newConditions() (*Conditions, *wx.Conditions) {
	out := &wx.Conditions{}
	return &Conditions{Out: out, Log: zerolog.Nop()}, out
}

func TestWind(t *testing.T) {
	tests := []struct {
		in   string
		want wx.Wind
	}{
		{"19005KT", wx.Wind{Direction: 190, Speed: 5, Unit: "KT"}},
		{"00000KT", wx.Wind{Calm: true, Speed: 0, Unit: "KT"}},
		{"VRB03KT", wx.Wind{Variable: true, Speed: 3, Unit: "KT"}},
		{"28016G24KT", wx.Wind{Direction: 280, Speed: 16, Gust: 24, Unit: "KT"}},
		{"28016G24KT 250V310", wx.Wind{Direction: 280, Speed: 16, Gust: 24, Unit: "KT", VarFrom: 250, VarTo: 310}},
		{"12010MPS", wx.Wind{Direction: 120, Speed: 10, Unit: "MPS"}},
		{"25008", wx.Wind{Direction: 250, Speed: 8, Unit: "KT"}}, // unit defaults to knots
	}

	for _, tt := range tests {
		b, out := newConditions()
		if err := drive(t, patterns.WindPattern, tt.in, b.Wind); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.in, err)
			continue
		}
		if out.Wind == nil {
			t.Errorf("%s: no wind recorded", tt.in)
			continue
		}
		if *out.Wind != tt.want {
			t.Errorf("%s: wind = %+v, want %+v", tt.in, *out.Wind, tt.want)
		}
	}
}

func TestWindMissingAndInvalid(t *testing.T) {
	b, out := newConditions()
	if err := drive(t, patterns.WindPattern, "/////KT", b.Wind); err != nil {
		t.Errorf("placeholder wind: unexpected error: %v", err)
	}
	if out.Wind != nil {
		t.Errorf("placeholder wind recorded: %+v", out.Wind)
	}

	b, out = newConditions()
	if err := drive(t, patterns.WindPattern, "99905KT", b.Wind); err == nil {
		t.Error("direction 999: expected error")
	}
	if out.Wind != nil {
		t.Error("direction 999: builder mutated on error")
	}
}

func TestVisibility(t *testing.T) {
	tests := []struct {
		in   string
		want wx.Visibility
	}{
		{"10SM", wx.Visibility{Distance: 10, Unit: "SM"}},
		{"P6SM", wx.Visibility{Distance: 6, Unit: "SM", GreaterThan: true}},
		{"M1/4SM", wx.Visibility{Distance: 0.25, Unit: "SM", LessThan: true}},
		{"1 1/2SM", wx.Visibility{Distance: 1.5, Unit: "SM"}},
		{"9999", wx.Visibility{Distance: 9999, Unit: "M"}},
		{"0800NE", wx.Visibility{Distance: 800, Unit: "M", Direction: "NE"}},
		{"2000NDV", wx.Visibility{Distance: 2000, Unit: "M", Modifier: "NDV"}},
		{"CAVOK", wx.Visibility{Modifier: "CAVOK"}},
	}

	for _, tt := range tests {
		b, out := newConditions()
		if err := drive(t, patterns.VisibilityPattern, tt.in, b.Visibility); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.in, err)
			continue
		}
		if out.Visibility == nil {
			t.Errorf("%s: no visibility recorded", tt.in)
			continue
		}
		if *out.Visibility != tt.want {
			t.Errorf("%s: visibility = %+v, want %+v", tt.in, *out.Visibility, tt.want)
		}
	}
}

func TestWeather(t *testing.T) {
	b, out := newConditions()
	if err := drive(t, patterns.PresentWeatherPattern, "+TSRA", b.Weather); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := drive(t, patterns.PresentWeatherPattern, "VCFG", b.Weather); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := drive(t, patterns.PresentWeatherPattern, "-RASN", b.Weather); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Weather) != 3 {
		t.Fatalf("weather groups = %d, want 3", len(out.Weather))
	}
	w := out.Weather[0]
	if w.Intensity != "+" || w.Descriptor != "TS" || len(w.Precipitation) != 1 || w.Precipitation[0] != "RA" {
		t.Errorf("+TSRA decoded as %+v", w)
	}
	w = out.Weather[1]
	if w.Intensity != "VC" || w.Obscuration != "FG" {
		t.Errorf("VCFG decoded as %+v", w)
	}
	w = out.Weather[2]
	if w.Intensity != "-" || len(w.Precipitation) != 2 || w.Precipitation[0] != "RA" || w.Precipitation[1] != "SN" {
		t.Errorf("-RASN decoded as %+v", w)
	}
}

func TestSky(t *testing.T) {
	b, out := newConditions()
	for _, in := range []string{"FEW100", "BKN050CB", "VV002", "CLR", "0VC01O"} {
		if err := drive(t, patterns.SkyConditionPattern, in, b.Sky); err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
	}

	if len(out.Sky) != 5 {
		t.Fatalf("layers = %d, want 5", len(out.Sky))
	}
	checks := []struct {
		cover  string
		height int // -1 means absent
		typ    string
	}{
		{"FEW", 10000, ""},
		{"BKN", 5000, "CB"},
		{"VV", 200, ""},
		{"CLR", -1, ""},
		{"OVC", 1000, ""}, // OCR: 0VC01O
	}
	for i, c := range checks {
		layer := out.Sky[i]
		if layer.Coverage != c.cover || layer.Type != c.typ {
			t.Errorf("layer %d = %+v, want %s/%s", i, layer, c.cover, c.typ)
		}
		switch {
		case c.height == -1 && layer.Height != nil:
			t.Errorf("layer %d: height = %d, want absent", i, *layer.Height)
		case c.height != -1 && (layer.Height == nil || *layer.Height != c.height):
			t.Errorf("layer %d: height = %v, want %d", i, layer.Height, c.height)
		}
	}
}

func TestSkyInvariants(t *testing.T) {
	b, out := newConditions()
	if err := drive(t, patterns.SkyConditionPattern, "VV///", b.Sky); err == nil {
		t.Error("VV with unknown height: expected error")
	}
	if len(out.Sky) != 0 {
		t.Error("VV error mutated builder")
	}
}

func TestTempDewpoint(t *testing.T) {
	tests := []struct {
		in   string
		temp int
		dew  *int
	}{
		{"16/M03", 16, intp(-3)},
		{"M02/M02", -2, intp(-2)},
		{"22/18", 22, intp(18)},
		{"27/", 27, nil},
		{"10///", 10, nil},
	}

	for _, tt := range tests {
		b, out := newConditions()
		if err := drive(t, patterns.TempDewpointPattern, tt.in, b.TempDewpoint); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.in, err)
			continue
		}
		if out.Temperature == nil {
			t.Errorf("%s: no temperature recorded", tt.in)
			continue
		}
		if out.Temperature.Value != tt.temp {
			t.Errorf("%s: temp = %d, want %d", tt.in, out.Temperature.Value, tt.temp)
		}
		switch {
		case tt.dew == nil && out.Temperature.Dewpoint != nil:
			t.Errorf("%s: dewpoint = %d, want absent", tt.in, *out.Temperature.Dewpoint)
		case tt.dew != nil && (out.Temperature.Dewpoint == nil || *out.Temperature.Dewpoint != *tt.dew):
			t.Errorf("%s: dewpoint = %v, want %d", tt.in, out.Temperature.Dewpoint, *tt.dew)
		}
	}
}

func TestTempMissingSentinels(t *testing.T) {
	for _, in := range []string{"///05", "XX/05", "MM/MM"} {
		b, out := newConditions()
		if err := drive(t, patterns.TempDewpointPattern, in, b.TempDewpoint); err != nil {
			t.Errorf("%s: unexpected error: %v", in, err)
		}
		if out.Temperature != nil {
			t.Errorf("%s: temperature recorded despite missing sentinel", in)
		}
	}
}

func TestAltimeter(t *testing.T) {
	tests := []struct {
		in    string
		value float64
		unit  string
	}{
		{"A3012", 30.12, "inHg"},
		{"Q1013", 1013, "hPa"},
		{"QNH2992INS", 29.92, "inHg"},
		{"2992INS", 29.92, "inHg"},
		{"A30O1", 30.01, "inHg"}, // OCR: O for 0
	}

	for _, tt := range tests {
		b, out := newConditions()
		if err := drive(t, patterns.AltimeterPattern, tt.in, b.Altimeter); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.in, err)
			continue
		}
		if out.Pressure == nil {
			t.Errorf("%s: no pressure recorded", tt.in)
			continue
		}
		if out.Pressure.Value != tt.value || out.Pressure.Unit != tt.unit {
			t.Errorf("%s: pressure = %+v, want %v %v", tt.in, *out.Pressure, tt.value, tt.unit)
		}
	}

	b, out := newConditions()
	if err := drive(t, patterns.AltimeterPattern, "Q////", b.Altimeter); err != nil {
		t.Errorf("missing altimeter: unexpected error: %v", err)
	}
	if out.Pressure != nil {
		t.Error("missing altimeter recorded a value")
	}
}

func TestHeuristicPressure(t *testing.T) {
	tests := []struct {
		v     int
		value float64
		unit  string
	}{
		{2992, 29.92, "inHg"},
		{3999, 39.99, "inHg"},
		{1013, 1013, "hPa"},
		{1999, 1999, "hPa"},
		{999, 999, "hPa"},
	}
	for _, tt := range tests {
		p := heuristicPressure(tt.v)
		if p.Value != tt.value || p.Unit != tt.unit {
			t.Errorf("heuristicPressure(%d) = %+v, want %v %v", tt.v, p, tt.value, tt.unit)
		}
	}
}

func TestRunwayVisualRange(t *testing.T) {
	m, ok := engine.MatchPattern(patterns.RunwayPattern, "R04R/M0600V1200N")
	if !ok {
		t.Fatal("pattern did not match")
	}
	r, err := RunwayVisualRange(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wx.RunwayVisualRange{
		Runway: "04R", Low: 600, High: 1200,
		LowLessThan: true, Trend: "N",
	}
	if r != want {
		t.Errorf("rvr = %+v, want %+v", r, want)
	}

	m, ok = engine.MatchPattern(patterns.RunwayPattern, "R24L/P6000FT")
	if !ok {
		t.Fatal("pattern did not match")
	}
	r, err = RunwayVisualRange(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Runway != "24L" || r.Low != 6000 || !r.LowMoreThan {
		t.Errorf("rvr = %+v", r)
	}

	m, ok = engine.MatchPattern(patterns.RunwayPattern, "R06/CLRD")
	if !ok {
		t.Fatal("pattern did not match")
	}
	r, err = RunwayVisualRange(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Cleared || r.Runway != "06" {
		t.Errorf("rvr = %+v", r)
	}

	m, ok = engine.MatchPattern(patterns.RunwayPattern, "RVRNO")
	if !ok {
		t.Fatal("pattern did not match")
	}
	r, err = RunwayVisualRange(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.NotAvailable {
		t.Errorf("rvr = %+v", r)
	}
}
