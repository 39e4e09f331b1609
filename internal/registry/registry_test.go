package registry_test

import (
	"errors"
	"testing"

	_ "noakweather/internal/parsers" // register metar + taf via init()
	"noakweather/internal/registry"
	"noakweather/internal/wx"
)

func TestDefaultRegistration(t *testing.T) {
	types := registry.Default().SourceTypes()
	if len(types) != 2 || types[0] != wx.SourceMetar || types[1] != wx.SourceTaf {
		t.Fatalf("source types = %v, want [NOAA_METAR NOAA_TAF] in registration order", types)
	}
}

func TestParseAutoDetection(t *testing.T) {
	reg := registry.Default()

	rep, err := reg.ParseAuto("METAR KJFK 142252Z 19005KT 10SM FEW100 16/M03 A3012")
	if err != nil {
		t.Fatalf("metar auto-detect failed: %v", err)
	}
	if rep.SourceType() != wx.SourceMetar || rep.StationID() != "KJFK" {
		t.Errorf("report = %s/%s", rep.SourceType(), rep.StationID())
	}

	rep, err = reg.ParseAuto("TAF KLAX 151130Z 1512/1618 25008KT P6SM FEW020")
	if err != nil {
		t.Fatalf("taf auto-detect failed: %v", err)
	}
	if rep.SourceType() != wx.SourceTaf || rep.StationID() != "KLAX" {
		t.Errorf("report = %s/%s", rep.SourceType(), rep.StationID())
	}
}

func TestParseAutoRejectsUnknownInput(t *testing.T) {
	_, err := registry.Default().ParseAuto("this is not a weather report")
	if !errors.Is(err, registry.ErrUnrecognized) {
		t.Errorf("error = %v, want ErrUnrecognized", err)
	}
}

func TestExplicitRouting(t *testing.T) {
	reg := registry.Default()

	rep, err := reg.Parse("SPECI KORD 151712Z 28016KT 2SM BKN050 22/18 A2992", wx.SourceMetar)
	if err != nil {
		t.Fatalf("explicit metar route failed: %v", err)
	}
	m := rep.(*wx.Metar)
	if m.ReportType != "SPECI" {
		t.Errorf("report type = %q", m.ReportType)
	}

	if _, err := reg.Parse("anything", "NOAA_SIGMET"); !errors.Is(err, registry.ErrUnknownSource) {
		t.Errorf("error = %v, want ErrUnknownSource", err)
	}
}
