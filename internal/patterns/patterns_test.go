package patterns

import "testing"

func TestReportModifierForms(t *testing.T) {
	for _, in := range []string{"AMD", "AUTO", "COR", "CORR", "RTD", "CCA", "NIL", "FINO", "TEST"} {
		if !ReportModifierPattern.MatchString(in) {
			t.Errorf("modifier %q not matched", in)
		}
	}
	if ReportModifierPattern.MatchString("CCX") {
		t.Error("CCX matched; correction letters stop at G")
	}
}

func TestStationDayTimeAnchoring(t *testing.T) {
	m := StationDayTimePattern.FindStringSubmatch("KJFK 142252Z 19005KT")
	if m == nil {
		t.Fatal("header not matched")
	}
	if m[1] != "KJFK" || m[2] != "14" || m[3] != "22" || m[4] != "52" {
		t.Errorf("groups = %v", m[1:])
	}

	// TAF is three letters; it must not read as a station.
	if StationDayTimePattern.MatchString("TAF KLAX 151130Z") {
		t.Error("TAF leader matched as a station header")
	}
}

func TestRemarksDelimiter(t *testing.T) {
	loc := RemarksDelimPattern.FindStringIndex("M02/M02 A2998 RMK AO2 SLP156")
	if loc == nil {
		t.Fatal("RMK not found")
	}
	// RMK inside another token must not split the report.
	if RemarksDelimPattern.MatchString("FIRMKX") {
		t.Error("embedded RMK matched")
	}
}

func TestBeginEndRequiresTiming(t *testing.T) {
	for in, want := range map[string]bool{
		"RAB15":               true,
		"FZRAB1159E1240SNB30": true,
		"TSB07":               true,
		"RA":                  false,
		"SHSN":                false,
	} {
		if got := BeginEndWeatherPattern.MatchString(in); got != want {
			t.Errorf("begin/end match(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCeilingGrammarsAreDisjoint(t *testing.T) {
	// The registry keeps variable ceiling ahead of second-site ceiling;
	// each grammar must stay out of the other's input.
	if VariableCeilingPattern.MatchString("CIG 002 RWY11") {
		t.Error("variable ceiling matched a second-site form")
	}
	if CeilingSecondSitePattern.MatchString("CIG 005V010") {
		t.Error("second-site ceiling matched a variable form")
	}
}

func TestNormalization(t *testing.T) {
	if NormalizeDigits("30O1") != "3001" {
		t.Error("O not normalized to 0")
	}
	if NormalizeCoverage("0VC") != "OVC" || NormalizeCoverage("SCK") != "SKC" {
		t.Error("coverage aliases not normalized")
	}
	if NormalizeCoverage("BKN") != "BKN" {
		t.Error("valid coverage mangled")
	}
	if CollapseWhitespace(" a\n b\t c ") != "a b c" {
		t.Error("whitespace not collapsed")
	}
}
