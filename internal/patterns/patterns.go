// Package patterns provides the compiled regular expressions for METAR
// and TAF element decoding, plus small normalization helpers.
//
// Every pattern anchors at the start of the remaining token stream and
// consumes its trailing separator, so the token engine can strip the
// match and re-anchor. Named capture groups are the contract with the
// decoders in internal/decode.
package patterns

import (
	"regexp"
	"strings"
)

// Header patterns shared by METAR and TAF.
var (
	// ReportTypePattern matches the METAR/SPECI leader.
	ReportTypePattern = regexp.MustCompile(`^(?P<type>METAR|SPECI)(?:\s+|$)`)

	// TafPattern matches the TAF leader.
	TafPattern = regexp.MustCompile(`^TAF(?:\s+|$)`)

	// MonthDayYearPattern matches the optional "YYYY/MM/DD HH:MM" issue
	// date prefixed to archived reports.
	MonthDayYearPattern = regexp.MustCompile(`^(?P<year>\d{4})/(?P<month>\d{2})/(?P<day>\d{2})\s+(?P<hour>\d{2}):(?P<minute>\d{2})(?:\s+|$)`)

	// StationDayTimePattern matches "ICAO DDHHMMZ".
	StationDayTimePattern = regexp.MustCompile(`^(?P<station>[A-Z][A-Z0-9]{3})\s+(?P<day>\d{2})(?P<hour>\d{2})(?P<minute>\d{2})Z(?:\s+|$)`)

	// ValidityPattern matches the TAF validity window "DDHH/DDHH".
	ValidityPattern = regexp.MustCompile(`^(?P<fromday>\d{2})(?P<fromhour>\d{2})/(?P<today>\d{2})(?P<tohour>\d{2})(?:\s+|$)`)

	// ReportModifierPattern matches report modifiers. CORR? accepts both
	// COR and CORR as transmitted.
	ReportModifierPattern = regexp.MustCompile(`^(?P<mod>AMD|AUTO|CORR?|RTD|CC[A-G]|NIL|FINO|TEST)(?:\s+|$)`)
)

// Main-body patterns.
var (
	// WindPattern matches dddff(f)Gff(f)UNIT with an optional trailing
	// dddVddd variable-direction group. /// placeholders are tolerated.
	WindPattern = regexp.MustCompile(`^(?P<dir>\d{3}|VRB|///)(?P<speed>\d{2,3}|//)(?:G(?P<gust>\d{2,3}))?(?P<unit>KT|MPS|KMH)?(?:\s+(?P<varfrom>\d{3})V(?P<varto>\d{3}))?(?:\s+|$)`)

	// VisibilityPattern matches CAVOK, //// (missing), statute-mile forms
	// (P6SM, M1/4SM, 1 1/2SM) and bare 4-digit meter groups with optional
	// NDV or sector suffix.
	VisibilityPattern = regexp.MustCompile(`^(?:(?P<cavok>CAVOK)|(?P<novis>////)|(?P<fracineq>[MP])?(?:(?P<whole>\d{1,2})\s+)?(?P<num>\d{1,2})/(?P<den>\d{1,2})SM|(?P<milesineq>[MP])?(?P<miles>\d{1,3})SM|(?P<meters>\d{4})(?P<ndv>NDV)?(?P<sector>[NSEW][EW]?)?)(?:\s+|$)`)

	// RunwayPattern matches runway visual range groups, including the
	// CLRD and RVRNO sentinels and NNNNVNNNN variable ranges.
	RunwayPattern = regexp.MustCompile(`^(?:(?P<rvrno>RVRNO)|R(?P<rwy>\d{2}[LCR]?)/(?:(?P<clrd>CLRD)|(?P<lowineq>[MP])?(?P<low>\d{4})(?:V(?P<highineq>[MP])?(?P<high>\d{4}))?)(?P<unit>FT)?(?P<trend>[NUD])?(?:/\d{2})?)(?:\s+|$)`)

	// PresentWeatherPattern matches intensity + descriptor + up to three
	// precipitation codes + obscuration + other. The groups are all
	// optional; the trailing separator keeps it from matching inside an
	// unrelated token.
	PresentWeatherPattern = regexp.MustCompile(`^(?P<intensity>\+|-|VC)?(?P<desc>MI|PR|BC|DR|BL|SH|TS|FZ)?(?P<precip>(?:DZ|RA|SN|SG|IC|PL|GR|GS|UP){1,3})?(?P<obsc>BR|FG|FU|VA|DU|SA|HZ|PY)?(?P<other>PO|SQ|FC|SS|DS|NSW)?(?:\s+|$)`)

	// SkyConditionPattern matches one cloud layer or vertical visibility.
	// 0VC and SCK are OCR aliases; O inside heights is normalized by the
	// decoder.
	SkyConditionPattern = regexp.MustCompile(`^(?P<cover>VV|FEW|SCT|BKN|0VC|OVC|SKC|SCK|CLR|NSC|///)(?P<height>[\dO]{3}|///)?(?P<type>CB|TCU|ACC|///)?(?:\s+|$)`)

	// TempDewpointPattern matches the body temperature group. // , XX and
	// MM are missing-value sentinels.
	TempDewpointPattern = regexp.MustCompile(`^(?P<tsign>M|-)?(?P<temp>\d{2}|//|XX|MM)/(?P<dsign>M|-)?(?P<dew>\d{2}|//|XX|MM)?(?:\s+|$)`)

	// AltimeterPattern matches A/AA/Q/QNH-prefixed settings and the INS
	// suffix form. O is an accepted OCR alias for 0.
	AltimeterPattern = regexp.MustCompile(`^(?:(?P<prefix>QNH|AA|A|Q)(?P<value>[\dO]{4}|////)(?P<ins>INS)?|(?P<insvalue>[\dO]{4})INS)(?:\s+|$)`)

	// NoSigPattern matches the NOSIG trend indicator.
	NoSigPattern = regexp.MustCompile(`^NOSIG(?:\s+|$)`)

	// RemarksDelimPattern locates the RMK token separating a METAR body
	// from its remarks section.
	RemarksDelimPattern = regexp.MustCompile(`(?:^|\s)RMK(?:\s+|$)`)

	// UnparsedPattern is the catch-all: one non-whitespace token.
	UnparsedPattern = regexp.MustCompile(`^(?P<token>\S+)\s*`)
)

// Remark patterns, in US FMH-1 remark order.
var (
	// AutoStationPattern matches AO1/AO2 with the A01/A02 OCR alias.
	AutoStationPattern = regexp.MustCompile(`^A[O0](?P<disc>[12])(?:\s+|$)`)

	// SeaLevelPressurePattern matches SLPppp and the SLPNO sentinel.
	SeaLevelPressurePattern = regexp.MustCompile(`^SLP(?P<value>\d{3}|NO)(?:\s+|$)`)

	// PeakWindPattern matches "PK WND dddff(f)/(hh)mm".
	PeakWindPattern = regexp.MustCompile(`^PK\s+WND\s+(?P<dir>\d{3})(?P<speed>\d{2,3})/(?P<hour>\d{2})?(?P<minute>\d{2})(?:\s+|$)`)

	// WindShiftPattern matches "WSHFT (hh)mm" with optional FROPA.
	WindShiftPattern = regexp.MustCompile(`^WSHFT\s+(?P<hour>\d{2})?(?P<minute>\d{2})(?:\s+(?P<fropa>FROPA))?(?:\s+|$)`)

	// VisibilityRemarkPattern covers variable visibility (VIS 1/2V2),
	// sector visibility (VIS NE 2), tower/surface visibility (TWR VIS 2)
	// and second-location visibility (VIS 2 RWY11). Distances are statute
	// miles, possibly mixed fractions.
	VisibilityRemarkPattern = regexp.MustCompile(`^(?:(?P<site>TWR|SFC)\s+)?VIS\s+(?:(?:(?P<minwhole>\d{1,2})\s+)?(?P<min>\d{1,2}(?:/\d{1,2})?)V(?:(?P<maxwhole>\d{1,2})\s+)?(?P<max>\d{1,2}(?:/\d{1,2})?)|(?P<secdir>[NSEW][EW]?)\s+(?:(?P<secwhole>\d{1,2})\s+)?(?P<secdist>\d{1,2}(?:/\d{1,2})?)|(?:(?P<whole>\d{1,2})\s+)?(?P<dist>\d{1,2}(?:/\d{1,2})?)(?:\s+(?P<loc>RWY\d{2}[LCR]?))?)(?:\s+|$)`)

	// VariableCeilingPattern matches "CIG lllVhhh" (hundreds of feet).
	// Must be registered before CeilingSecondSitePattern: the second-site
	// form only matches once the variable form has been tried and failed.
	VariableCeilingPattern = regexp.MustCompile(`^CIG\s+(?P<low>\d{3})V(?P<high>\d{3})(?:\s+|$)`)

	// CeilingSecondSitePattern matches "CIG hhh RWYnn".
	CeilingSecondSitePattern = regexp.MustCompile(`^CIG\s+(?P<height>\d{3})\s+(?P<loc>RWY\d{2}[LCR]?)(?:\s+|$)`)

	// ObscurationPattern matches a surface/aloft obscuration layer,
	// e.g. "FU BKN020".
	ObscurationPattern = regexp.MustCompile(`^(?P<phenom>FU|BR|FG|VA|DU|SA|HZ|PY)\s+(?P<cover>FEW|SCT|BKN|OVC)(?P<height>\d{3})(?:\s+|$)`)

	// TsCloudLocPattern matches thunderstorm/cloud location remarks,
	// e.g. "CB W MOV E" or "TS SE".
	TsCloudLocPattern = regexp.MustCompile(`^(?P<phenom>TS|CBMAM|CB|TCU|ACC|ACSL|CCSL|VIRGA)(?:\s+(?P<prox>OHD|VC|DSNT))?(?:\s+(?P<dir>ALQDS|[NSEW]{1,3}(?:-[NSEW]{1,3})?))?(?:\s+MOV\s+(?P<mov>[NSEW]{1,3}))?(?:\s+|$)`)

	// CloudOktaPattern matches one cloud-type-okta observation, e.g. CU3.
	// Longer type codes appear before their two-letter prefixes.
	CloudOktaPattern = regexp.MustCompile(`^(?P<type>ACSL|ACC|AC|AS|CBMAM|CB|CCSL|CC|CF|CI|CS|CU|NS|SC|SF|ST|TCU)(?P<okta>[0-8])(?:\s+|$)`)

	// LightningPattern matches LTG remarks. The grammar deliberately does
	// not accept every documented direction combination (no "N THRU E"):
	// it mirrors the narrower legacy grammar.
	LightningPattern = regexp.MustCompile(`^(?:(?P<freq>OCNL|FRQ|CONS)\s+)?LTG(?P<types>(?:IC|CC|CG|CA)*)(?:\s+(?P<prox>OHD|VC|DSNT))?(?:\s+(?P<dir>ALQDS|[NSEW]{1,3}))?(?:\s+|$)`)

	// PressureRapidPattern matches PRESRR / PRESFR.
	PressureRapidPattern = regexp.MustCompile(`^PRES(?P<tend>[RF])R(?:\s+|$)`)

	// PreciseTempPattern matches the hourly TsnTTT(snTTT) group in tenths
	// of °C. Sign digit 1 means negative.
	PreciseTempPattern = regexp.MustCompile(`^T(?P<tsign>[01])(?P<temp>\d{3})(?:(?P<dsign>[01])(?P<dew>\d{3}))?(?:\s+|$)`)

	// PrecipHourlyPattern matches Prrrr (hundredths of inches), with the
	// indeterminate-trace slash sentinel.
	PrecipHourlyPattern = regexp.MustCompile(`^P(?P<amount>\d{4}|/{3,5})(?:\s+|$)`)

	// Temp6HrPattern matches 1snTTT (6-hour max) and 2snTTT (6-hour min).
	Temp6HrPattern = regexp.MustCompile(`^(?P<which>[12])(?P<sign>[01])(?P<value>\d{3})(?:\s+|$)`)

	// Temp24HrPattern matches 4snTTTsnTTT: 24-hour max then min.
	Temp24HrPattern = regexp.MustCompile(`^4(?P<maxsign>[01])(?P<max>\d{3})(?P<minsign>[01])(?P<min>\d{3})(?:\s+|$)`)

	// Press3HrPattern matches 5appp: pressure tendency code + change.
	Press3HrPattern = regexp.MustCompile(`^5(?P<code>[0-8])(?P<change>\d{3})(?:\s+|$)`)

	// Precip3Hr24HrPattern matches 6rrrr (3/6-hour) and 7rrrr (24-hour)
	// precipitation amounts.
	Precip3Hr24HrPattern = regexp.MustCompile(`^(?P<period>[67])(?P<amount>\d{4}|/{4})(?:\s+|$)`)

	// PressQPattern matches QNH/QFE pressure remarks.
	PressQPattern = regexp.MustCompile(`^(?P<kind>QNH|QFE)(?P<value>\d{3,4})(?P<ins>INS)?(?:\s+|$)`)

	// MaintenancePattern matches the automated-maintenance indicators.
	// VISNO and CHINO may carry a location; $ flags maintenance required.
	MaintenancePattern = regexp.MustCompile(`^(?:(?P<ind>RVRNO|PWINO|PNO|FZRANO|TSNO|\$)|(?P<locind>VISNO|CHINO)(?:\s+(?P<loc>RWY\d{2}[LCR]?|[NSEW][EW]?))?)(?:\s+|$)`)

	// HailSizePattern matches "GR s" with whole or mixed-fraction inches.
	HailSizePattern = regexp.MustCompile(`^GR\s+(?:(?P<whole>\d{1,2})\s+)?(?P<size>\d{1,2}(?:/\d{1,2})?)(?:\s+|$)`)

	// BeginEndWeatherPattern matches one phenomenon-plus-timing atom of a
	// weather event chain such as FZRAB1159E1240SNB30. At least one B or
	// E marker is required so the pattern cannot consume a bare weather
	// code; the engine's repeat flag walks the chain atom by atom.
	BeginEndWeatherPattern = regexp.MustCompile(`^(?P<intensity>[+-])?(?P<desc>MI|PR|BC|DR|BL|SH|TS|FZ)?(?P<code>(?:DZ|RA|SN|SG|IC|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PY|PO|SQ|FC|SS|DS|NSW){1,3})?(?P<times>(?:[BE]\d{2,4})+)\s*`)
)

// TAF group patterns.
var (
	// GroupFmPattern matches FMDDHHMM. The legacy implementation carried
	// a doubled escape here that could never match; this is the working
	// single-escape form.
	GroupFmPattern = regexp.MustCompile(`^FM(?P<day>\d{2})(?P<hour>\d{2})(?P<minute>\d{2})(?:\s+|$)`)

	// GroupChangePattern matches TEMPO/BECMG/PROBnn group leaders with
	// their DDHH/DDHH period.
	GroupChangePattern = regexp.MustCompile(`^(?:PROB(?P<prob>30|40)(?:\s+(?P<probind>TEMPO|BECMG))?|(?P<ind>TEMPO|BECMG))\s+(?P<fromday>\d{2})(?P<fromhour>\d{2})/(?P<today>\d{2})(?P<tohour>\d{2})(?:\s+|$)`)

	// TempForecastPattern matches TX/TN temperature forecasts.
	TempForecastPattern = regexp.MustCompile(`^(?P<kind>TX|TN)(?P<sign>M)?(?P<value>\d{1,2})/(?P<day>\d{2})(?P<hour>\d{2})Z(?:\s+|$)`)
)

// CollapseWhitespace folds line breaks and whitespace runs into single
// spaces so the anchored patterns see one flat token stream.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDigits fixes the common O-for-0 OCR substitution in numeric
// groups.
func NormalizeDigits(s string) string {
	return strings.ReplaceAll(s, "O", "0")
}

// NormalizeCoverage fixes OCR aliases in sky coverage codes.
func NormalizeCoverage(cover string) string {
	switch cover {
	case "0VC":
		return "OVC"
	case "SCK":
		return "SKC"
	}
	return cover
}
