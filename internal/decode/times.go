package decode

import (
	"time"

	"noakweather/internal/wx"
)

// ObservationTime resolves a DDHHMM group against the reference issue
// time. The year and month come from the reference; when the reported
// day is ahead of the reference day the observation belongs to the
// previous month.
func ObservationTime(ref time.Time, day, hour, minute int) time.Time {
	month := ref.Month()
	if day > ref.Day() {
		month--
	}
	return time.Date(ref.Year(), month, day, hour, minute, 0, 0, time.UTC)
}

// ForecastTime resolves a TAF DDHH group against the issue time. A day
// before the issue day rolls into the next month; hour 24 normalizes to
// hour 0 of the following day, propagating month/year rollovers.
func ForecastTime(issue time.Time, day, hour int) time.Time {
	carry := 0
	if hour == 24 {
		hour, carry = 0, 1
	}
	t := time.Date(issue.Year(), issue.Month(), day, hour, 0, 0, 0, time.UTC)
	if day < issue.Day() {
		t = t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, carry)
}

// ChangeTime resolves an FM DDHHMM group so the resulting instant lies
// within the validity window.
func ChangeTime(validFrom time.Time, day, hour, minute int) time.Time {
	carry := 0
	if hour == 24 {
		hour, carry = 0, 1
	}
	t := time.Date(validFrom.Year(), validFrom.Month(), day, hour, minute, 0, 0, time.UTC)
	t = t.AddDate(0, 0, carry)
	if t.Before(validFrom) {
		t = t.AddDate(0, 1, 0)
	}
	return t
}

// clock builds a ClockTime from an optional hour group and a minute.
func clock(hourGroup string, minute int) (wx.ClockTime, error) {
	ct := wx.ClockTime{Minute: minute}
	if hourGroup != "" {
		h, err := atoi(hourGroup)
		if err != nil {
			return ct, err
		}
		ct.Hour = intp(h)
	}
	return ct, nil
}
