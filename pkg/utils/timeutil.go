package utils

import (
	"time"
)

// Helsinki is the Finnish time zone used for dashboard dates.
var Helsinki *time.Location

func init() {
	var err error
	Helsinki, err = time.LoadLocation("Europe/Helsinki")
	if err != nil {
		// Fallback: fixed EET if tz database is not available
		Helsinki = time.FixedZone("EET", 2*60*60)
	}
}

// NowHelsinki returns the current time in Helsinki.
func NowHelsinki() time.Time {
	return time.Now().In(Helsinki)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateWindow is a [Start, End] pair of calendar dates.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WindowEndingAt returns the window of the given length ending on the
// calendar date of now: End = today, Start = today - days.
func WindowEndingAt(now time.Time, days int) DateWindow {
	end := StartOfDay(now)
	return DateWindow{Start: end.AddDate(0, 0, -days), End: end}
}

// Days returns the window length in whole days.
func (w DateWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24 + 0.5)
}

// String formats the window as "YYYY-MM-DD – YYYY-MM-DD".
func (w DateWindow) String() string {
	return FormatDate(w.Start) + " – " + FormatDate(w.End)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMonthYear formats an axis tick as a month abbreviation and a
// two-digit year, e.g. "Oct 26".
func FormatMonthYear(t time.Time) string {
	return t.Format("Jan 06")
}
