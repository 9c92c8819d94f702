package utils

import (
	"testing"
	"time"
)

func TestNowHelsinki(t *testing.T) {
	now := NowHelsinki()
	if now.Location().String() != "Europe/Helsinki" && now.Location().String() != "EET" {
		t.Errorf("NowHelsinki() location = %s, want Europe/Helsinki or EET", now.Location().String())
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 10, 19, 15, 42, 7, 99, Helsinki)
	got := StartOfDay(in)
	want := time.Date(2026, 10, 19, 0, 0, 0, 0, Helsinki)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

func TestWindowEndingAt(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		days      int
		wantStart string
	}{
		{90, "2026-07-21"},
		{180, "2026-04-22"},
		{365, "2025-10-19"},
	}
	for _, tt := range tests {
		w := WindowEndingAt(now, tt.days)
		if FormatDate(w.End) != "2026-10-19" {
			t.Errorf("days=%d: End = %s, want 2026-10-19", tt.days, FormatDate(w.End))
		}
		if FormatDate(w.Start) != tt.wantStart {
			t.Errorf("days=%d: Start = %s, want %s", tt.days, FormatDate(w.Start), tt.wantStart)
		}
		if w.Days() != tt.days {
			t.Errorf("days=%d: Days() = %d", tt.days, w.Days())
		}
	}
}

func TestDateWindowString(t *testing.T) {
	w := DateWindow{
		Start: time.Date(2026, 4, 22, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
	}
	if got := w.String(); got != "2026-04-22 – 2026-10-19" {
		t.Errorf("String() = %q", got)
	}
}

func TestFormatMonthYear(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "Oct 26"},
		{time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 25"},
	}
	for _, tt := range tests {
		if got := FormatMonthYear(tt.t); got != tt.want {
			t.Errorf("FormatMonthYear(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
