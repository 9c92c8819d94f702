// Package session keeps the small piece of per-user state the comparison
// page needs across requests: the selected time window.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Window is the comparison time window in days.
type Window int

// The only reachable window values.
const (
	Window3M  Window = 90
	Window6M  Window = 180
	Window12M Window = 365

	DefaultWindow = Window6M
)

// ErrInvalidWindow is returned for any value outside {90, 180, 365}.
var ErrInvalidWindow = errors.New("session: invalid window")

// Windows lists the windows in button order.
var Windows = []Window{Window3M, Window6M, Window12M}

// Days returns the window length in days.
func (w Window) Days() int { return int(w) }

// Valid reports whether w is one of the defined windows.
func (w Window) Valid() bool {
	switch w {
	case Window3M, Window6M, Window12M:
		return true
	}
	return false
}

// Label returns the button text, e.g. "6 kk".
func (w Window) Label() string {
	switch w {
	case Window3M:
		return "3 kk"
	case Window6M:
		return "6 kk"
	case Window12M:
		return "12 kk"
	}
	return strconv.Itoa(int(w)) + " pv"
}

// Key returns the short form accepted by ParseWindow, e.g. "6m".
func (w Window) Key() string {
	switch w {
	case Window3M:
		return "3m"
	case Window6M:
		return "6m"
	case Window12M:
		return "12m"
	}
	return strconv.Itoa(int(w))
}

func (w Window) String() string { return w.Label() }

// ParseWindow accepts a day count ("90", "180", "365") or a month key
// ("3m", "6m", "12m").
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "3m":
		return Window3M, nil
	case "6m":
		return Window6M, nil
	case "12m":
		return Window12M, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	w := Window(n)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWindow, n)
	}
	return w, nil
}
