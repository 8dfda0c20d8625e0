// Package timewindow decides whether a scheduled instant has newly come
// due within the current sweep invocation's window.
package timewindow

import "time"

// DefaultTolerance is the reference window width. It must be strictly
// larger than the sweep cadence (15 minutes) so no qualifying instant is
// ever skipped between runs; idempotency flags make overlapping windows
// converge to firing once.
const DefaultTolerance = 16 * time.Minute

// Due reports whether target minus offset falls inside [now - tolerance,
// now], inclusive at both ends. Pure function; all idempotency is
// enforced by the caller via flags, never here.
func Due(now, target time.Time, offset, tolerance time.Duration) bool {
	at := target.Add(-offset)
	return !at.Before(now.Add(-tolerance)) && !at.After(now)
}
