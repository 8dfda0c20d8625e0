package timewindow_test

import (
	"testing"
	"time"

	"recovery_notification_engine/internal/timewindow"
)

func TestDue(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tolerance := 16 * time.Minute

	tests := []struct {
		name   string
		target time.Time
		offset time.Duration
		want   bool
	}{
		{
			name:   "exactly at now",
			target: now.Add(time.Hour),
			offset: time.Hour,
			want:   true,
		},
		{
			name:   "exactly at window start",
			target: now.Add(time.Hour - tolerance),
			offset: time.Hour,
			want:   true,
		},
		{
			name:   "inside window",
			target: now.Add(time.Hour - 8*time.Minute),
			offset: time.Hour,
			want:   true,
		},
		{
			name:   "one second before window start",
			target: now.Add(time.Hour - tolerance - time.Second),
			offset: time.Hour,
			want:   false,
		},
		{
			name:   "one second after now",
			target: now.Add(time.Hour + time.Second),
			offset: time.Hour,
			want:   false,
		},
		{
			name:   "24h offset due",
			target: now.Add(24*time.Hour - 5*time.Minute),
			offset: 24 * time.Hour,
			want:   true,
		},
		{
			name:   "far future",
			target: now.Add(48 * time.Hour),
			offset: 24 * time.Hour,
			want:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := timewindow.Due(now, tc.target, tc.offset, tolerance)
			if got != tc.want {
				t.Errorf("Due(now, %v, %v, %v) = %v, want %v", tc.target, tc.offset, tolerance, got, tc.want)
			}
		})
	}
}

func TestDueZeroTolerance(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	if !timewindow.Due(now, now, 0, 0) {
		t.Error("instant exactly at now with zero tolerance should be due")
	}
	if timewindow.Due(now, now.Add(-time.Second), 0, 0) {
		t.Error("instant in the past with zero tolerance should not be due")
	}
}
