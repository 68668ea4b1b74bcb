package isodate_test

import (
	"testing"
	"time"

	"github.com/dalemusser/schoolboard/internal/app/system/isodate"
)

func TestValidate_Accepts(t *testing.T) {
	valid := []string{
		"2099-01-01T00:00:00",
		"2099-01-01T00:00:00Z",
		"2099-01-01T00:00:00+00:00",
		"2099-01-01T00:00:00-05:00",
		"2099-01-01T00:00:00.123456",
		"2099-01-01T00:00:00.123456Z",
		"2099-01-01T00:00",
		"2099-01-01T00:00Z",
		"2099-01-01T00:00+02:00",
		"2099-01-01 00:00:00",
		"2099-01-01 00:00:00.123456",
		"2099-01-01 00:00",
		"2099-01-01",
	}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			if err := isodate.Validate(s); err != nil {
				t.Errorf("Validate(%q) = %v, want nil", s, err)
			}
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	invalid := []string{
		"",
		"not-a-date",
		"01/01/2099",
		"2099-13-01T00:00:00",
		"2099-01-01T25:00:00",
		"Z",
	}
	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			if err := isodate.Validate(s); err == nil {
				t.Errorf("Validate(%q) = nil, want error", s)
			}
		})
	}
}

func TestNow_Format(t *testing.T) {
	now := isodate.Now()

	parsed, err := time.Parse(isodate.Layout, now)
	if err != nil {
		t.Fatalf("Now() = %q does not parse with Layout: %v", now, err)
	}
	if d := time.Since(parsed); d < -time.Minute || d > time.Minute {
		t.Errorf("Now() = %q is not close to the current time", now)
	}

	// What Now produces must itself be a valid input date.
	if err := isodate.Validate(now); err != nil {
		t.Errorf("Validate(Now()) = %v, want nil", err)
	}
}

func TestNow_LexicographicOrder(t *testing.T) {
	// The whole activation-window design rests on string order matching
	// time order for values in Layout.
	earlier := time.Date(2025, 3, 9, 23, 59, 59, 999999000, time.UTC).Format(isodate.Layout)
	later := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Format(isodate.Layout)
	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
}
