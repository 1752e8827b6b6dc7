// Package worldclock implements the shared in-world calendar: absolute
// day counts with 24-hour days and 60-minute hours, plus per-realm
// offset rules for converting world time into realm-local time.
package worldclock

import (
	"fmt"

	"github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

const (
	// MinutesPerHour is the length of an in-world hour
	MinutesPerHour = 60

	// MinutesPerDay is the length of an in-world day
	MinutesPerDay = 24 * MinutesPerHour
)

// Time is a point on the world clock. The zero value is day 0, 00:00.
type Time struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// New validates the components and returns the corresponding Time.
func New(day, hour, minute int) (Time, error) {
	if day < 0 {
		return Time{}, errors.Validationf("day must be non-negative, got %d", day)
	}
	if hour < 0 || hour > 23 {
		return Time{}, errors.Validationf("hour must be in 0..23, got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return Time{}, errors.Validationf("minute must be in 0..59, got %d", minute)
	}
	return Time{Day: day, Hour: hour, Minute: minute}, nil
}

// Validate checks the component ranges of an already-built Time.
// Snapshot restore uses it to vet decoded values.
func (t Time) Validate() error {
	_, err := New(t.Day, t.Hour, t.Minute)
	return err
}

// Minutes returns the total minutes since day 0, 00:00. All ordering
// and range membership is defined on this value.
func (t Time) Minutes() int {
	return t.Day*MinutesPerDay + t.Hour*MinutesPerHour + t.Minute
}

// PlusMinutes returns the time shifted by delta minutes, renormalized
// into day/hour/minute. A shift that lands before day 0, 00:00 is an
// error; callers must not clamp it.
func (t Time) PlusMinutes(delta int) (Time, error) {
	total := t.Minutes() + delta
	if total < 0 {
		return Time{}, errors.Validationf("time shift by %d minutes goes before day 0", delta)
	}

	day := total / MinutesPerDay
	rem := total % MinutesPerDay
	return Time{
		Day:    day,
		Hour:   rem / MinutesPerHour,
		Minute: rem % MinutesPerHour,
	}, nil
}

// Before reports whether t is strictly earlier than other.
func (t Time) Before(other Time) bool {
	return t.Minutes() < other.Minutes()
}

// String renders the time as "Day 3 14:05".
func (t Time) String() string {
	return fmt.Sprintf("Day %d %02d:%02d", t.Day, t.Hour, t.Minute)
}

// TimeRule describes how a realm derives its local clock from the
// world clock.
type TimeRule struct {
	// OffsetMinutes shifts world time into local time. May be negative.
	OffsetMinutes int `json:"offset_minutes"`

	// DayLengthMultiplier is stored and serialized but not applied by
	// ToLocal. Reserved for realms with non-standard day lengths.
	DayLengthMultiplier float64 `json:"day_length_multiplier"`
}

// DefaultTimeRule returns a rule with no offset and a standard day.
func DefaultTimeRule() TimeRule {
	return TimeRule{OffsetMinutes: 0, DayLengthMultiplier: 1.0}
}

// Validate rejects rules no realm could run on.
func (r TimeRule) Validate() error {
	if r.DayLengthMultiplier <= 0 {
		return errors.Validationf("day length multiplier must be positive, got %v", r.DayLengthMultiplier)
	}
	return nil
}

// ToLocal converts a world time into this rule's local time. An offset
// that pushes the result before day 0 surfaces as an error.
func (r TimeRule) ToLocal(t Time) (Time, error) {
	return t.PlusMinutes(r.OffsetMinutes)
}
