// Package schedule derives bookable timeslots from a shop's operating hours.
// All arithmetic happens on minutes from midnight so the grid is stable no
// matter which timezone the caller renders in.
package schedule

import (
	"fmt"
	"time"

	"sabai/shared/constant"
)

const (
	DefaultSlotDuration     = 60
	DefaultTimeslotCapacity = 1
)

// MinuteOfDay parses an "HH:MM" wall clock into minutes from midnight.
// The two-digit form is required; time.Parse alone would accept "9:30".
func MinuteOfDay(clock string) (int, error) {
	if len(clock) != len(constant.ClockFormat) {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", clock)
	}

	t, err := time.Parse(constant.ClockFormat, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}

	return t.Hour()*constant.MinutesPerHour + t.Minute(), nil
}

// Clock renders minutes from midnight back to "HH:MM".
func Clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/constant.MinutesPerHour, minute%constant.MinutesPerHour)
}

// Slots generates the start times of every whole slot between open and
// close. A slot must fit entirely before closing time, so a trailing
// remainder shorter than the duration is dropped. Inverted or degenerate
// hours yield no slots.
func Slots(openTime, closeTime string, slotDuration int) ([]string, error) {
	open, err := MinuteOfDay(openTime)
	if err != nil {
		return nil, err
	}

	close, err := MinuteOfDay(closeTime)
	if err != nil {
		return nil, err
	}

	if slotDuration <= 0 {
		slotDuration = DefaultSlotDuration
	}

	slots := []string{}
	for minute := open; minute+slotDuration <= close; minute += slotDuration {
		slots = append(slots, Clock(minute))
	}

	return slots, nil
}

// Within reports whether a minute falls inside the half-open operating
// window [open, close).
func Within(minute, open, close int) bool {
	return minute >= open && minute < close
}

// Aligned reports whether a minute lands exactly on the slot grid anchored
// at opening time.
func Aligned(minute, open, slotDuration int) bool {
	if slotDuration <= 0 {
		return false
	}

	return (minute-open)%slotDuration == 0
}
