package attendance

import (
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ComputeHours returns the hours between two HH:MM[:SS] clock times, rounded
// to two decimals. Seconds are ignored. A clock-out earlier than the
// clock-in is treated as a shift crossing midnight. Unparseable input yields 0.
func ComputeHours(clockIn, clockOut string) float64 {
	if clockIn == NotAvailable || clockOut == NotAvailable {
		return 0
	}
	in, ok := minuteOfDay(clockIn)
	if !ok {
		return 0
	}
	out, ok := minuteOfDay(clockOut)
	if !ok {
		return 0
	}

	delta := out - in
	if delta < 0 {
		delta += minutesPerDay
	}
	hours := float64(delta/60) + float64(delta%60)/60
	return math.Round(hours*100) / 100
}

func minuteOfDay(t string) (int, bool) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// Classify maps worked hours to a Status.
func Classify(hours float64) Status {
	switch {
	case hours == 0:
		return StatusAbsent
	case hours > 0 && hours < 6:
		return StatusPartial
	case hours >= 6 && hours <= 9:
		return StatusPresent
	case hours > 9:
		return StatusOvertime
	default:
		return StatusUnknown
	}
}
