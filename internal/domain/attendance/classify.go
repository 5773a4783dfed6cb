package attendance

import (
	"fmt"
	"time"
)

// Classify decides present vs late for a punch-in against the
// configured shift start ("HH:MM", 24-hour) and late threshold.
// The comparison is wall-clock minutes on the punch-in's own calendar
// day; punching in earlier than shift start is simply present.
// Overnight shifts are not supported.
func Classify(punchIn time.Time, shiftStart string, lateThresholdMinutes int) Status {
	var hh, mm int
	if _, err := fmt.Sscanf(shiftStart, "%d:%d", &hh, &mm); err != nil {
		return StatusPresent
	}

	shiftMinutes := hh*60 + mm
	punchMinutes := punchIn.Hour()*60 + punchIn.Minute()

	if punchMinutes-shiftMinutes > lateThresholdMinutes {
		return StatusLate
	}
	return StatusPresent
}

// WorkedMinutes returns the whole minutes between punch-in and
// punch-out, never negative.
func WorkedMinutes(punchIn, punchOut time.Time) int {
	minutes := int(punchOut.Sub(punchIn).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
