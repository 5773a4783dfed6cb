package attendance

import (
	"testing"
	"time"
)

func punchAt(hh, mm int) time.Time {
	return time.Date(2026, time.March, 10, hh, mm, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name       string
		punchIn    time.Time
		shiftStart string
		threshold  int
		want       Status
	}{
		{"on time", punchAt(9, 0), "09:00", 15, StatusPresent},
		{"early", punchAt(7, 30), "09:00", 15, StatusPresent},
		{"within threshold", punchAt(9, 15), "09:00", 15, StatusPresent},
		{"one minute over", punchAt(9, 16), "09:00", 15, StatusLate},
		{"well over", punchAt(11, 0), "09:00", 15, StatusLate},
		{"zero threshold exact", punchAt(9, 0), "09:00", 0, StatusPresent},
		{"zero threshold one minute", punchAt(9, 1), "09:00", 0, StatusLate},
		{"half hour shift start", punchAt(8, 45), "08:30", 10, StatusLate},
		{"unparseable shift start", punchAt(23, 59), "garbage", 15, StatusPresent},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(c.punchIn, c.shiftStart, c.threshold)
			if got != c.want {
				t.Errorf("Classify(%s, %q, %d) = %s, want %s",
					c.punchIn.Format("15:04"), c.shiftStart, c.threshold, got, c.want)
			}
		})
	}
}

func TestWorkedMinutes(t *testing.T) {
	in := punchAt(9, 0)

	if got := WorkedMinutes(in, in.Add(8*time.Hour)); got != 480 {
		t.Errorf("WorkedMinutes full day = %d, want 480", got)
	}
	if got := WorkedMinutes(in, in.Add(90*time.Second)); got != 1 {
		t.Errorf("WorkedMinutes truncates seconds = %d, want 1", got)
	}
	if got := WorkedMinutes(in, in.Add(-time.Hour)); got != 0 {
		t.Errorf("WorkedMinutes negative span = %d, want 0", got)
	}
}
