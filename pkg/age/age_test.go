package age

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDisplayAtYears(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want string
	}{
		{"thirty years", date(1990, time.January, 1), date(2020, time.January, 1), "30yrs"},
		{"one year over a leap year", date(2015, time.June, 15), date(2016, time.June, 15), "1yrs"},
		{"ten years", date(2016, time.September, 1), date(2026, time.September, 1), "10yrs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayAt(tt.dob, tt.now))
		})
	}
}

func TestDisplayAtMonths(t *testing.T) {
	// 45 elapsed days read against the epoch land in February 1970.
	assert.Equal(t, "1mths", DisplayAt(date(2024, time.February, 4), date(2024, time.March, 20)))
}

func TestDisplayAtDays(t *testing.T) {
	assert.Equal(t, "5days", DisplayAt(date(2024, time.March, 15), date(2024, time.March, 20)))
}

func TestDisplayAtSameDayBirth(t *testing.T) {
	// Observed behavior: day-of-month minus one makes a newborn "0days".
	now := date(2024, time.March, 20)
	assert.Equal(t, "0days", DisplayAt(now, now))
}

func TestDisplayUsesCurrentTime(t *testing.T) {
	dob := time.Now().UTC().AddDate(-25, 0, -3)
	assert.Equal(t, "25yrs", Display(dob))
}
