package batch

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	ZeroCountdown = "0:00:00:00"
	day           = 24 * time.Hour
)

// ParseCountdown reads a legacy countdown string, either D:HH:MM:SS or
// HH:MM:SS.
func ParseCountdown(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")

	var fields []string
	switch len(parts) {
	case 4:
		fields = parts
	case 3:
		fields = append([]string{"0"}, parts...)
	default:
		return 0, fmt.Errorf("%w: %q has %d fields", ErrInvalidCountdown, s, len(parts))
	}

	units := []time.Duration{day, time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidCountdown, s, err)
		}
		d += time.Duration(n) * units[i]
	}
	return d, nil
}

// FormatRemaining renders the time left as D:HH:MM:SS, truncated to whole
// seconds. Nothing left renders as 0:00:00:00.
func FormatRemaining(remaining time.Duration) string {
	total := int64(remaining / time.Second)
	if total <= 0 {
		return ZeroCountdown
	}

	days := total / 86400
	rem := total % 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60

	return fmt.Sprintf("%d:%02d:%02d:%02d", days, hours, minutes, seconds)
}

// formatSetCountdown renders an admin-entered duration; seconds are always 00.
func formatSetCountdown(days, hours, minutes int) string {
	return fmt.Sprintf("%d:%02d:%02d:00", days, hours, minutes)
}

// CountdownParts splits a countdown into the days, hours and minutes used
// to pre-fill the admin form. Fields are read right to left, so HH:MM:SS
// has zero days; the seconds field is ignored.
func CountdownParts(countdown string) (days, hours, minutes int) {
	if countdown == "" {
		return 0, 0, 0
	}

	parts := strings.Split(countdown, ":")
	at := func(fromRight int) int {
		i := len(parts) - 1 - fromRight
		if i < 0 {
			return 0
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return 0
		}
		return n
	}

	return at(3), at(2), at(1)
}
