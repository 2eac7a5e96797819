// Copyright © 2026 Orrery contributors.

package state

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Runtime is the elapsed simulated time persisted with a Document. It
// marshals as an ISO-8601 duration ("PT1H2M3.5S") and unmarshals either
// that form or hh:mm:ss.fff, per §6.
type Runtime time.Duration

// MarshalJSON renders r as an ISO-8601 duration.
func (r Runtime) MarshalJSON() ([]byte, error) {
	d := time.Duration(r)
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	minutes := int(d / time.Minute)
	d -= time.Duration(minutes) * time.Minute
	seconds := d.Seconds()

	var b strings.Builder
	b.WriteString("\"PT")
	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dM", minutes)
	}
	fmt.Fprintf(&b, "%gS\"", seconds)
	return []byte(b.String()), nil
}

// UnmarshalJSON accepts either an ISO-8601 duration ("PT1H2M3.5S") or
// hh:mm:ss.fff.
func (r *Runtime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" {
		*r = 0
		return nil
	}
	if strings.HasPrefix(s, "P") {
		d, err := parseISO8601Duration(s)
		if err != nil {
			return NewCorruptPersistedState(err.Error())
		}
		*r = Runtime(d)
		return nil
	}
	d, err := parseClockDuration(s)
	if err != nil {
		return NewCorruptPersistedState(err.Error())
	}
	*r = Runtime(d)
	return nil
}

// parseISO8601Duration parses the restricted subset this format needs:
// "PT" followed by optional #H, #M, #.#S components.
func parseISO8601Duration(s string) (time.Duration, error) {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return 0, fmt.Errorf("not an ISO-8601 time duration: %q", s)
	}
	var total time.Duration
	for len(rest) > 0 {
		i := 0
		for i < len(rest) && (rest[i] == '.' || (rest[i] >= '0' && rest[i] <= '9')) {
			i++
		}
		if i == 0 {
			return 0, fmt.Errorf("malformed ISO-8601 duration: %q", s)
		}
		value, err := strconv.ParseFloat(rest[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("malformed ISO-8601 duration: %q", s)
		}
		if i >= len(rest) {
			return 0, fmt.Errorf("malformed ISO-8601 duration: missing unit in %q", s)
		}
		switch rest[i] {
		case 'H':
			total += time.Duration(value * float64(time.Hour))
		case 'M':
			total += time.Duration(value * float64(time.Minute))
		case 'S':
			total += time.Duration(value * float64(time.Second))
		default:
			return 0, fmt.Errorf("unknown ISO-8601 unit %q in %q", rest[i], s)
		}
		rest = rest[i+1:]
	}
	return total, nil
}

// parseClockDuration parses hh:mm:ss.fff.
func parseClockDuration(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed runtime duration: %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed runtime duration: %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed runtime duration: %q", s)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed runtime duration: %q", s)
	}
	total := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds*float64(time.Second))
	return total, nil
}
