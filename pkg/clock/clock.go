package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	errs "github.com/matzehuels/weekgrid/pkg/errors"
)

const (
	// MinutesPerDay is the number of minutes between two midnights.
	MinutesPerDay = 24 * 60

	noon = 12 * 60
)

// timePattern matches "<h>:<mm> <AM|PM>" with a case-insensitive period.
var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)

// ToMinutes parses 12-hour clock text into minutes past midnight.
// 12:00 AM is 0 and 12:00 PM is 720. Hours must be 1-12 and minutes 00-59.
func ToMinutes(text string) (int, error) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, malformed(text)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours < 1 || hours > 12 || minutes > 59 {
		return 0, malformed(text)
	}

	total := (hours%12)*60 + minutes
	if strings.EqualFold(m[3], "PM") {
		total += noon
	}
	return total, nil
}

// ToText formats minutes past midnight as zero-padded 12-hour clock text,
// e.g. "08:05 AM". Values outside a single day wrap around midnight.
func ToText(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	hrs, mins := minutes/60, minutes%60

	period := "AM"
	if hrs >= 12 {
		period = "PM"
	}
	hrs %= 12
	if hrs == 0 {
		hrs = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hrs, mins, period)
}

// ParseRange parses "start - end" text, returning both ends in minutes.
// It does not check that end comes after start.
func ParseRange(text string) (start, end int, err error) {
	from, to, ok := strings.Cut(text, "-")
	if !ok {
		return 0, 0, malformed(text)
	}
	if start, err = ToMinutes(from); err != nil {
		return 0, 0, err
	}
	if end, err = ToMinutes(to); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// FormatRange is the inverse of ParseRange.
func FormatRange(start, end int) string {
	return ToText(start) + " - " + ToText(end)
}

func malformed(text string) *errs.Error {
	e := errs.New(errs.ErrCodeMalformedTime, "Invalid time format: %s", text)
	e.Text = text
	return e
}
