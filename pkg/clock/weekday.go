package clock

import (
	"fmt"
	"strings"
)

// Weekday identifies one of the five timetable day columns.
type Weekday int

// Weekdays in display order.
const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// NumWeekdays is the number of day columns in a grid.
const NumWeekdays = 5

var weekdayNames = [NumWeekdays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Weekdays returns all days in canonical display order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// String returns the English day name.
func (d Weekday) String() string {
	if d < 0 || int(d) >= NumWeekdays {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday matches a day name case-insensitively.
// Weekend days and anything else report false.
func ParseWeekday(name string) (Weekday, bool) {
	for i, n := range weekdayNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Weekday(i), true
		}
	}
	return 0, false
}
