// Package clock converts between 12-hour clock text and minutes past midnight.
//
// # Overview
//
// Timetable documents write times the way people do ("8:00 AM", "12:45 pm").
// Everything downstream works on integer minutes past midnight, so this package
// is the single place where that conversion happens:
//
//	m, err := clock.ToMinutes("8:15 AM") // 495
//	s := clock.ToText(495)               // "08:15 AM"
//
// [ToText] always zero-pads and [ToMinutes] accepts 1 or 2 digit hours, so
// ToMinutes(ToText(m)) == m for every minute of the day.
//
// # Ranges
//
// Document entries carry a single "start - end" string. [ParseRange] splits and
// converts it:
//
//	start, end, err := clock.ParseRange("10:00 AM - 10:25 AM")
//
// # Weekdays
//
// [Weekday] enumerates the five school days in canonical display order. Grids
// always lay out columns in [Weekdays] order regardless of document key order.
//
// # Errors
//
// Unparsable text yields an *errors.Error with code MALFORMED_TIME whose Text is
// the raw input, so callers can print "Invalid time format: 25:99 XM".
package clock
