package dto

import (
	"time"

	"github.com/hebcal/hebcal-go/hdate"
)

// HebrewDate renders a stored Gregorian day as a Hebrew calendar date in
// Hebrew numerals. Partial or impossible dates render as nil.
func HebrewDate(year, month, day *int) *string {
	if year == nil || month == nil || day == nil || *year <= 0 {
		return nil
	}

	t := time.Date(*year, time.Month(*month), *day, 12, 0, 0, 0, time.UTC)
	if t.Year() != *year || int(t.Month()) != *month || t.Day() != *day {
		return nil
	}

	rendered := hdate.FromGregorian(t.Year(), t.Month(), t.Day()).Gematriya()
	return &rendered
}
