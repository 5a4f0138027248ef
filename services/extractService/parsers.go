package extractService

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts seen across sportsbook exports, tried before the custom slip format.
var standardDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"January 2, 2006",
	"2-Jan-2006",
	"2.1.2006",
}

// Matches the slip timestamp format "9 Feb 2025 @ 4:08pm".
var slipDateRe = regexp.MustCompile(`(?i)^(\d{1,2}) ([A-Za-z]{3}) (\d{4}) @ (\d{1,2}):(\d{2})(am|pm)$`)

var monthsByAbbr = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseDate parses a cell value against the known export date formats and
// returns nil when none match.
func ParseDate(text string) *time.Time {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	for _, layout := range standardDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	m := slipDateRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	day, _ := strconv.Atoi(m[1])
	month, ok := monthsByAbbr[strings.ToLower(m[2])]
	if !ok {
		return nil
	}
	year, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	if day < 1 || day > 31 || hour < 1 || hour > 12 || minute > 59 {
		return nil
	}

	if strings.EqualFold(m[6], "pm") && hour != 12 {
		hour += 12
	}
	if strings.EqualFold(m[6], "am") && hour == 12 {
		hour = 0
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, time.Local)
	return &t
}

// ParseAmount parses a currency-formatted cell ("$1,234.56") as a float and
// returns nil when the cell is empty or not a finite number.
func ParseAmount(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// IsValidDate reports whether t is a usable date value.
func IsValidDate(t *time.Time) bool {
	return t != nil && !t.IsZero()
}
