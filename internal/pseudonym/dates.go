package pseudonym

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// sentinelDates are never parsed or shifted
var sentinelDates = map[string]bool{
	"Present": true,
	"Heute":   true,
	"Current": true,
}

// dateFormat pairs a recognizer with a parser and a formatter for one layout
type dateFormat struct {
	name   string
	re     *regexp.Regexp
	parse  func(m []string) (time.Time, error)
	format func(t time.Time) string
}

// dateFormats are tried in order
var dateFormats = []dateFormat{
	{
		name: "YYYY-MM-DD",
		re:   regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),
		parse: func(m []string) (time.Time, error) {
			return time.Parse("2006-01-02", m[0])
		},
		format: func(t time.Time) string { return t.Format("2006-01-02") },
	},
	{
		name: "YYYY-MM",
		re:   regexp.MustCompile(`^(\d{4})-(\d{2})$`),
		parse: func(m []string) (time.Time, error) {
			return monthStart(m[1], m[2])
		},
		format: func(t time.Time) string { return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())) },
	},
	{
		name: "MM/YYYY",
		re:   regexp.MustCompile(`^(\d{2})/(\d{4})$`),
		parse: func(m []string) (time.Time, error) {
			return monthStart(m[2], m[1])
		},
		format: func(t time.Time) string { return fmt.Sprintf("%02d/%04d", int(t.Month()), t.Year()) },
	},
	{
		name: "YYYY",
		re:   regexp.MustCompile(`^(\d{4})$`),
		parse: func(m []string) (time.Time, error) {
			return monthStart(m[1], "01")
		},
		format: func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) },
	},
}

// ShiftDate moves a date string by shiftMonths months and writes it back in
// the layout it was given in. Sentinels, empty strings and unrecognized
// layouts are returned unchanged. Failures are logged, never returned.
func ShiftDate(dateStr string, shiftMonths int) string {
	return shiftDate(dateStr, shiftMonths, logrus.StandardLogger())
}

func shiftDate(dateStr string, shiftMonths int, log logrus.FieldLogger) string {
	if dateStr == "" || sentinelDates[dateStr] {
		return dateStr
	}

	for _, f := range dateFormats {
		m := f.re.FindStringSubmatch(dateStr)
		if m == nil {
			continue
		}

		t, err := f.parse(m)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"date":   dateStr,
				"format": f.name,
			}).Warn("failed to parse date, leaving it unshifted")
			return dateStr
		}
		// Day overflow normalizes forward (Jan 31 + 1 month = Mar 2/3).
		return f.format(t.AddDate(0, shiftMonths, 0))
	}

	return dateStr
}

// monthStart builds the first day of a month. Out-of-range months roll over
// into neighbouring years ("00/2020" is December 2019).
func monthStart(year, month string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q: %w", year, err)
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return time.Date(y, time.Month(mo), 1, 0, 0, 0, 0, time.UTC), nil
}
