package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the dd/mm/yyyy layout typed into the Receitanet date fields.
const DateLayout = "02/01/2006"

// ErrInvalidDate is returned for dates in none of the accepted formats.
var ErrInvalidDate = errors.New("invalid date")

var dateFormats = []struct {
	pattern *regexp.Regexp
	layout  string
}{
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "02/01/2006"},
	{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "02-01-2006"},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), "2006/01/02"},
}

// NormalizeDate converts dd/mm/yyyy, dd-mm-yyyy, yyyy-mm-dd or yyyy/mm/dd
// into dd/mm/yyyy.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// ParseDate parses any of the formats accepted by NormalizeDate.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range dateFormats {
		if !f.pattern.MatchString(s) {
			continue
		}
		t, err := time.Parse(f.layout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

// StartNotAfterEnd reports whether start <= end. Both must be dd/mm/yyyy.
func StartNotAfterEnd(start, end string) (bool, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return false, fmt.Errorf("%w start date %q", ErrInvalidDate, start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return false, fmt.Errorf("%w end date %q", ErrInvalidDate, end)
	}
	return !s.After(e), nil
}

// PreviousMonthRange returns the first and last day of the month before now.
func PreviousMonthRange(now time.Time) (string, string) {
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	first := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.Format(DateLayout), last.Format(DateLayout)
}

// PreviousYearRange returns 01/01 and 31/12 of the year before now.
func PreviousYearRange(now time.Time) (string, string) {
	year := now.Year() - 1
	return fmt.Sprintf("01/01/%d", year), fmt.Sprintf("31/12/%d", year)
}
