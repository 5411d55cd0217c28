// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import "regexp"

// DateFinder locates calendar date expressions. Full dates carry units
// "date"; bare month-day fragments such as "6-24" carry "month_day" so
// callers can erase them selectively (report text treats them as dates,
// clinical text does not).
type DateFinder struct{}

var (
	// "april 21", "April 21st, 2020", "january 3 2021"
	reMonthName = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec)\.?\s+\d{1,2}(st|nd|rd|th)?(,?\s*\d{4})?\b`)

	// 2020-04-21
	reISODate = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	// 4/21/2020, 04/21/20
	reSlashedDate = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)

	// month-day fragments: 6-24, 10/21
	reMonthDay = regexp.MustCompile(`(0?[1-9]|1[0-2])[-/]([0-2]?[0-9]|3[01])`)
)

func (f *DateFinder) Name() string { return "date" }

// Find returns full-date matches followed by month-day fragments that do
// not fall inside a full date. A fragment preceded or followed by
// another digit is a slice of a larger number, not a date, and is
// skipped.
func (f *DateFinder) Find(sentence string) []Match {
	var out []Match
	for _, re := range []*regexp.Regexp{reMonthName, reISODate, reSlashedDate} {
		for _, loc := range re.FindAllStringIndex(sentence, -1) {
			out = append(out, Match{
				Start: loc[0],
				End:   loc[1],
				Text:  sentence[loc[0]:loc[1]],
				Units: "date",
			})
		}
	}

	for _, loc := range reMonthDay.FindAllStringIndex(sentence, -1) {
		if digitAdjacent(sentence, loc[0], loc[1]) {
			continue
		}
		out = append(out, Match{
			Start: loc[0],
			End:   loc[1],
			Text:  sentence[loc[0]:loc[1]],
			Units: "month_day",
		})
	}

	return dedupe(sorted(out))
}

// digitAdjacent reports whether the span borders a digit on either side.
func digitAdjacent(s string, start, end int) bool {
	if start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		return true
	}
	if end < len(s) && s[end] >= '0' && s[end] <= '9' {
		return true
	}
	return false
}
