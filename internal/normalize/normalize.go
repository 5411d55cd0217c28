// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize prepares a sentence for pattern matching: case
// folding, punctuation stripping, and erasure of date/time/duration/size
// spans located by the injected finders, so those quantities cannot
// masquerade as the value being sought. Erasure overwrites with spaces
// and preserves character offsets.
package normalize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/extract-engine/internal/finder"
)

var (
	reNoiseChars   = regexp.MustCompile(`[%(){}\[\]]`)
	reAllDigits    = regexp.MustCompile(`^\d+$`)
	reDigitsDots   = regexp.MustCompile(`^[\d.]+$`)
	reOffsetPair   = regexp.MustCompile(`^\d+[-+]\d+$`)
	reAtPreceded   = regexp.MustCompile(`(@|\b(at|around))\s*(approximately|approx\.?)?\s*\d+$`)
	reReportNoise  = regexp.MustCompile(`[&(){}\[\]:~/@;]`)
	reRepeatSpace  = regexp.MustCompile(`\s+`)
	reBareComma    = regexp.MustCompile(`\D,\D`)
	reVitalsAbbrev = regexp.MustCompile(`\b(temperature|temp|t|hr|bp|pulse|p|rr?|o2sats?|o2 sats?|spo2|o2|fio2|wt|ht)`)
)

// Cleaner erases distracting expression spans using a fixed finder set,
// resolved once at construction.
type Cleaner struct {
	finders []finder.Finder
}

// NewCleaner builds a Cleaner over the given finders. Pass
// finder.Defaults() for the standard set.
func NewCleaner(fs []finder.Finder) *Cleaner {
	return &Cleaner{finders: fs}
}

// Common applies the cleaning shared by sentences and query terms:
// bracket and percent characters become spaces, and text is lowercased
// unless caseSensitive.
func Common(text string, caseSensitive bool) string {
	text = reNoiseChars.ReplaceAllString(text, " ")
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	return text
}

// Erase overwrites sentence[start:end) with spaces.
func Erase(sentence string, start, end int) string {
	if start < 0 || end > len(sentence) || start >= end {
		return sentence
	}
	return sentence[:start] + strings.Repeat(" ", end-start) + sentence[end:]
}

// CleanSentence prepares clinical text for value extraction. Offsets are
// preserved: every erasure substitutes an equal run of spaces.
func (c *Cleaner) CleanSentence(sentence string, caseSensitive bool) string {
	sentence = Common(sentence, caseSensitive)
	sentence = c.eraseDates(sentence, false)
	sentence = c.eraseSizes(sentence)
	sentence = c.eraseTimes(sentence)
	sentence = c.eraseDurations(sentence)
	return sentence
}

// CleanReport prepares scraped report text for quantity finding. The
// result is whitespace-collapsed, so offsets refer to the cleaned text.
func (c *Cleaner) CleanReport(sentence string) string {
	sentence = strings.ToLower(sentence)
	sentence = c.eraseDates(sentence, true)
	sentence = c.eraseReportTimes(sentence)

	sentence = strings.ReplaceAll(sentence, " w/ ", " with ")
	sentence = strings.ReplaceAll(sentence, "'", "")
	sentence = reReportNoise.ReplaceAllString(sentence, " ")

	// break commas that are not digit-grouping separators
	for {
		loc := reBareComma.FindStringIndex(sentence)
		if loc == nil {
			break
		}
		pos := loc[0] + 1
		sentence = sentence[:pos] + " " + sentence[pos+1:]
	}

	sentence = reRepeatSpace.ReplaceAllString(sentence, " ")
	return strings.TrimSpace(sentence)
}

// eraseDates removes date expressions. All-digit matches are kept: a
// bare "1500" could be a measurement, not a year. Month-day fragments
// ("6-24") are erased only in report mode, where clinical ranges do not
// occur.
func (c *Cleaner) eraseDates(sentence string, monthDay bool) string {
	f := finder.ByName(c.finders, "date")
	if f == nil {
		return sentence
	}
	for _, m := range f.Find(sentence) {
		if m.Units == "month_day" && !monthDay {
			continue
		}
		if reAllDigits.MatchString(m.Text) {
			continue
		}
		sentence = Erase(sentence, m.Start, m.End)
	}
	return sentence
}

// eraseSizes removes size measurements except cc volumes and inch
// lengths, which clinical text uses for quantities of interest.
func (c *Cleaner) eraseSizes(sentence string) string {
	f := finder.ByName(c.finders, "size")
	if f == nil {
		return sentence
	}
	for _, m := range f.Find(sentence) {
		if m.Units == "CUBIC_MILLIMETERS" && strings.Contains(m.Text, "cc") {
			continue
		}
		if m.Units == "MILLIMETERS" && strings.Contains(m.Text, "in") {
			continue
		}
		sentence = Erase(sentence, m.Start, m.End)
	}
	return sentence
}

// eraseTimes removes time expressions, exempting forms that are more
// likely measurements: digit pairs around +/- (ranges, UTC offsets),
// bare hh/hhmm/hhmmss integers unless preceded by "at", "@" or
// "around", and digits-and-dots runs (floating point values).
func (c *Cleaner) eraseTimes(sentence string) string {
	f := finder.ByName(c.finders, "time")
	if f == nil {
		return sentence
	}
	for _, m := range f.Find(sentence) {
		eraseIt := false
		switch {
		case reOffsetPair.MatchString(m.Text):
		case reAllDigits.MatchString(m.Text):
			if reAtPreceded.MatchString(sentence[:m.End]) {
				eraseIt = true
			}
		case reDigitsDots.MatchString(m.Text):
		default:
			eraseIt = true
		}
		if eraseIt {
			sentence = Erase(sentence, m.Start, m.End)
		}
	}
	return sentence
}

// eraseDurations removes duration expressions. A duration whose amount
// word is exactly "hr" is kept when the sentence mentions other vitals
// abbreviations: in that context "hr" is almost always a heart-rate
// label, not "hour".
func (c *Cleaner) eraseDurations(sentence string) string {
	f := finder.ByName(c.finders, "duration")
	if f == nil {
		return sentence
	}
	for _, m := range f.Find(sentence) {
		if m.Units == "hr" && c.countOtherVitals(sentence) > 0 {
			continue
		}
		sentence = Erase(sentence, m.Start, m.End)
	}
	return sentence
}

// eraseReportTimes removes durations and zone-qualified clock times from
// report text.
func (c *Cleaner) eraseReportTimes(sentence string) string {
	if f := finder.ByName(c.finders, "duration"); f != nil {
		for _, m := range f.Find(sentence) {
			sentence = Erase(sentence, m.Start, m.End)
		}
	}
	if f := finder.ByName(c.finders, "time"); f != nil {
		for _, m := range f.Find(sentence) {
			if m.Units == "zoned" {
				sentence = Erase(sentence, m.Start, m.End)
			}
		}
	}
	return sentence
}

// countOtherVitals counts vitals abbreviations other than "hr".
func (c *Cleaner) countOtherVitals(sentence string) int {
	count := 0
	for _, m := range reVitalsAbbrev.FindAllString(sentence, -1) {
		if m == "hr" {
			continue
		}
		count++
	}
	return count
}
