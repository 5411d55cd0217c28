// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import "regexp"

// TimeFinder locates clock-time expressions. Matches carry one of three
// unit tags so erase rules can distinguish unambiguous times from digit
// runs that might be measurements:
//
//	"clock"  hh:mm forms and am/pm forms
//	"zoned"  zone-qualified times (10:30 pm est)
//	"hhmm"   bare 3-4 digit military times (1500, 830)
//	"offset" digit+-digit pairs (10+30), confusable with ranges
type TimeFinder struct{}

var (
	// 10:30, 10:30:15, 10:30 pm, 22-15 est
	reClock = regexp.MustCompile(`(?i)\b([01]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?(\s?[ap]\.?m\.?)?\b`)

	// 11 pm, 7a.m.
	reAmPm = regexp.MustCompile(`(?i)\b([01]?[0-9]|2[0-3])\s?[ap]\.?m\.?`)

	// zone-qualified: 10-30 pm est, 22 15 cdt
	reZoned = regexp.MustCompile(`(?i)\b(2[0-3]|1[0-9]|0[0-9])[-:\s][0-5][0-9]\s?[ap]\.?m\.?\s?(ak|ha|e|c|m|p|h)[sd]t\b`)

	// bare military times: 830, 1500, 235959
	reMilitary = regexp.MustCompile(`\b([01]?[0-9]|2[0-3])[0-5][0-9]([0-5][0-9])?\b`)

	// 10+30, 8-45: could be a UTC offset or a numeric range
	reOffsetPair = regexp.MustCompile(`\b\d{1,4}[+-]\d{1,4}\b`)
)

func (f *TimeFinder) Name() string { return "time" }

func (f *TimeFinder) Find(sentence string) []Match {
	var out []Match
	add := func(re *regexp.Regexp, units string) {
		for _, loc := range re.FindAllStringIndex(sentence, -1) {
			if digitAdjacent(sentence, loc[0], loc[1]) {
				continue
			}
			out = append(out, Match{
				Start: loc[0],
				End:   loc[1],
				Text:  sentence[loc[0]:loc[1]],
				Units: units,
			})
		}
	}

	add(reZoned, "zoned")
	add(reClock, "clock")
	add(reAmPm, "clock")
	add(reMilitary, "hhmm")
	add(reOffsetPair, "offset")

	return dedupe(sorted(out))
}
