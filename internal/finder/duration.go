// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"regexp"
	"strings"
)

// DurationFinder locates time-duration expressions: "2 hrs after",
// "q. 6-8 hrs", "for the previous 3-4 weeks", "10 minutes". The units
// tag carries the raw lowercased duration word; callers use it to apply
// the heart-rate disambiguation for a bare "hr".
type DurationFinder struct{}

const (
	strDurStart = `(for|over|last|lasting|lasted|within|q\.?|each|every|once)`
	strDurAmt   = `(hours?|hrs|hr\.?|minutes?|mins|min\.?|seconds?|secs|sec\.?|days?|weeks?|wks|wk\.?|months?|mos|mo\.|years?|yrs\.?|yr\.?)`
	strDurWords = `([-a-zA-Z.]+\s+){0,8}?`
	strDurNum   = `(\d{1,3}(,\d{3})+|\d+(\.\d+)?|\.\d+)`
)

var (
	// q. 6-8 hrs, for 3-6 months
	reDurRange = regexp.MustCompile(`\b` + strDurStart + `\s*` + strDurWords +
		strDurNum + `(k|K|s|'s)?\s*(-|to(\s+the)?)\s*` + strDurNum + `(k|K|s|'s)?\s*` +
		`(?P<amt>` + strDurAmt + `)`)

	// 2 hrs after, 10 minutes
	reDurPlain = regexp.MustCompile(strDurNum + `\s*(?P<amt>` + strDurAmt + `)`)

	// for the previous 3 weeks
	reDurStarted = regexp.MustCompile(`\b` + strDurStart + `\s*` + strDurWords +
		strDurNum + `\s*(?P<amt>` + strDurAmt + `)`)
)

func (f *DurationFinder) Name() string { return "duration" }

func (f *DurationFinder) Find(sentence string) []Match {
	var out []Match
	for _, re := range []*regexp.Regexp{reDurRange, reDurStarted, reDurPlain} {
		amtIdx := re.SubexpIndex("amt")
		for _, loc := range re.FindAllStringSubmatchIndex(sentence, -1) {
			start, end := loc[0], loc[1]
			if digitAdjacent(sentence, start, end) {
				continue
			}
			amt := ""
			if amtIdx >= 0 && loc[2*amtIdx] >= 0 {
				amt = sentence[loc[2*amtIdx]:loc[2*amtIdx+1]]
			}
			out = append(out, Match{
				Start: start,
				End:   end,
				Text:  sentence[start:end],
				Units: strings.ToLower(strings.TrimSpace(amt)),
			})
		}
	}
	return dedupe(sorted(out))
}
