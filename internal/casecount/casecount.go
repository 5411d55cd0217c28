// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package casecount finds and extracts the number of reported cases,
// hospitalizations, and deaths from text scraped from the Internet. A
// fixed pattern library generates candidates over the cleaned sentence,
// overlapping candidates resolve keep-shortest to avoid capturing junk,
// and each surviving capture decodes into a count.
package casecount

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/extract-engine/internal/finder"
	"github.com/pdiddy/extract-engine/internal/normalize"
	"github.com/pdiddy/extract-engine/internal/numeric"
	"github.com/pdiddy/extract-engine/internal/overlap"
	"github.com/pdiddy/extract-engine/pkg/types"
)

var (
	reWho       = regexp.MustCompile(`(?i)` + strWho)
	reTestWords = regexp.MustCompile(`test(ed)?`)
)

// candidate is one pattern match carrying its submatch indices for
// later capture decoding.
type candidate struct {
	start int
	end   int
	text  string
	pat   casePattern
	loc   []int
}

// Finder locates report counts in sentences.
type Finder struct {
	cleaner *normalize.Cleaner
}

// NewFinder builds a Finder using the given expression finders for
// report cleanup. Pass finder.Defaults() for the standard set.
func NewFinder(fs []finder.Finder) *Finder {
	return &Finder{cleaner: normalize.NewCleaner(fs)}
}

// Run extracts all case, hospitalization, and death counts from one
// sentence. Offsets in the returned reports index the cleaned sentence,
// which each report carries.
func (f *Finder) Run(sentence string) []types.Report {
	cleaned := f.cleaner.CleanReport(sentence)

	caseCands := matchPatterns(cleaned, casePatterns)

	// erase case matches so the death and hospitalization patterns
	// cannot re-capture the same numbers
	remaining := cleaned
	for _, c := range caseCands {
		remaining = normalize.Erase(remaining, c.start, c.end)
	}
	hospCands := matchPatterns(remaining, hospPatterns)
	deathCands := matchPatterns(remaining, deathPatterns)

	caseCols := decodeAll(cleaned, caseCands)
	hospCols := decodeAll(remaining, hospCands)
	deathCols := decodeAll(remaining, deathCands)

	count := len(caseCols)
	if len(hospCols) > count {
		count = len(hospCols)
	}
	if len(deathCols) > count {
		count = len(deathCols)
	}

	var reports []types.Report
	for i := 0; i < count; i++ {
		r := types.Report{Sentence: cleaned}
		if i < len(caseCols) {
			c := caseCols[i]
			r.CaseStart, r.CaseEnd = intPtr(c.start), intPtr(c.end)
			r.CaseText, r.CaseValue = c.text, types.Float(c.value)
		}
		if i < len(hospCols) {
			c := hospCols[i]
			r.HospStart, r.HospEnd = intPtr(c.start), intPtr(c.end)
			r.HospText, r.HospValue = c.text, types.Float(c.value)
		}
		if i < len(deathCols) {
			c := deathCols[i]
			r.DeathStart, r.DeathEnd = intPtr(c.start), intPtr(c.end)
			r.DeathText, r.DeathValue = c.text, types.Float(c.value)
		}
		reports = append(reports, r)
	}
	return reports
}

// matchPatterns runs a pattern list over the sentence, applies the
// per-pattern overrides, and resolves overlapping candidates
// keep-shortest.
func matchPatterns(sentence string, pats []casePattern) []candidate {
	var cands []candidate
	for _, pat := range pats {
		for _, loc := range pat.re.FindAllStringSubmatchIndex(sentence, -1) {
			c, ok := buildCandidate(sentence, pat, loc)
			if !ok {
				continue
			}
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return nil
	}

	// keep the shortest of any overlapping matches, to minimize the
	// chance of capturing junk
	generic := make([]overlap.Candidate, len(cands))
	for i, c := range cands {
		generic[i] = overlap.Candidate{
			Start: c.start, End: c.end, Text: c.text, Rule: c.pat.name, Index: i,
		}
	}
	kept := overlap.Resolve(generic, overlap.KeepShortest)

	out := make([]candidate, 0, len(kept))
	for _, g := range kept {
		out = append(out, cands[g.Index])
	}
	return out
}

// buildCandidate validates one raw match: the numeric-capture context
// checks that the pattern syntax cannot express, plus the per-pattern
// overrides.
func buildCandidate(sentence string, pat casePattern, loc []int) (candidate, bool) {
	if !numContextOK(sentence, pat.re, loc) {
		return candidate{}, false
	}

	switch pat.name {
	case "case0", "case1":
		// must refer to groups of people: "residents tested positive",
		// not "samples tested positive"
		if trigStart, ok := groupStart(pat.re, loc, "trig"); ok {
			prefix := sentence[:trigStart]
			if pat.name == "case0" && strings.HasSuffix(prefix, "not tested ") {
				return candidate{}, false
			}
			if pat.name == "case1" && strings.HasSuffix(prefix, "not ") {
				return candidate{}, false
			}
		}
		words, _ := groupText(pat.re, sentence, loc, "words")
		words = reTestWords.ReplaceAllString(strings.TrimSpace(words), " ")
		if !reWho.MatchString(words) {
			if strings.TrimSpace(words) != "" || words == "" {
				return candidate{}, false
			}
		}

	case "case2":
		// prefer a smaller match starting inside this one: for
		// "292 new coronavirus cases 9 additional..." the trailing "9"
		// must not be swallowed
		if inner, ok := innerCase2(sentence, pat, loc); ok {
			loc = inner
		}

	case "case7":
		words, _ := groupText(pat.re, sentence, loc, "words")
		fields := strings.Fields(words)
		if len(fields) > 0 && throwawaySet[fields[len(fields)-1]] {
			return candidate{}, false
		}
	}

	text := strings.TrimSpace(sentence[loc[0]:loc[1]])
	return candidate{
		start: loc[0],
		end:   loc[0] + len(text),
		text:  text,
		pat:   pat,
		loc:   loc,
	}, true
}

// innerCase2 re-runs the case2 pattern past the first word of the
// current match and returns the inner submatch indices, shifted to
// sentence coordinates, when one exists.
func innerCase2(sentence string, pat casePattern, loc []int) ([]int, bool) {
	text := strings.TrimSpace(sentence[loc[0]:loc[1]])
	offset := strings.Index(text, " ")
	if offset < 0 {
		return nil, false
	}
	base := loc[0] + offset
	inner := pat.re.FindStringSubmatchIndex(sentence[base:])
	if inner == nil {
		return nil, false
	}
	shifted := make([]int, len(inner))
	for i, v := range inner {
		if v < 0 {
			shifted[i] = v
		} else {
			shifted[i] = v + base
		}
	}
	if !numContextOK(sentence, pat.re, shifted) {
		return nil, false
	}
	return shifted, true
}

// numContextOK applies the context restrictions around numeric captures:
// an integer must not continue a longer number ("00" in "6,200,00"),
// must not be the version digits of a virus name ("covid-19"), counts
// must not be percentages, spelled numbers must not be hyphenated
// fragments, and an ordinal only counts when a case noun follows.
func numContextOK(sentence string, re *regexp.Regexp, loc []int) bool {
	for gi, name := range re.SubexpNames() {
		if name == "" || 2*gi+1 >= len(loc) || loc[2*gi] < 0 {
			continue
		}
		start, end := loc[2*gi], loc[2*gi+1]
		rest := sentence[end:]

		switch name {
		case "int", "int_from", "int_to":
			if start > 0 {
				prev := sentence[start-1]
				if (prev >= '0' && prev <= '9') || prev == ',' {
					return false
				}
			}
			prefix := sentence[:start]
			if strings.HasSuffix(prefix, "covid") || strings.HasSuffix(prefix, "covid-") {
				return false
			}
			if !percentOK(rest) {
				return false
			}
		case "tnum", "tnum_from", "tnum_to":
			if strings.HasPrefix(rest, "-") {
				return false
			}
			if !percentOK(rest) {
				return false
			}
		case "enum", "enum_from", "enum_to":
			if !strings.HasPrefix(rest, " case") &&
				!strings.HasPrefix(rest, " confirmed case") &&
				!strings.HasPrefix(rest, " positive case") {
				return false
			}
		case "floatnum":
			if start > 0 && sentence[start-1] >= '0' && sentence[start-1] <= '9' {
				return false
			}
		}
	}
	return true
}

func percentOK(rest string) bool {
	return !strings.HasPrefix(rest, "%") &&
		!strings.HasPrefix(rest, " %") &&
		!strings.HasPrefix(rest, " percent") &&
		!strings.HasPrefix(rest, " pct")
}

// column is one decoded count: span, matched text, value.
type column struct {
	start int
	end   int
	text  string
	value float64
}

// decodeAll converts surviving candidates into decoded counts ordered
// by position. Candidates whose captures cannot be resolved to a number
// are dropped.
func decodeAll(sentence string, cands []candidate) []column {
	var out []column
	for _, c := range cands {
		v, ok := decodeValue(sentence, c)
		if !ok {
			continue
		}
		out = append(out, column{start: c.start, end: c.end, text: c.text, value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// decodeValue resolves the participating numeric capture of one
// candidate. For from-to ranges, the "to" endpoint is the reported
// count.
func decodeValue(sentence string, c candidate) (float64, bool) {
	get := func(name string) (string, bool) {
		return groupText(c.pat.re, sentence, c.loc, name)
	}

	if _, ok := get("no"); ok {
		return 0, true
	}
	if s, ok := get("floatnum"); ok {
		units, _ := get("floatunits")
		v, err := numeric.ParseMagnitude(s + " " + units)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	kinds := []struct {
		names []string
		kind  numeric.Kind
	}{
		{[]string{"int_to", "int"}, numeric.KindInteger},
		{[]string{"tnum_to", "tnum"}, numeric.KindSpelled},
		{[]string{"enum_to", "enum"}, numeric.KindOrdinal},
	}
	for _, k := range kinds {
		for _, name := range k.names {
			s, ok := get(name)
			if !ok {
				continue
			}
			v, err := numeric.Resolve(k.kind, s)
			if err != nil {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

func groupText(re *regexp.Regexp, s string, loc []int, name string) (string, bool) {
	i := re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return "", false
	}
	return s[loc[2*i]:loc[2*i+1]], true
}

func groupStart(re *regexp.Regexp, loc []int, name string) (int, bool) {
	i := re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return 0, false
	}
	return loc[2*i], true
}

func intPtr(v int) *int {
	return &v
}
