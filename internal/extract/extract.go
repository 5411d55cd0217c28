// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract searches a sentence for one or more query terms and
// returns any values associated with those terms. Matching runs a fixed
// family of patterns per term in priority order, normalizes each capture
// into a typed value with a classified relational condition, resolves
// overlapping candidates, and suppresses values stated hypothetically.
package extract

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/pdiddy/extract-engine/internal/finder"
	"github.com/pdiddy/extract-engine/internal/normalize"
	"github.com/pdiddy/extract-engine/internal/numeric"
	"github.com/pdiddy/extract-engine/internal/overlap"
	"github.com/pdiddy/extract-engine/pkg/types"
)

// Query is one extraction request. Terms is a comma-separated list of
// query terms; values are assumed to occur after their term. MinVal and
// MaxVal bound acceptable numeric values and may be fractions, in which
// case the numerator bounds. A non-empty EnumTerms switches to
// text-extraction mode: the words after a term are matched against the
// enumerated filter list and numeric resolution is bypassed.
type Query struct {
	Terms         string `json:"terms" yaml:"terms"`
	MinVal        string `json:"min_val" yaml:"min_val"`
	MaxVal        string `json:"max_val" yaml:"max_val"`
	EnumTerms     string `json:"enum_terms" yaml:"enum_terms"`
	CaseSensitive bool   `json:"case_sensitive" yaml:"case_sensitive"`
	DenomOnly     bool   `json:"denom_only" yaml:"denom_only"`
}

// hit is one surviving candidate before final assembly. Spans index the
// cleaned sentence, which is offset-identical to the original.
type hit struct {
	text  string
	start int
	end   int
	x     *float64
	y     *float64
	cond  types.Condition
	term  string // cleaned query term
}

// Engine extracts measurements from sentences. It is safe for
// concurrent use: per-call state stays on the stack and the compiled
// pattern cache is internally synchronized.
type Engine struct {
	cfg      types.EngineConfig
	cleaner  *normalize.Cleaner
	families *cache.Cache
}

// New builds an Engine using the given expression finders for sentence
// cleaning. Pass finder.Defaults() for the standard set.
func New(cfg types.EngineConfig, finders []finder.Finder) *Engine {
	if cfg.HypotheticalWindow <= 0 {
		cfg.HypotheticalWindow = 6
	}
	return &Engine{
		cfg:      cfg,
		cleaner:  normalize.NewCleaner(finders),
		families: cache.New(30*time.Minute, 10*time.Minute),
	}
}

// Run extracts all values for the query from one sentence. An empty
// result (QuerySuccess false, zero measurements) is not an error; it
// means no term was found or no candidate survived filtering.
func (e *Engine) Run(q Query, sentence string) (*types.ExtractionResult, error) {
	terms := splitTrimmed(q.Terms)
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no query terms given", types.ErrInvalidQuery)
	}

	caseSensitive := q.CaseSensitive || e.cfg.CaseSensitive
	denomOnly := q.DenomOnly || e.cfg.DenomOnly

	// longest terms first, so more specific terms match first
	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i]) > len(terms[j])
	})

	// per-call mapping from cleaned term back to its original form
	restore := make(map[string]string, len(terms))
	cleanTerms := make([]string, len(terms))
	for i, t := range terms {
		ct := normalize.Common(t, caseSensitive)
		cleanTerms[i] = ct
		restore[ct] = t
	}

	textMode := strings.TrimSpace(q.EnumTerms) != ""

	var minv, maxv float64
	if !textMode {
		var err error
		minv, maxv, err = parseBounds(q.MinVal, q.MaxVal)
		if err != nil {
			return nil, err
		}
	}

	cleaned := e.cleaner.CleanSentence(sentence, caseSensitive)

	var hits []hit
	if textMode {
		filters := splitTrimmed(q.EnumTerms)
		if !caseSensitive {
			for i := range filters {
				filters[i] = strings.ToLower(filters[i])
			}
		}
		hits = extractEnumValues(cleanTerms, cleaned, filters)
	} else if reDigits.MatchString(cleaned) {
		for _, term := range cleanTerms {
			hits = append(hits, e.extractTerm(term, cleaned, minv, maxv, denomOnly)...)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].start < hits[j].start
	})
	hits = pruneOverlaps(hits)

	measurements := make([]types.Measurement, 0, len(hits))
	for _, h := range hits {
		m := types.Measurement{
			Start:        h.start,
			End:          h.end,
			Condition:    h.cond,
			MatchingTerm: restore[h.term],
			X:            h.x,
			Y:            h.y,
		}
		if textMode {
			// the matched filter word is the extracted value
			m.Text = h.text
		} else {
			m.Text = sentence[h.start:h.end]
			if h.x != nil {
				lo, hi := *h.x, *h.x
				if h.y != nil {
					lo = math.Min(*h.x, *h.y)
					hi = math.Max(*h.x, *h.y)
				}
				m.MinValue = types.Float(lo)
				m.MaxValue = types.Float(hi)
			}
		}
		measurements = append(measurements, m)
	}

	return &types.ExtractionResult{
		Sentence:         sentence,
		Terms:            q.Terms,
		QuerySuccess:     len(measurements) > 0,
		MeasurementCount: len(measurements),
		Measurements:     measurements,
	}, nil
}

// family returns the compiled pattern family for a cleaned term, reusing
// a cached compilation when available.
func (e *Engine) family(term string) *family {
	if f, ok := e.families.Get(term); ok {
		return f.(*family)
	}
	f := compileFamily(term)
	e.families.Set(term, f, cache.DefaultExpiration)
	return f
}

// extractTerm runs one term's pattern family against the cleaned
// sentence. Rules run in priority order; a candidate whose span falls
// inside an already-claimed span is discarded, so the first family to
// match a region wins. Hypothetical-context suppression runs last.
func (e *Engine) extractTerm(term, cleaned string, minv, maxv float64, denomOnly bool) []hit {
	fam := e.family(term)

	var claimed []types.Span
	var hits []hit
	for _, rule := range fam.rules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(cleaned, -1) {
			if fam.singleLetter && letterAt(cleaned, loc[0]+1) {
				continue
			}
			h, ok := e.decode(rule, cleaned, loc, minv, maxv, denomOnly, term)
			if !ok {
				continue
			}
			span := types.Span{Start: h.start, End: h.end}
			if spanClaimed(claimed, span) {
				continue
			}
			claimed = append(claimed, span)
			hits = append(hits, h)
		}
	}

	return removeHypotheticals(cleaned, hits, e.cfg.HypotheticalWindow)
}

// decode converts one rule match into a hit, resolving captures to
// numeric values and checking them against [minv, maxv]. Unresolvable
// or out-of-range captures drop the candidate.
func (e *Engine) decode(rule matcherRule, cleaned string, loc []int, minv, maxv float64, denomOnly bool, term string) (hit, bool) {
	text := strings.TrimSpace(cleaned[loc[0]:loc[1]])
	h := hit{
		text:  text,
		start: loc[0],
		end:   loc[0] + len(text),
		term:  term,
	}

	words, _ := group(rule.re, cleaned, loc, "words")
	cond, _ := group(rule.re, cleaned, loc, "cond")
	cond = strings.TrimSpace(cond)

	inRange := func(v float64) bool { return v >= minv && v <= maxv }

	switch rule.name {
	case ruleBFFractionRange, ruleFractionRange:
		f1, _ := group(rule.re, cleaned, loc, "frac1")
		f2, _ := group(rule.re, cleaned, loc, "frac2")
		x1, ok1 := fractionValue(f1, denomOnly)
		x2, ok2 := fractionValue(f2, denomOnly)
		if !ok1 || !ok2 || !inRange(x1) || !inRange(x2) {
			return hit{}, false
		}
		h.x, h.y = types.Float(x1), types.Float(x2)
		h.cond = types.CondFractionRange

	case ruleFraction:
		frac, _ := group(rule.re, cleaned, loc, "frac")
		x, ok := fractionValue(frac, denomOnly)
		if !ok || !inRange(x) {
			return hit{}, false
		}
		h.x = types.Float(x)
		h.cond = classifyCondition(words, cond)

	case ruleUnitsRange:
		units1, _ := group(rule.re, cleaned, loc, "units1")
		units2, _ := group(rule.re, cleaned, loc, "units2")
		units1 = stripUnitPunct(units1)
		units2 = stripUnitPunct(units2)
		if units1 == "" {
			// explicit units omitted from the first number
			units1 = units2
		}
		if units1 != units2 {
			return hit{}, false
		}
		n1, _ := group(rule.re, cleaned, loc, "num1")
		n2, _ := group(rule.re, cleaned, loc, "num2")
		x1, err1 := numeric.ParseSuffixed(n1, "")
		x2, err2 := numeric.ParseSuffixed(n2, "")
		if err1 != nil || err2 != nil {
			return hit{}, false
		}
		if units1 == "k" {
			x1 *= 1000
			x2 *= 1000
		}
		if !inRange(x1) || !inRange(x2) {
			return hit{}, false
		}
		h.x, h.y = types.Float(x1), types.Float(x2)
		h.cond = types.CondRange

	case ruleBFRange, rulePlainRange:
		n1, _ := group(rule.re, cleaned, loc, "num1")
		s1, _ := group(rule.re, cleaned, loc, "suffix1")
		n2, _ := group(rule.re, cleaned, loc, "num2")
		s2, _ := group(rule.re, cleaned, loc, "suffix2")
		x1, err1 := numeric.ParseSuffixed(n1, s1)
		x2, err2 := numeric.ParseSuffixed(n2, s2)
		if err1 != nil || err2 != nil || !inRange(x1) || !inRange(x2) {
			return hit{}, false
		}
		h.x, h.y = types.Float(x1), types.Float(x2)
		h.cond = types.CondRange

	case ruleOpValue, ruleWordsValue:
		val, _ := group(rule.re, cleaned, loc, "val")
		suffix, _ := group(rule.re, cleaned, loc, "suffix")
		x, err := numeric.ParseSuffixed(val, suffix)
		if err != nil || !inRange(x) {
			return hit{}, false
		}
		if reBF.MatchString(words) || reBF.MatchString(cond) {
			// found only the first endpoint of a range
			return hit{}, false
		}
		h.x = types.Float(x)
		h.cond = classifyCondition(words, cond)

	default:
		return hit{}, false
	}

	return h, true
}

// extractEnumValues handles text-extraction mode: for each term, the
// words following it are matched against the filter list, and the
// longest matching filter word becomes the result. A match region ends
// at the next term occurrence, so one term cannot capture another's
// words.
func extractEnumValues(terms []string, cleaned string, filters []string) []hit {
	// record every term occurrence as a region boundary
	var boundaries []int
	for _, term := range terms {
		re := regexp.MustCompile(regexp.QuoteMeta(term))
		for _, loc := range re.FindAllStringIndex(cleaned, -1) {
			boundaries = append(boundaries, loc[0])
		}
	}
	if len(boundaries) == 0 {
		return nil
	}
	sort.Ints(boundaries)

	var hits []hit
	for _, term := range terms {
		re := regexp.MustCompile(regexp.QuoteMeta(term) +
			`(?P<words>\s*(` + strEnumValue + `\s*){0,8})`)
		wordsIdx := re.SubexpIndex("words")

		for _, loc := range re.FindAllStringSubmatchIndex(cleaned, -1) {
			start := loc[0]
			idx := sort.SearchInts(boundaries, start)
			if idx >= len(boundaries) || boundaries[idx] != start {
				continue
			}

			// don't cross into the next query term's region
			end := loc[1]
			if idx < len(boundaries)-1 && end > boundaries[idx+1] {
				end = boundaries[idx+1]
			}

			words := cleaned[loc[2*wordsIdx]:loc[2*wordsIdx+1]]
			wordsStart := loc[2*wordsIdx]

			word := ""
			for _, fw := range filters {
				pos := strings.Index(words, fw)
				if pos >= 0 && wordsStart+pos < end && len(fw) > len(word) {
					word = fw
				}
			}
			if word == "" {
				continue
			}
			hits = append(hits, hit{
				text:  word,
				start: start,
				end:   end,
				cond:  types.CondEqual,
				term:  term,
			})
		}
	}
	return hits
}

// pruneOverlaps applies the measurement tie-break rules to hits sorted
// by start offset.
func pruneOverlaps(hits []hit) []hit {
	if len(hits) <= 1 {
		return hits
	}
	entries := make([]overlap.Entry, len(hits))
	for i, h := range hits {
		entries[i] = overlap.Entry{Start: h.start, End: h.end, Text: h.text, Term: h.term}
	}
	discard := overlap.Prune(entries)
	if len(discard) == 0 {
		return hits
	}
	kept := hits[:0:0]
	for i, h := range hits {
		if !discard[i] {
			kept = append(kept, h)
		}
	}
	return kept
}

// parseBounds resolves the optional [min, max] filter. Absent bounds
// default to the full float range; fraction bounds use the numerator.
func parseBounds(minStr, maxStr string) (float64, float64, error) {
	minv, err := parseBound(minStr, -math.MaxFloat64)
	if err != nil {
		return 0, 0, err
	}
	maxv, err := parseBound(maxStr, math.MaxFloat64)
	if err != nil {
		return 0, 0, err
	}
	if minv > maxv {
		return 0, 0, fmt.Errorf("%w: min %v exceeds max %v", types.ErrRangeBounds, minv, maxv)
	}
	return minv, maxv, nil
}

func parseBound(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse bound %q", types.ErrRangeBounds, s)
	}
	return v, nil
}

// fractionValue resolves "110/70" to its numerator or denominator.
func fractionValue(s string, denomOnly bool) (float64, bool) {
	num, denom, err := numeric.ParseFraction(s)
	if err != nil {
		return 0, false
	}
	if denomOnly {
		return float64(denom), true
	}
	return float64(num), true
}

func spanClaimed(claimed []types.Span, s types.Span) bool {
	for _, c := range claimed {
		if c.Contains(s) {
			return true
		}
	}
	return false
}

func letterAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func splitTrimmed(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
