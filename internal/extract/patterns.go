// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// Regex building blocks for the per-term pattern families. Values are
// assumed to occur after the query term; the first acceptable value
// after the term is the one returned.
const (
	// hyphenated words and abbreviations
	strTextWord = `[-a-zA-Z.]+`

	// up to eight words between the term and its value, nongreedy
	strWords = `([-a-zA-Z.]+\s+){0,8}?`

	strOp        = `((is|of|was|approx\.?|approximately|~=|>=|<=|[<>=~\?])\s*)?`
	strSeparator = `([-:=\s]\s*)?`

	strCommaNum = `\d{1,3}(,\d{3})+`
	strIntFloat = `(\d+(\.\d+)?|\.\d+)`
	strNum      = strCommaNum + `|` + strIntFloat

	strCond     = `(?P<cond>` + strOp + `)`
	strSuffix   = `(k|K|s|'s)?`
	strVal      = `(?P<val>` + strNum + `)(?P<suffix>` + strSuffix + `)`
	strRangeSep = `\s*(-|to(\s+the)?)\s*`

	// ranges with optional suffixes: "90's to 100's", "20k-40k"
	strRange = `(?P<num1>` + strNum + `)(?P<suffix1>` + strSuffix + `)` +
		strRangeSep +
		`(?P<num2>` + strNum + `)(?P<suffix2>` + strSuffix + `)`

	// "between" and "from" often open ranges: "between 10 and 20"
	strBF    = `\b(between|from)\s*`
	strBFSep = `\s*(-|to|and)\s*`

	strBFRange = strBF +
		`(?P<num1>` + strNum + `)(?P<suffix1>` + strSuffix + `)` + strBFSep +
		`(?P<num2>` + strNum + `)(?P<suffix2>` + strSuffix + `)`

	strUnitsRange = `(` + strBF + `)?` +
		`(?P<num1>` + strNum + `)\s*` +
		`(?P<units1>(` + strTextWord + `)?)` +
		strBFSep +
		`(?P<num2>` + strNum + `)\s*` +
		`(?P<units2>` + strTextWord + `)`

	// two integers separated by '/'
	strFraction = `\d+\s*/\s*\d+`

	strFractionRange = `(?P<frac1>` + strFraction + `)('?s)?` +
		strRangeSep +
		`(?P<frac2>` + strFraction + `)('?s)?`

	// between 110/70 and 120/80, from 100/60 to 120/70
	strBFFractionRange = strBF +
		`(?P<frac1>` + strFraction + `)('?s)?` +
		strBFSep +
		`(?P<frac2>` + strFraction + `)('?s)?`

	// catchall for text-extraction mode: words, titer expressions
	// (1:200), '+' and '-' symbols
	strEnumValue = `[-a-zA-Z:\d/\+()]+`
)

var (
	reDigits = regexp.MustCompile(`\d+`)
	rePunct  = regexp.MustCompile(`[.;,?'"!$%~]`)
	reBF     = regexp.MustCompile(strBF)
)

// Named matcher rules for one query term, tried in this declared order.
// Only the first rule that claims a span region contributes a candidate
// there; later rules still run but their already-claimed registrations
// are discarded.
const (
	ruleBFFractionRange = "bf-fraction-range"
	ruleFractionRange   = "fraction-range"
	ruleFraction        = "fraction"
	ruleUnitsRange      = "units-range"
	ruleBFRange         = "bf-range"
	rulePlainRange      = "range"
	ruleOpValue         = "op-val"
	ruleWordsValue      = "wds-val"
)

type matcherRule struct {
	name string
	re   *regexp.Regexp
}

// family is the compiled pattern set for one query term. Compilation is
// relatively costly, so families are cached per (term, case flag).
type family struct {
	term  string
	rules []matcherRule

	// a single-letter term must not be followed by a letter, which would
	// mean the term starts a longer word
	singleLetter bool
}

// queryStart builds the opening of every rule in a term's family: the
// term itself, or the term plus one intervening word, then an optional
// separator and up to eight capture-named words.
func queryStart(term string) string {
	qt := regexp.QuoteMeta(term)
	return `\b(` + qt + `\s*|` + qt + `\s+([a-zA-Z]+\s*))` + strSeparator +
		`(?P<words>` + strWords + `)`
}

// compileFamily builds the ordered rule set for one cleaned query term.
func compileFamily(term string) *family {
	start := queryStart(term)

	rules := []matcherRule{
		{ruleBFFractionRange, regexp.MustCompile(start + strCond + strBFFractionRange)},
		{ruleFractionRange, regexp.MustCompile(start + strCond + strFractionRange)},
		{ruleFraction, regexp.MustCompile(start + strCond + `(?P<frac>` + strFraction + `)`)},
		{ruleUnitsRange, regexp.MustCompile(start + strCond + strUnitsRange)},
		{ruleBFRange, regexp.MustCompile(start + strCond + strBFRange)},
		{rulePlainRange, regexp.MustCompile(start + strCond + strRange)},
		{ruleOpValue, regexp.MustCompile(start + strCond + strVal)},
		{ruleWordsValue, regexp.MustCompile(start + strVal)},
	}

	return &family{
		term:         term,
		rules:        rules,
		singleLetter: len(term) == 1,
	}
}

// group extracts a named capture from a submatch index slice, or false
// if the group did not participate in the match.
func group(re *regexp.Regexp, s string, loc []int, name string) (string, bool) {
	i := re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return "", false
	}
	return s[loc[2*i]:loc[2*i+1]], true
}

// stripUnitPunct lowercases a captured units word and removes common
// punctuation so "k," and "K" compare equal.
func stripUnitPunct(units string) string {
	return rePunct.ReplaceAllString(strings.ToLower(strings.TrimSpace(units)), "")
}
