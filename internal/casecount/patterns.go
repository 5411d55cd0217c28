// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package casecount

import "regexp"

// Pattern library for counting reported cases, hospitalizations, and
// deaths in scraped report text. The number sub-pattern recognizes
// comma-grouped integers, spelled-out numbers, ordinal enumerations
// ("sixth case"), "no" meaning zero, float-with-magnitude phrases
// ("3.4 million"), and from-to ranges of any of these.

// a word, possibly hyphenated or abbreviated
const (
	strWord           = `[-a-z]+\.?\s?`
	strWords          = `(` + strWord + `){0,5}?`
	strOneOrMoreWords = `(` + strWord + `){1,5}?`

	strInt = `(\d{1,3}(,\d{3})+|\d+)`

	strTnumDigit = `\b(one|two|three|four|five|six|seven|eight|nine|zero)`
	strTnum10s   = `\b(ten|eleven|twelve|(thir|four|fif|six|seven|eight|nine)teen)`

	strEnum = `(first|second|third|fourth|fifth|sixth|seventh|eighth|` +
		`ninth|tenth|eleventh|twelfth|` +
		`(thir|four|fif|six|seven|eight|nine)teenth|` +
		`1[0-9]th|[2-9]0th|[4-9]th|3rd|2nd|1st|` +
		`(twen|thir|for|fif|six|seven|eigh|nine)tieth)`

	strFloatWord = `(?P<floatnum>\d+(\.\d+)?)\s(?P<floatunits>(thousand|million))`

	strCoronavirus = `(covid([-\s]?19)?|(novel\s)?(corona)?virus)\s?`

	strDeath = `(deaths?|fatalit(ies|y))`
	strHosp  = `(hospitalizations?)`

	// names of groups of people who might become infected
	strWho = `\b(babies|baby|boy|captive|child|children|citizen|client|` +
		`convict|customer|detainee|employee|girl|guest|holidaymaker|` +
		`individual|infant|inhabitant|inmate|internee|laborer|man|men|native|` +
		`national|neighbor|newborn|occupant|passenger|patient|patron|people|` +
		`personnel|prisoner|regular|resident|shopper|staff|tourist|traveler|` +
		`victim|visitor|voter|woman|women|worker)s?\s?`
)

// tens builds the pattern for one tens word with an optional ones digit.
func tens(word string) string {
	return `\b(` + word + `[-\s]?` + strTnumDigit + `|` + word + `)`
}

var (
	strTnum100s = strTnumDigit + `[-\s]hundred[-\s](and[-\s])?` +
		`(` +
		tens("ninety") + `|` + tens("eighty") + `|` + tens("seventy") + `|` +
		tens("sixty") + `|` + tens("fifty") + `|` + tens("forty") + `|` +
		tens("thirty") + `|` + tens("twenty") + `|` +
		strTnum10s + `|` + strTnumDigit +
		`)?`

	strTnum = `(` +
		strTnum100s + `|` +
		tens("ninety") + `|` + tens("eighty") + `|` + tens("seventy") + `|` +
		tens("sixty") + `|` + tens("fifty") + `|` + tens("forty") + `|` +
		tens("thirty") + `|` + tens("twenty") + `|` +
		strTnum10s + `|` + strTnumDigit +
		`)`
)

// numRegex builds the capture alternation for one number occurrence,
// using the given group names for the integer, spelled, and enumerated
// branches.
func numRegex(a, b, c string) string {
	return `(` +
		`(?P<` + a + `>` + strInt + `)|` +
		`(?P<` + b + `>` + strTnum + `)|` +
		`(?P<` + c + `>` + strEnum + `)` +
		`)`
}

// strNum recognizes a from-to range, the bare "no" (zero new cases), a
// float-with-magnitude phrase, or a single number.
var strNum = `(` + `(\bfrom\s)?` +
	numRegex("int_from", "tnum_from", "enum_from") +
	`\s?to\s?` +
	numRegex("int_to", "tnum_to", "enum_to") +
	`|\b(?P<no>no)\b` +
	`|` + strFloatWord +
	`|` + numRegex("int", "tnum", "enum") +
	`)`

// Case-count patterns, tried in this order. The kind tags route decoded
// counts into the report's case, hospitalization, or death column.
const (
	kindCase  = "case"
	kindHosp  = "hosp"
	kindDeath = "death"
)

type casePattern struct {
	name string
	kind string
	re   *regexp.Regexp
}

var casePatterns = []casePattern{
	// <num> <words> positive for <words> <coronavirus>
	{"case0", kindCase, regexp.MustCompile(`(?i)` + strNum + `\s(?P<words>` + strWords + `)` +
		`(?P<trig>positive\sfor\s)` + strWords + strCoronavirus)},

	// <num> <words> tested positive
	{"case1", kindCase, regexp.MustCompile(`(?i)` + strNum + `\s(?P<words>` + strWords + `)` +
		`(?P<trig>tested\spositive)`)},

	// <num> <words> <coronavirus> cases?
	{"case2", kindCase, regexp.MustCompile(`(?i)` + strNum + `\s` + strWords + strCoronavirus + `cases?`)},

	// <num> <words> cases? <words> <coronavirus>
	{"case3", kindCase, regexp.MustCompile(`(?i)` + strNum + `\s` + strWords + `cases?\s` + strWords + strCoronavirus)},

	// <num> <who> with <coronavirus>
	{"case4", kindCase, regexp.MustCompile(`(?i)` + strNum + `\s` + strWho + `with\s` + strCoronavirus)},

	// (total|number of) <words> <coronavirus> cases? <words> <num>
	{"case5", kindCase, regexp.MustCompile(`(?i)(total|number\sof)\s` + strWords + strCoronavirus + `cases?\s` + strWords + strNum)},

	// (total|number of) <words> cases? <words> <num>
	{"case6", kindCase, regexp.MustCompile(`(?i)(total|number\sof)\s` + strWords + `cases?\s` + strWords + strNum)},

	// <coronavirus> cases? <words> <num>
	{"case7", kindCase, regexp.MustCompile(`(?i)` + strCoronavirus + `cases?\s(?P<words>` + strOneOrMoreWords + `)` + strNum)},

	// cases (at|to over) <num>
	{"case8", kindCase, regexp.MustCompile(`(?i)(cases|total)\s(at|to(\sover))\s` + strNum)},

	// <num> <words> cases?
	{"case9", kindCase, regexp.MustCompile(`(?i)` + strNum + `\s?` + strWords + `cases?`)},
}

var hospPatterns = []casePattern{
	// <num> <words> hospitalizations
	{"hosp0", kindHosp, regexp.MustCompile(`(?i)` + strNum + `\s` + strWords + strHosp)},

	// hospitalizations <words> <num>
	{"hosp1", kindHosp, regexp.MustCompile(`(?i)` + strHosp + `\s` + strWords + strNum)},
}

var deathPatterns = []casePattern{
	// <num> <words> deaths
	{"death0", kindDeath, regexp.MustCompile(`(?i)` + strNum + `\s` + strWords + strDeath)},

	// (death toll|number of deaths) <words> <num>
	{"death1", kindDeath, regexp.MustCompile(`(?i)(` + strDeath + `\stoll|number\sof\s(confirmed\s)?` + strDeath + `)\s` + strWords + strNum)},

	// total deaths to <num>
	{"death2", kindDeath, regexp.MustCompile(`(?i)(total\s)?` + strDeath + `\s(at|to(\sover)?)\s` + strNum)},
}

// throwawaySet holds stopwords that disqualify a case7 match when one
// ends the words capture: "cases in the 40" is a fragment, not a count.
var throwawaySet = map[string]bool{
	"i": true, "me": true, "my": true, "myself": true, "we": true,
	"our": true, "ours": true, "ourselves": true, "you": true, "your": true,
	"yours": true, "yourself": true, "yourselves": true, "he": true,
	"him": true, "his": true, "himself": true, "she": true, "her": true,
	"hers": true, "herself": true, "it": true, "its": true, "itself": true,
	"they": true, "them": true, "their": true, "theirs": true,
	"themselves": true, "what": true, "which": true, "who": true,
	"whom": true, "this": true, "that": true, "these": true, "those": true,
	"am": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "having": true, "do": true, "does": true, "did": true,
	"doing": true, "a": true, "an": true, "the": true, "and": true,
	"but": true, "if": true, "or": true, "because": true, "as": true,
	"until": true, "while": true, "of": true, "at": true, "by": true,
	"for": true, "with": true, "against": true, "between": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "from": true, "up": true,
	"down": true, "in": true, "out": true, "on": true, "off": true,
	"over": true, "under": true, "again": true, "further": true,
	"then": true, "once": true, "here": true, "there": true, "when": true,
	"where": true, "why": true, "how": true, "all": true, "any": true,
	"both": true, "each": true, "few": true, "more": true, "most": true,
	"other": true, "some": true, "such": true, "no": true, "nor": true,
	"not": true, "only": true, "own": true, "same": true, "so": true,
	"than": true, "too": true, "very": true, "can": true, "will": true,
	"just": true, "dont": true, "should": true, "shouldve": true,
	"now": true, "arent": true, "couldnt": true, "didnt": true,
	"doesnt": true, "hadnt": true, "hasnt": true, "havent": true,
	"isnt": true, "shouldnt": true, "wasnt": true, "werent": true,
	"wont": true, "wouldnt": true,
}
