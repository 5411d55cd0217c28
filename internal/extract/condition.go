// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/extract-engine/pkg/types"
)

// Keyword patterns for classifying the relation between a query term and
// its value. The words preceding the value and the explicit operator
// token form a single combined search space.
const (
	strApprox   = `~=|~|\b(approx\.?|approximately|near(ly)?|about)`
	strEqualKw  = `\b(equal|eq\.?)`
	strLessKw   = `\b(less\s+than|lt\.?|up\s+to|under)`
	strGreatKw  = `\b(greater\s+than|gt\.?|exceed(ing|s)|above|over)`
	strLessThan = `(<|` + strLessKw + `)`
	strLessEq   = `(<=|` + strLessKw + `\s+or\s+` + strEqualKw + `)`
	strGreater  = `(>|` + strGreatKw + `)`
	strGreatEq  = `(>=|` + strGreatKw + `\s+or\s+` + strEqualKw + `)`
)

var (
	reApprox  = regexp.MustCompile(strApprox)
	reLessEq  = regexp.MustCompile(strLessEq)
	reGreatEq = regexp.MustCompile(strGreatEq)
	reLess    = regexp.MustCompile(strLessThan)
	reGreater = regexp.MustCompile(strGreater)
)

// classifyCondition determines the relationship between the query term
// and the value. Approx beats less-or-equal beats greater-or-equal beats
// less-than beats greater-than; EQUAL is the default. RANGE and
// FRACTION_RANGE are assigned structurally by the range-shaped rules and
// never pass through here.
func classifyCondition(words, cond string) types.Condition {
	s := words + " " + cond

	switch {
	case reApprox.MatchString(s):
		return types.CondApprox
	case reLessEq.MatchString(s):
		return types.CondLessOrEqual
	case reGreatEq.MatchString(s):
		return types.CondGreaterOrEqual
	case reLess.MatchString(s):
		return types.CondLessThan
	case reGreater.MatchString(s):
		return types.CondGreaterThan
	}
	return types.CondEqual
}
