// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package numeric resolves raw numeric-text tokens into values: integers
// with comma grouping, spelled-out cardinals, ordinal words, magnitude
// phrases ("3.4 million"), fractions, and suffixed numbers ("20k").
// All functions are pure; unknown tokens fail with types.ErrInvalidNumber.
package numeric

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/extract-engine/pkg/types"
)

// Kind discriminates how a numeric capture should be decoded. The
// candidate generator tags each capture once at creation time.
type Kind int

const (
	KindInteger   Kind = iota // digits, possibly comma-grouped
	KindSpelled               // "twenty-four", "one hundred and six"
	KindOrdinal               // "third", "21st"
	KindNoValue               // the literal "no", meaning zero
	KindMagnitude             // "<float> thousand|million"
)

var (
	reGroupedInt = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)
	rePlainInt   = regexp.MustCompile(`^\d+$`)
	reHundreds   = regexp.MustCompile(`^(one|two|three|four|five|six|seven|eight|nine)[-\s]?hundred[-\s]?`)
	reDigitOrd   = regexp.MustCompile(`^(\d+)(st|nd|rd|th)$`)
	reMagnitude  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(thousand|million)$`)
	reFraction   = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)
)

// cardinals maps spelled number words to their values. Tens words map to
// their full value, so "forty-four" resolves as 40 + 4.
var cardinals = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var ordinals = map[string]int{
	"zeroth": 0, "first": 1, "second": 2, "third": 3, "fourth": 4,
	"fifth": 5, "sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9,
	"tenth": 10, "eleventh": 11, "twelfth": 12, "thirteenth": 13,
	"fourteenth": 14, "fifteenth": 15, "sixteenth": 16,
	"seventeenth": 17, "eighteenth": 18, "nineteenth": 19,
	"twentieth": 20, "thirtieth": 30, "fortieth": 40, "fiftieth": 50,
	"sixtieth": 60, "seventieth": 70, "eightieth": 80, "ninetieth": 90,
}

// Resolve decodes a tagged capture into a value.
func Resolve(kind Kind, token string) (float64, error) {
	switch kind {
	case KindInteger:
		return ParseGroupedInt(token)
	case KindSpelled:
		return ParseSpelled(token)
	case KindOrdinal:
		return ParseOrdinal(token)
	case KindNoValue:
		return 0, nil
	case KindMagnitude:
		return ParseMagnitude(token)
	}
	return 0, fmt.Errorf("%w: unknown capture kind %d", types.ErrInvalidNumber, kind)
}

// ParseGroupedInt parses an integer that may use comma grouping.
// Malformed grouping such as "6,200,00" is rejected rather than
// silently truncated to a prefix.
func ParseGroupedInt(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		if !reGroupedInt.MatchString(s) {
			return 0, fmt.Errorf("%w: malformed comma grouping %q", types.ErrInvalidNumber, s)
		}
		s = strings.ReplaceAll(s, ",", "")
	} else if !rePlainInt.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not an integer", types.ErrInvalidNumber, s)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidNumber, s)
	}
	return float64(v), nil
}

// ParseSpelled converts a spelled-out cardinal ("twenty-four",
// "one hundred and six") to its value. The decomposition is a fixed
// hundreds component plus at most two trailing words, each of which must
// resolve through the cardinal lexicon.
func ParseSpelled(s string) (float64, error) {
	text := strings.ReplaceAll(s, "-", " ")
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ToLower(strings.TrimSpace(text))

	if v, ok := cardinals[text]; ok {
		return float64(v), nil
	}

	hundreds := 0
	if m := reHundreds.FindStringSubmatch(text); m != nil {
		hundreds = cardinals[m[1]]
		text = strings.TrimSpace(text[len(m[0]):])
	}

	tens, ones := 0, 0
	if len(text) > 0 {
		if pos := strings.Index(text, "and"); pos != -1 {
			text = strings.TrimSpace(text[pos+3:])
		}
		words := strings.Fields(text)
		switch len(words) {
		case 1:
			v, ok := cardinals[words[0]]
			if !ok {
				return 0, fmt.Errorf("%w: unknown number word %q", types.ErrInvalidNumber, words[0])
			}
			ones = v
		case 2:
			t, okT := cardinals[words[0]]
			o, okO := cardinals[words[1]]
			if !okT || !okO {
				return 0, fmt.Errorf("%w: unknown number words in %q", types.ErrInvalidNumber, text)
			}
			// tens words already carry their full value
			tens, ones = t, o
		default:
			return 0, fmt.Errorf("%w: %q has too many components", types.ErrInvalidNumber, s)
		}
	} else if hundreds == 0 {
		return 0, fmt.Errorf("%w: empty number text", types.ErrInvalidNumber)
	}

	return float64(100*hundreds + tens + ones), nil
}

// ParseOrdinal converts an ordinal word ("third") or digit-suffix form
// ("21st") to its value.
func ParseOrdinal(s string) (float64, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if v, ok := ordinals[text]; ok {
		return float64(v), nil
	}
	if m := reDigitOrd.FindStringSubmatch(text); m != nil {
		v, err := strconv.Atoi(m[1])
		if err == nil {
			return float64(v), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown ordinal %q", types.ErrInvalidNumber, s)
}

// ParseMagnitude converts a "<float> thousand|million" phrase.
func ParseMagnitude(s string) (float64, error) {
	m := reMagnitude.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("%w: not a magnitude phrase: %q", types.ErrInvalidNumber, s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidNumber, s)
	}
	switch m[2] {
	case "thousand":
		v *= 1e3
	case "million":
		v *= 1e6
	}
	return v, nil
}

// ParseFraction splits a fraction such as "110/70" into numerator and
// denominator.
func ParseFraction(s string) (num, denom int, err error) {
	m := reFraction.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: not a fraction: %q", types.ErrInvalidNumber, s)
	}
	num, _ = strconv.Atoi(m[1])
	denom, _ = strconv.Atoi(m[2])
	return num, denom, nil
}

// ParseSuffixed converts a number with an optional k/K/s/'s suffix to a
// value; "k" multiplies by 1000, the plural suffixes are ignored
// ("90's" in "90's to 100's").
func ParseSuffixed(num, suffix string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(num), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidNumber, num)
	}
	if strings.EqualFold(strings.TrimSpace(suffix), "k") {
		v *= 1000
	}
	return v, nil
}
