// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// A simplified version of the ConText algorithm of Harkema et al. is
// used to identify and remove values stated in hypothetical phrases:
// "call for instructions when temp > 101" asserts nothing about the
// temperature.

var reTokenSplit = regexp.MustCompile(`[,;\s]+`)

// trigger is a hypothetical trigger occurrence: the index of the last
// word of the trigger phrase in the sentence token list.
type trigger struct {
	end    int
	phrase string
}

// findTriggers scans the token list for hypothetical trigger phrases:
//
//	"call for"  two-word phrase
//	"if"        skipped when preceded by "know" or followed by "negative"
//	"in case"   two-word phrase
//	"should"    single word
func findTriggers(words []string) []trigger {
	n := len(words)
	var out []trigger
	for i := 0; i < n; i++ {
		switch {
		case words[i] == "call" && i < n-1 && words[i+1] == "for":
			out = append(out, trigger{i + 1, "call for"})
		case words[i] == "if":
			if i > 0 && words[i-1] == "know" {
				continue
			}
			if i < n-1 && words[i+1] == "negative" {
				continue
			}
			out = append(out, trigger{i, "if"})
		case words[i] == "in" && i < n-2 && words[i+1] == "case":
			out = append(out, trigger{i + 1, "in case"})
		case words[i] == "should":
			out = append(out, trigger{i, "should"})
		}
	}
	return out
}

// wordSpan locates a hit's text in the sentence token list and returns
// the index of its first word, or -1 if not found. Tokens are matched by
// prefix: a result word may have trailing context stripped by cleaning.
func wordSpan(words []string, text string) int {
	rWords := reTokenSplit.Split(strings.ToLower(text), -1)
	if len(rWords) == 0 {
		return -1
	}
	for i := 0; i+len(rWords) <= len(words); i++ {
		j := 0
		for j < len(rWords) && strings.HasPrefix(words[i+j], rWords[j]) {
			j++
		}
		if j == len(rWords) {
			return i
		}
	}
	return -1
}

// removeHypotheticals drops hits whose first word falls within window
// words after a trigger phrase. Multiple triggers may independently
// suppress the same hit.
func removeHypotheticals(sentence string, hits []hit, window int) []hit {
	if len(hits) == 0 {
		return hits
	}

	words := reTokenSplit.Split(strings.ToLower(sentence), -1)
	triggers := findTriggers(words)
	if len(triggers) == 0 {
		return hits
	}

	starts := make([]int, len(hits))
	for i, h := range hits {
		starts[i] = wordSpan(words, h.text)
	}

	omit := make(map[int]bool)
	for _, t := range triggers {
		for i, start := range starts {
			if start < t.end {
				continue
			}
			if start-t.end < window {
				omit[i] = true
			}
		}
	}

	if len(omit) == 0 {
		return hits
	}
	kept := hits[:0:0]
	for i, h := range hits {
		if !omit[i] {
			kept = append(kept, h)
		}
	}
	return kept
}
