// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlap resolves sets of competing span candidates into
// conflict-free subsets. Two surfaces exist: a generic policy-driven
// resolver for pattern-library matches, and a heuristic pruner for
// measurement results whose tie-breaks consult the originating query
// terms.
package overlap

import "sort"

// Candidate is a tentative pattern match with a half-open span.
type Candidate struct {
	Start int
	End   int
	Text  string
	Rule  string // name of the matcher rule that produced it
	Index int    // position in the producing rule's output, for callbacks
}

// Policy selects which member of an overlapping group survives.
type Policy int

const (
	// KeepShortest retains the smallest span among overlapping
	// candidates, minimizing captured trailing context.
	KeepShortest Policy = iota

	// KeepLongest retains the widest span.
	KeepLongest
)

// Resolve returns a conflict-free subset of candidates under the given
// policy. Candidates are considered in deterministic order (span length
// then start offset, direction per policy); a candidate is kept iff it
// overlaps no previously kept candidate. The result is sorted by start
// offset.
func Resolve(cands []Candidate, policy Policy) []Candidate {
	if len(cands) <= 1 {
		out := make([]Candidate, len(cands))
		copy(out, cands)
		return out
	}

	ordered := make([]Candidate, len(cands))
	copy(ordered, cands)
	sort.SliceStable(ordered, func(i, j int) bool {
		li, lj := ordered[i].End-ordered[i].Start, ordered[j].End-ordered[j].Start
		if li != lj {
			if policy == KeepShortest {
				return li < lj
			}
			return li > lj
		}
		// fixed fallback: earlier start wins among equal lengths
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].Rule < ordered[j].Rule
	})

	var kept []Candidate
	for _, c := range ordered {
		conflict := false
		for _, k := range kept {
			if c.Start < k.End && k.Start < c.End {
				conflict = true
				break
			}
		}
		if !conflict {
			kept = append(kept, c)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// Entry is a resolved measurement viewed by the heuristic pruner: its
// span, matched text, and the (cleaned) query term that anchored it.
type Entry struct {
	Start int
	End   int
	Text  string
	Term  string
}

// Prune applies the measurement tie-break rules to entries sorted by
// start offset and returns the index set to discard:
//
//  1. Identical spans: keep the entry with the longer query term (the
//     more specific term wins).
//  2. Partial overlap where the earlier text ends with the later entry's
//     term: discard the earlier entry; its value was a fragment of the
//     later term ("rr" capturing the 2 in "SaO2").
//  3. Partial overlap where the two terms overlap as spans: keep the
//     longer term ("inr(pt)" over "pt").
//  4. Partial overlap, no term overlap: discard the earlier entry, which
//     sits farther from the captured value. This mirrors the original
//     unconditional earlier-discard; computing the true distance to the
//     value is a possible future revision.
//
// The outcome is a pure function of the entries' (start, end, term)
// ordering.
func Prune(entries []Entry) map[int]bool {
	discard := make(map[int]bool)
	n := len(entries)

	for i := 0; i < n; i++ {
		s1, e1 := entries[i].Start, entries[i].End
		for j := i + 1; j < n; j++ {
			s2, e2 := entries[j].Start, entries[j].End
			if e1 <= s2 {
				continue
			}

			term1, term2 := entries[i].Term, entries[j].Term
			switch {
			case s1 == s2 && e1 == e2:
				if len(term1) > len(term2) {
					discard[j] = true
				} else {
					discard[i] = true
				}
			case hasTermSuffix(entries[i].Text, term2):
				discard[i] = true
			case s2 < s1+len(term1):
				// the terms themselves overlap as spans
				if len(term2) > len(term1) {
					discard[i] = true
				} else {
					discard[j] = true
				}
			default:
				discard[i] = true
			}
		}
	}
	return discard
}

func hasTermSuffix(text, term string) bool {
	return len(term) > 0 && len(text) >= len(term) && text[len(text)-len(term):] == term
}
