// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlap

import "testing"

func TestResolveKeepShortest(t *testing.T) {
	cands := []Candidate{
		{Start: 0, End: 30, Text: "292 new coronavirus cases 9 ad", Rule: "wide"},
		{Start: 0, End: 25, Text: "292 new coronavirus cases", Rule: "narrow"},
		{Start: 26, End: 30, Text: "9 ad", Rule: "tail"},
	}

	kept := Resolve(cands, KeepShortest)
	if len(kept) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(kept), kept)
	}
	if kept[0].Rule != "narrow" || kept[1].Rule != "tail" {
		t.Errorf("kept rules = %s, %s; want narrow, tail", kept[0].Rule, kept[1].Rule)
	}
}

func TestResolveKeepLongest(t *testing.T) {
	cands := []Candidate{
		{Start: 0, End: 10, Rule: "short"},
		{Start: 0, End: 20, Rule: "long"},
	}

	kept := Resolve(cands, KeepLongest)
	if len(kept) != 1 || kept[0].Rule != "long" {
		t.Fatalf("kept = %+v, want the long candidate only", kept)
	}
}

func TestResolveTieBreaks(t *testing.T) {
	// equal spans resolve by rule name, so the outcome does not depend
	// on input order
	cands := []Candidate{
		{Start: 0, End: 10, Rule: "case9"},
		{Start: 0, End: 10, Rule: "case2"},
	}

	kept := Resolve(cands, KeepShortest)
	if len(kept) != 1 || kept[0].Rule != "case2" {
		t.Fatalf("kept = %+v, want case2 only", kept)
	}

	reversed := []Candidate{cands[1], cands[0]}
	kept = Resolve(reversed, KeepShortest)
	if len(kept) != 1 || kept[0].Rule != "case2" {
		t.Fatalf("kept (reversed input) = %+v, want case2 only", kept)
	}
}

func TestResolveDisjointKeepsAll(t *testing.T) {
	cands := []Candidate{
		{Start: 10, End: 20, Rule: "b"},
		{Start: 0, End: 5, Rule: "a"},
		{Start: 30, End: 35, Rule: "c"},
	}

	kept := Resolve(cands, KeepShortest)
	if len(kept) != 3 {
		t.Fatalf("got %d candidates, want 3", len(kept))
	}
	for i := 1; i < len(kept); i++ {
		if kept[i].Start < kept[i-1].End {
			t.Errorf("result not sorted conflict-free: %+v", kept)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	if got := Resolve(nil, KeepShortest); len(got) != 0 {
		t.Errorf("Resolve(nil) = %+v, want empty", got)
	}
}

func TestPruneIdenticalSpans(t *testing.T) {
	entries := []Entry{
		{Start: 5, End: 15, Text: "120/80", Term: "bp"},
		{Start: 5, End: 15, Text: "120/80", Term: "blood pressure"},
	}

	discard := Prune(entries)
	if !discard[0] || discard[1] {
		t.Errorf("discard = %v, want the shorter-term entry dropped", discard)
	}
}

func TestPruneTermSuffix(t *testing.T) {
	// the earlier match captured a fragment of the later entry's term:
	// "rr" reading the trailing 2 of "sao2"
	entries := []Entry{
		{Start: 0, End: 6, Text: "sao2", Term: "rr"},
		{Start: 2, End: 10, Text: "sao2 98", Term: "sao2"},
	}

	discard := Prune(entries)
	if !discard[0] || discard[1] {
		t.Errorf("discard = %v, want the fragment entry dropped", discard)
	}
}

func TestPruneOverlappingTerms(t *testing.T) {
	entries := []Entry{
		{Start: 0, End: 12, Text: "inr(pt) 1.2", Term: "inr(pt)"},
		{Start: 4, End: 12, Text: "pt) 1.2", Term: "pt"},
	}

	discard := Prune(entries)
	if discard[0] || !discard[1] {
		t.Errorf("discard = %v, want the shorter-term entry dropped", discard)
	}
}

func TestPruneNoTermOverlap(t *testing.T) {
	// spans overlap but the term spans do not: "platelets" captured the
	// "k" region that "platelet count" anchors on. The earlier entry is
	// the one discarded.
	entries := []Entry{
		{Start: 0, End: 16, Text: "platelets 110k a", Term: "platelets"},
		{Start: 15, End: 33, Text: "a platelet count 9", Term: "platelet count"},
	}

	discard := Prune(entries)
	if !discard[0] || discard[1] {
		t.Errorf("discard = %v, want the earlier entry dropped", discard)
	}
}

func TestPruneDisjoint(t *testing.T) {
	entries := []Entry{
		{Start: 0, End: 5, Term: "hr"},
		{Start: 10, End: 15, Term: "bp"},
	}

	if discard := Prune(entries); len(discard) != 0 {
		t.Errorf("discard = %v, want none for disjoint entries", discard)
	}
}
