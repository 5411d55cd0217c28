// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package casecount

import (
	"testing"

	"github.com/pdiddy/extract-engine/internal/finder"
)

func testFinder() *Finder {
	return NewFinder(finder.Defaults())
}

func caseValue(t *testing.T, sentence string) (float64, bool) {
	t.Helper()
	reports := testFinder().Run(sentence)
	if len(reports) == 0 || reports[0].CaseValue == nil {
		return 0, false
	}
	return *reports[0].CaseValue, true
}

func TestRunCaseCounts(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     float64
	}{
		{"integer", "the state reported 292 new coronavirus cases today", 292},
		{"comma grouped", "a total of 6,200 confirmed cases statewide", 6200},
		{"spelled", "three new cases were reported overnight", 3},
		{"ordinal", "officials announced the sixth case of coronavirus", 6},
		{"no means zero", "no new cases were reported", 0},
		{"magnitude", "the country passed 3.4 million cases", 3.4e6},
		{"range takes upper", "cases rose from 85 to 92 cases overnight", 92},
		{"tested positive", "12 residents tested positive", 12},
		{"positive for", "15 workers positive for the novel coronavirus", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := caseValue(t, tt.sentence)
			if !ok {
				t.Fatalf("no case value in %q", tt.sentence)
			}
			if got != tt.want {
				t.Errorf("case value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunRejections(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
	}{
		{"malformed grouping", "6,200,00 confirmed cases in harris county"},
		{"percentage", "20 percent of cases were mild"},
		{"covid version digits", "covid-19 cases"},
		{"not tested positive", "40 staff were not tested positive"},
		{"non person subject", "18 samples tested positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := testFinder().Run(tt.sentence)
			for _, r := range reports {
				if r.CaseValue != nil {
					t.Errorf("got case value %v in %q, want none", *r.CaseValue, tt.sentence)
				}
			}
		})
	}
}

func TestRunCaseAndDeath(t *testing.T) {
	reports := testFinder().Run("Indiana reports 292 new coronavirus cases, 9 additional deaths.")

	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1: %+v", len(reports), reports)
	}
	r := reports[0]
	if r.CaseValue == nil || *r.CaseValue != 292 {
		t.Errorf("CaseValue = %v, want 292", r.CaseValue)
	}
	if r.DeathValue == nil || *r.DeathValue != 9 {
		t.Errorf("DeathValue = %v, want 9", r.DeathValue)
	}
	if r.CaseStart == nil || r.CaseEnd == nil {
		t.Fatal("case span missing")
	}
	if r.Sentence[*r.CaseStart:*r.CaseEnd] != r.CaseText {
		t.Errorf("case span [%d,%d) does not index %q in %q",
			*r.CaseStart, *r.CaseEnd, r.CaseText, r.Sentence)
	}
}

func TestRunHospitalizations(t *testing.T) {
	reports := testFinder().Run("the county logged 13 new hospitalizations this week")

	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1: %+v", len(reports), reports)
	}
	if r := reports[0]; r.HospValue == nil || *r.HospValue != 13 {
		t.Errorf("HospValue = %v, want 13", r.HospValue)
	}
}

func TestRunDeathToll(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     float64
	}{
		{"toll rises", "the death toll rose to 21 on tuesday", 21},
		{"count first", "9 additional deaths were confirmed", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := testFinder().Run(tt.sentence)
			if len(reports) == 0 || reports[0].DeathValue == nil {
				t.Fatalf("no death value in %q: %+v", tt.sentence, reports)
			}
			if got := *reports[0].DeathValue; got != tt.want {
				t.Errorf("death value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunNoCounts(t *testing.T) {
	if reports := testFinder().Run("officials urged caution at the briefing"); len(reports) != 0 {
		t.Errorf("got %+v, want no reports", reports)
	}
}
