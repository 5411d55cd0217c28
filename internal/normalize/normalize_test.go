// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"testing"

	"github.com/pdiddy/extract-engine/internal/finder"
)

func testCleaner() *Cleaner {
	return NewCleaner(finder.Defaults())
}

func TestCommon(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		caseSensitive bool
		want          string
	}{
		{"lowercase", "Temp 98.6", false, "temp 98.6"},
		{"preserve case", "Temp 98.6", true, "Temp 98.6"},
		{"noise chars", "spo2 (98%) [resting]", false, "spo2  98    resting "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Common(tt.in, tt.caseSensitive); got != tt.want {
				t.Errorf("Common(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestErase(t *testing.T) {
	got := Erase("abcdef", 2, 4)
	if got != "ab  ef" {
		t.Errorf("Erase = %q, want %q", got, "ab  ef")
	}
	if len(got) != 6 {
		t.Errorf("Erase changed the length: %d", len(got))
	}

	// out-of-range spans leave the sentence alone
	if got := Erase("abc", -1, 2); got != "abc" {
		t.Errorf("Erase with negative start = %q", got)
	}
	if got := Erase("abc", 2, 9); got != "abc" {
		t.Errorf("Erase past the end = %q", got)
	}
}

func TestCleanSentencePreservesOffsets(t *testing.T) {
	c := testCleaner()
	sentences := []string{
		"the fvc is 1500 ml, so set the temp to 100.",
		"seen on april 21 with temp 98.6 at 10:30 am",
		"a nodule of 5 mm was seen q. 6-8 hrs",
	}

	for _, s := range sentences {
		cleaned := c.CleanSentence(s, false)
		if len(cleaned) != len(s) {
			t.Errorf("CleanSentence(%q) changed length: %d -> %d", s, len(s), len(cleaned))
		}
	}
}

func TestCleanSentenceErasesDates(t *testing.T) {
	c := testCleaner()
	cleaned := c.CleanSentence("seen on april 21 with fever", false)
	if strings.Contains(cleaned, "april 21") {
		t.Errorf("date not erased: %q", cleaned)
	}
	if strings.Contains(cleaned, "21") {
		t.Errorf("date digits survive: %q", cleaned)
	}
}

func TestCleanSentenceErasesSizes(t *testing.T) {
	c := testCleaner()

	cleaned := c.CleanSentence("a nodule of 5 mm was seen", false)
	if strings.Contains(cleaned, "5 mm") {
		t.Errorf("size not erased: %q", cleaned)
	}

	// cc volumes are quantities of interest and must survive
	cleaned = c.CleanSentence("drained 30 cc of fluid", false)
	if !strings.Contains(cleaned, "30 cc") {
		t.Errorf("cc volume wrongly erased: %q", cleaned)
	}
}

func TestCleanSentenceTimes(t *testing.T) {
	c := testCleaner()

	cleaned := c.CleanSentence("seen at 10:30 with temp 98.6", false)
	if strings.Contains(cleaned, "10:30") {
		t.Errorf("clock time not erased: %q", cleaned)
	}
	if !strings.Contains(cleaned, "98.6") {
		t.Errorf("measurement wrongly erased: %q", cleaned)
	}

	// a bare digit run is only a time when "at"-preceded
	cleaned = c.CleanSentence("the fvc is 1500", false)
	if !strings.Contains(cleaned, "1500") {
		t.Errorf("bare measurement wrongly erased: %q", cleaned)
	}
	cleaned = c.CleanSentence("admitted at 1500 today", false)
	if strings.Contains(cleaned, "1500") {
		t.Errorf("at-preceded time not erased: %q", cleaned)
	}
}

func TestCleanSentenceDurations(t *testing.T) {
	c := testCleaner()

	cleaned := c.CleanSentence("coughing for the previous 3 weeks", false)
	if strings.Contains(cleaned, "3 weeks") {
		t.Errorf("duration not erased: %q", cleaned)
	}
}

func TestCleanReport(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"noise and case",
			"Officials: 292 new cases (up from Monday)",
			"officials 292 new cases up from monday",
		},
		{
			"w slash",
			"12 patients w/ symptoms",
			"12 patients with symptoms",
		},
		{
			"bare commas broken, grouping kept",
			"in harris county, texas, 6,200 cases",
			"in harris county texas 6,200 cases",
		},
		{
			"apostrophes dropped",
			"the county's total",
			"the countys total",
		},
	}

	c := testCleaner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CleanReport(tt.in); got != tt.want {
				t.Errorf("CleanReport(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanReportErasesDates(t *testing.T) {
	c := testCleaner()
	got := c.CleanReport("on 6-24 the state reported 292 cases")
	if strings.Contains(got, "6-24") {
		t.Errorf("month-day fragment survives: %q", got)
	}
	if !strings.Contains(got, "292") {
		t.Errorf("count wrongly erased: %q", got)
	}
}
