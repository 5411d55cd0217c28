// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the extraction engine:
// spans, conditions, measurement records, and stage configuration.
package types

// Condition is the classified relation between a query term and its value.
type Condition string

const (
	CondApprox         Condition = "APPROX"
	CondLessThan       Condition = "LESS_THAN"
	CondLessOrEqual    Condition = "LESS_THAN_OR_EQUAL"
	CondGreaterThan    Condition = "GREATER_THAN"
	CondGreaterOrEqual Condition = "GREATER_THAN_OR_EQUAL"
	CondEqual          Condition = "EQUAL"
	CondRange          Condition = "RANGE"
	CondFractionRange  Condition = "FRACTION_RANGE"
)

// Span locates a match within a sentence as half-open character offsets.
// Invariant: 0 <= Start < End <= len(sentence).
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Overlaps reports whether two spans share at least one character.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Len returns the span width in characters.
func (s Span) Len() int {
	return s.End - s.Start
}

// Float returns a *float64 for use in optional measurement fields.
func Float(v float64) *float64 {
	return &v
}

// Measurement is one normalized, classified value extracted from a
// sentence. Absent numeric fields are nil and serialize as JSON null,
// the empty-value sentinel; zero is a real value.
type Measurement struct {
	// Text is the matching text, sliced from the original sentence.
	Text string `json:"text" yaml:"text"`

	// Start and End are half-open character offsets of Text.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// Condition relates the query term to the value.
	Condition Condition `json:"condition" yaml:"condition"`

	// MatchingTerm is the query term, in its original pre-cleaning form.
	MatchingTerm string `json:"matchingTerm" yaml:"matching_term"`

	// X is the primary value. Y is present only for ranges and fraction
	// ranges.
	X *float64 `json:"x" yaml:"x,omitempty"`
	Y *float64 `json:"y" yaml:"y,omitempty"`

	// MinValue and MaxValue are {X, Y} reordered, or (X, X) when Y is
	// absent. Both are nil in text-extraction mode.
	MinValue *float64 `json:"minValue" yaml:"min_value,omitempty"`
	MaxValue *float64 `json:"maxValue" yaml:"max_value,omitempty"`
}

// ExtractionResult is the externally visible unit of output for one
// extraction call.
type ExtractionResult struct {
	// Sentence is the original, unmodified input sentence.
	Sentence string `json:"sentence" yaml:"sentence"`

	// Terms is the original comma-separated query term list.
	Terms string `json:"terms" yaml:"terms"`

	// QuerySuccess is true iff at least one measurement survived.
	QuerySuccess bool `json:"querySuccess" yaml:"query_success"`

	// MeasurementCount is len(Measurements).
	MeasurementCount int `json:"measurementCount" yaml:"measurement_count"`

	// Measurements is ordered by starting character offset.
	Measurements []Measurement `json:"measurements" yaml:"measurements"`
}

// Report is one quantity-finding record over scraped report text. Each
// category (cases, hospitalizations, deaths) carries a span, the matched
// text, and the resolved count; absent categories are nil.
type Report struct {
	Sentence string `json:"sentence" yaml:"sentence"`

	CaseStart *int     `json:"case_start" yaml:"case_start,omitempty"`
	CaseEnd   *int     `json:"case_end" yaml:"case_end,omitempty"`
	CaseText  string   `json:"text_case,omitempty" yaml:"text_case,omitempty"`
	CaseValue *float64 `json:"value_case" yaml:"value_case,omitempty"`

	HospStart *int     `json:"hosp_start" yaml:"hosp_start,omitempty"`
	HospEnd   *int     `json:"hosp_end" yaml:"hosp_end,omitempty"`
	HospText  string   `json:"text_hosp,omitempty" yaml:"text_hosp,omitempty"`
	HospValue *float64 `json:"value_hosp" yaml:"value_hosp,omitempty"`

	DeathStart *int     `json:"death_start" yaml:"death_start,omitempty"`
	DeathEnd   *int     `json:"death_end" yaml:"death_end,omitempty"`
	DeathText  string   `json:"text_death,omitempty" yaml:"text_death,omitempty"`
	DeathValue *float64 `json:"value_death" yaml:"value_death,omitempty"`
}

// StoredMeasurement is a measurement annotated for the record store: the
// document it came from and the feature name under which the downstream
// set-algebra layer joins records.
type StoredMeasurement struct {
	Measurement `yaml:",inline"`

	// DocID identifies the source document.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// Feature is the label the extraction was run under; logic
	// operations join on it.
	Feature string `json:"feature" yaml:"feature"`
}
