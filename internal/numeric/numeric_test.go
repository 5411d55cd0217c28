// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package numeric

import (
	"errors"
	"testing"

	"github.com/pdiddy/extract-engine/pkg/types"
)

func TestParseGroupedInt(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, false},
		{"1,200", 1200, false},
		{"6,200,000", 6200000, false},
		{"6,200,00", 0, true},
		{"1,23", 0, true},
		{",200", 0, true},
		{"12.5", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGroupedInt(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGroupedInt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, types.ErrInvalidNumber) {
					t.Errorf("error does not wrap ErrInvalidNumber: %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseGroupedInt(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSpelled(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"seven", 7, false},
		{"nineteen", 19, false},
		{"twenty", 20, false},
		{"twenty-four", 24, false},
		{"forty four", 44, false},
		{"ninety-nine", 99, false},
		{"two hundred", 200, false},
		{"one hundred and six", 106, false},
		{"three-hundred-twenty-one", 321, false},
		{"banana", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpelled(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpelled(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseSpelled(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseOrdinal(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"first", 1, false},
		{"third", 3, false},
		{"twelfth", 12, false},
		{"twentieth", 20, false},
		{"1st", 1, false},
		{"21st", 21, false},
		{"40th", 40, false},
		{"fourth of july", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrdinal(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrdinal(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseOrdinal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMagnitude(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"3.4 million", 3.4e6, false},
		{"2 thousand", 2000, false},
		{"1.5 Million", 1.5e6, false},
		{"million", 0, true},
		{"3.4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMagnitude(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMagnitude(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseMagnitude(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFraction(t *testing.T) {
	num, denom, err := ParseFraction("110/70")
	if err != nil {
		t.Fatal(err)
	}
	if num != 110 || denom != 70 {
		t.Errorf("ParseFraction(110/70) = %d/%d, want 110/70", num, denom)
	}

	if _, _, err := ParseFraction("110-70"); err == nil {
		t.Error("ParseFraction(110-70) succeeded, want error")
	}
}

func TestParseSuffixed(t *testing.T) {
	tests := []struct {
		num    string
		suffix string
		want   float64
	}{
		{"20", "k", 20000},
		{"20", "K", 20000},
		{"90", "'s", 90},
		{"90", "s", 90},
		{"98.6", "", 98.6},
		{"1,200", "", 1200},
	}

	for _, tt := range tests {
		got, err := ParseSuffixed(tt.num, tt.suffix)
		if err != nil {
			t.Fatalf("ParseSuffixed(%q, %q): %v", tt.num, tt.suffix, err)
		}
		if got != tt.want {
			t.Errorf("ParseSuffixed(%q, %q) = %v, want %v", tt.num, tt.suffix, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		kind  Kind
		token string
		want  float64
	}{
		{KindInteger, "1,200", 1200},
		{KindSpelled, "forty-four", 44},
		{KindOrdinal, "sixth", 6},
		{KindNoValue, "no", 0},
		{KindMagnitude, "3.4 million", 3.4e6},
	}

	for _, tt := range tests {
		got, err := Resolve(tt.kind, tt.token)
		if err != nil {
			t.Fatalf("Resolve(%d, %q): %v", tt.kind, tt.token, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(%d, %q) = %v, want %v", tt.kind, tt.token, got, tt.want)
		}
	}
}
