// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package finder

import (
	"regexp"
	"strings"
)

// SizeFinder locates size measurements: a number followed by a length or
// volume unit, optionally "x"-chained for multi-dimension forms
// ("3 x 4 cm"). Units are reported as coarse measurement classes so
// erase rules can exempt cc and inch expressions.
type SizeFinder struct{}

var reSize = regexp.MustCompile(`(?i)(\d+(\.\d+)?|\.\d+)(\s*x\s*(\d+(\.\d+)?|\.\d+))*\s*(?P<unit>millimeters?|centimeters?|inches|inch|mm3|cm3|mm|cm|ml|cc'?s?|in\b|ft\b)`)

func (f *SizeFinder) Name() string { return "size" }

func (f *SizeFinder) Find(sentence string) []Match {
	unitIdx := reSize.SubexpIndex("unit")
	var out []Match
	for _, loc := range reSize.FindAllStringSubmatchIndex(sentence, -1) {
		start, end := loc[0], loc[1]
		if digitAdjacent(sentence, start, end) {
			continue
		}
		unit := strings.ToLower(sentence[loc[2*unitIdx]:loc[2*unitIdx+1]])
		out = append(out, Match{
			Start: start,
			End:   end,
			Text:  sentence[start:end],
			Units: sizeClass(unit),
		})
	}
	return dedupe(sorted(out))
}

// sizeClass maps a raw unit token to its measurement class.
func sizeClass(unit string) string {
	switch {
	case strings.HasPrefix(unit, "cc"), unit == "ml", unit == "mm3", unit == "cm3":
		return "CUBIC_MILLIMETERS"
	case unit == "mm", strings.HasPrefix(unit, "millimeter"),
		unit == "in", unit == "inch", unit == "inches":
		return "MILLIMETERS"
	case unit == "cm", strings.HasPrefix(unit, "centimeter"):
		return "CENTIMETERS"
	case unit == "ft":
		return "FEET"
	}
	return strings.ToUpper(unit)
}
