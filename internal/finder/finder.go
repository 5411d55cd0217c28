// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package finder locates date, time, duration, and size-measurement
// expressions in a sentence. The extraction engine consumes these spans
// only to erase them before matching, so the quantities they contain
// cannot masquerade as query values. Finders are resolved once at engine
// construction and injected; nothing here is looked up at call time.
package finder

import "sort"

// Match is one located expression. Units carries a finder-specific tag
// ("MILLIMETERS", "hr", "month_day") that erase rules may consult.
type Match struct {
	Start int
	End   int
	Text  string
	Units string
}

// Finder locates one class of expression within a sentence. Find returns
// matches ordered by start offset; implementations are synchronous and
// side-effect-free.
type Finder interface {
	Name() string
	Find(sentence string) []Match
}

// Defaults returns the standard finder set: dates, clock times,
// durations, and size measurements.
func Defaults() []Finder {
	return []Finder{
		&DateFinder{},
		&TimeFinder{},
		&DurationFinder{},
		&SizeFinder{},
	}
}

// ByName selects a finder from fs, or nil when absent.
func ByName(fs []Finder, name string) Finder {
	for _, f := range fs {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func sorted(ms []Match) []Match {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Start != ms[j].Start {
			return ms[i].Start < ms[j].Start
		}
		return ms[i].End < ms[j].End
	})
	return ms
}

// dedupe drops matches fully contained in an earlier, wider match.
func dedupe(ms []Match) []Match {
	var out []Match
	for _, m := range ms {
		contained := false
		for _, k := range out {
			if m.Start >= k.Start && m.End <= k.End {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, m)
		}
	}
	return out
}
