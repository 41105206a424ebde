package report

import (
	"sort"
	"strings"
)

// pitchTypePriority is the fixed display order for common pitch types,
// matched by case-insensitive substring, first match wins per slot. Types
// not matching any slot follow in lexicographic order.
var pitchTypePriority = []string{
	"Fastball",
	"Sinker",
	"Cutter",
	"Slider",
	"Curveball",
	"ChangeUp",
	"Sweeper",
	"Splitter",
	"Knuckleball",
}

// Aggregate groups a pitch batch by pitch type and computes per-type
// descriptive statistics. Each mean covers only pitches where that metric is
// present; max velocity is the maximum of present release speeds. An empty
// batch yields an empty slice.
func Aggregate(pitches []Pitch) []PitchTypeGroup {
	byType := make(map[string][]Pitch)
	var names []string
	for _, p := range pitches {
		name := p.Type()
		if _, seen := byType[name]; !seen {
			names = append(names, name)
		}
		byType[name] = append(byType[name], p)
	}

	groups := make([]PitchTypeGroup, 0, len(byType))
	for _, name := range sortPitchTypes(names) {
		members := byType[name]
		groups = append(groups, PitchTypeGroup{
			Name:         name,
			Count:        len(members),
			Pitches:      members,
			AvgVelocity:  meanOf(members, func(p Pitch) *float64 { return p.RelSpeed }),
			MaxVelocity:  maxOf(members, func(p Pitch) *float64 { return p.RelSpeed }),
			AvgSpinRate:  meanOf(members, func(p Pitch) *float64 { return p.SpinRate }),
			AvgIVB:       meanOf(members, func(p Pitch) *float64 { return p.InducedVertBreak }),
			AvgHB:        meanOf(members, func(p Pitch) *float64 { return p.HorzBreak }),
			AvgRelSide:   meanOf(members, func(p Pitch) *float64 { return p.RelSide }),
			AvgRelHeight: meanOf(members, func(p Pitch) *float64 { return p.RelHeight }),
			AvgExtension: meanOf(members, func(p Pitch) *float64 { return p.Extension }),
		})
	}

	return groups
}

// sortPitchTypes orders observed pitch type names by the priority table,
// then lexicographically.
func sortPitchTypes(names []string) []string {
	ordered := make([]string, 0, len(names))
	taken := make(map[string]bool, len(names))

	for _, priority := range pitchTypePriority {
		for _, name := range names {
			if !taken[name] && matchesAny(name, []string{strings.ToLower(priority)}) {
				ordered = append(ordered, name)
				taken[name] = true
				break
			}
		}
	}

	var remaining []string
	for _, name := range names {
		if !taken[name] {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(remaining)

	return append(ordered, remaining...)
}

// meanOf averages the selected metric over pitches where it is present.
// Returns nil when no pitch carries the metric.
func meanOf(pitches []Pitch, sel func(Pitch) *float64) *float64 {
	var sum float64
	var n int
	for _, p := range pitches {
		if v := sel(p); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// maxOf returns the maximum present value of the selected metric, or nil.
func maxOf(pitches []Pitch, sel func(Pitch) *float64) *float64 {
	var best *float64
	for _, p := range pitches {
		v := sel(p)
		if v == nil {
			continue
		}
		if best == nil || *v > *best {
			val := *v
			best = &val
		}
	}
	return best
}
