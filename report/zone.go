package report

// Strike-zone geometry, defined in inches and converted to feet to match
// plate-crossing coordinates.
const (
	zoneHalfWidthIn = 9.97
	zoneBottomIn    = 18.00
	zoneTopIn       = 40.53
	inchesPerFoot   = 12.0
)

// ZoneRate is one in-zone hit rate. Total counts only pitches with both
// plate-crossing coordinates present.
type ZoneRate struct {
	InZone  int     `json:"in_zone"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// TypeZoneRate is a pitch type's zone rate.
type TypeZoneRate struct {
	PitchType string `json:"pitch_type"`
	ZoneRate
}

// ZoneSummary holds per-type and overall zone rates.
type ZoneSummary struct {
	PerType []TypeZoneRate `json:"per_type"`
	Overall ZoneRate       `json:"overall"`
}

// ZoneRates classifies each located pitch against the fixed strike zone and
// computes hit rates per pitch type and overall. Pitches missing either
// plate coordinate are excluded from numerator and denominator both.
func ZoneRates(pitches []Pitch) ZoneSummary {
	type tally struct {
		inZone int
		total  int
	}

	byType := make(map[string]*tally)
	names := make([]string, 0)
	var overall tally

	for _, p := range pitches {
		name := p.Type()
		t, ok := byType[name]
		if !ok {
			t = &tally{}
			byType[name] = t
			names = append(names, name)
		}

		if p.PlateLocSide == nil || p.PlateLocHeight == nil {
			continue
		}
		t.total++
		overall.total++
		if inStrikeZone(*p.PlateLocSide, *p.PlateLocHeight) {
			t.inZone++
			overall.inZone++
		}
	}

	summary := ZoneSummary{
		Overall: ZoneRate{
			InZone:  overall.inZone,
			Total:   overall.total,
			Percent: ratePercent(overall.inZone, overall.total),
		},
	}
	for _, name := range sortPitchTypes(names) {
		t := byType[name]
		summary.PerType = append(summary.PerType, TypeZoneRate{
			PitchType: name,
			ZoneRate: ZoneRate{
				InZone:  t.inZone,
				Total:   t.total,
				Percent: ratePercent(t.inZone, t.total),
			},
		})
	}

	return summary
}

// inStrikeZone tests plate-crossing coordinates (feet) against the zone.
// The horizontal coordinate is sign-inverted first: raw data is stored from
// the pitcher's perspective and the zone is defined batter's-eye-view.
// Boundary values are in-zone.
func inStrikeZone(plateSide, plateHeight float64) bool {
	side := -plateSide
	halfWidth := zoneHalfWidthIn / inchesPerFoot
	bottom := zoneBottomIn / inchesPerFoot
	top := zoneTopIn / inchesPerFoot

	return side >= -halfWidth && side <= halfWidth &&
		plateHeight >= bottom && plateHeight <= top
}

// ratePercent divides safely: an empty denominator is a 0% rate, not an
// error.
func ratePercent(inZone, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(inZone) / float64(total) * 100
}
