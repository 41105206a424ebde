package roster

import (
	"strings"

	"pitch-reports/report"
)

// Match pairs a roster prospect with the pitcher name as stored in the
// warehouse, so downstream lookups can query tracking data directly.
type Match struct {
	Prospect      Prospect
	WarehouseName string
}

// MatchPitchers pairs roster pitchers with warehouse pitcher names for one
// event date. Warehouse names arrive as "Last, First" and roster names as
// display names; matching normalizes both and ignores case. The set
// difference comes back in both directions: prospects with no tracking data,
// and warehouse names absent from the roster, in warehouse order.
func MatchPitchers(prospects []Prospect, warehouseNames []string) (matched []Match, unmatched []Prospect, warehouseOnly []string) {
	byName := make(map[string]string, len(warehouseNames))
	for _, wn := range warehouseNames {
		byName[normalizeName(wn)] = wn
	}

	claimed := make(map[string]bool, len(prospects))
	for _, p := range prospects {
		key := normalizeName(p.Name)
		wn, ok := byName[key]
		if !ok {
			unmatched = append(unmatched, p)
			continue
		}
		claimed[key] = true
		matched = append(matched, Match{Prospect: p, WarehouseName: wn})
	}

	for _, wn := range warehouseNames {
		if !claimed[normalizeName(wn)] {
			warehouseOnly = append(warehouseOnly, wn)
		}
	}

	return matched, unmatched, warehouseOnly
}

func normalizeName(name string) string {
	return strings.ToLower(report.FormatPitcherName(name))
}
