package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pitch-reports/report"
)

// TestLevelFilter tests cohort selection clauses
func TestLevelFilter(t *testing.T) {
	tests := []struct {
		name       string
		level      report.Level
		wantClause string
		wantArg    string
	}{
		{"D1 cuts on level", report.LevelD1, "level = ?", "D1"},
		{"D2 cuts on level", report.LevelD2, "level = ?", "D2"},
		{"D3 cuts on level", report.LevelD3, "level = ?", "D3"},
		{"SEC cuts on league", report.LevelSEC, "league = ?", "SEC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, arg := levelFilter(tt.level)
			assert.Equal(t, tt.wantClause, clause)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}
