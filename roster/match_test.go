package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchPitchers tests name normalization between roster and warehouse
func TestMatchPitchers(t *testing.T) {
	prospects := []Prospect{
		{Name: "John Smith"},
		{Name: "carlos rodriguez"},
		{Name: "Mike Jones"},
	}
	warehouseNames := []string{
		"Smith, John",
		"Rodriguez, Carlos",
		"Williams, Ted",
	}

	matched, unmatched, warehouseOnly := MatchPitchers(prospects, warehouseNames)

	require.Len(t, matched, 2)
	assert.Equal(t, "John Smith", matched[0].Prospect.Name)
	assert.Equal(t, "Smith, John", matched[0].WarehouseName)
	assert.Equal(t, "Rodriguez, Carlos", matched[1].WarehouseName)

	require.Len(t, unmatched, 1)
	assert.Equal(t, "Mike Jones", unmatched[0].Name)

	assert.Equal(t, []string{"Williams, Ted"}, warehouseOnly)
}

// TestMatchPitchersEmpty tests empty inputs
func TestMatchPitchersEmpty(t *testing.T) {
	matched, unmatched, warehouseOnly := MatchPitchers(nil, []string{"Smith, John"})
	assert.Empty(t, matched)
	assert.Empty(t, unmatched)
	assert.Equal(t, []string{"Smith, John"}, warehouseOnly)

	matched, unmatched, warehouseOnly = MatchPitchers([]Prospect{{Name: "John Smith"}}, nil)
	assert.Empty(t, matched)
	require.Len(t, unmatched, 1)
	assert.Empty(t, warehouseOnly)
}
