package main

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateDateFormat tests date validation
func TestValidateDateFormat(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"valid date", "2025-04-12", true},
		{"empty string", "", false},
		{"wrong separator", "2025/04/12", false},
		{"missing day", "2025-04", false},
		{"impossible date", "2025-13-45", false},
		{"text", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateDateFormat(tt.date))
		})
	}
}

// TestWriteError tests the JSON error envelope
func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, "Failed to query dates", 500)

	assert.Equal(t, 500, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to query dates", body.Error)
}

// TestWriteJSON tests the success envelope
func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, map[string]int{"count": 3})

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"count": 3}`, rec.Body.String())
}

// TestMatchRate tests the roster match percentage
func TestMatchRate(t *testing.T) {
	assert.Equal(t, 0.0, matchRate(0, 0))
	assert.Equal(t, 50.0, matchRate(1, 2))
	assert.Equal(t, 100.0, matchRate(3, 3))
}
