package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAttachmentName tests safe filename construction
func TestAttachmentName(t *testing.T) {
	tests := []struct {
		name    string
		pitcher string
		date    string
		want    string
	}{
		{"plain name", "John Smith", "2025-04-12", "John_Smith_Report_2025-04-12.pdf"},
		{"hyphenated name", "Jean-Luc Picard", "2025-04-12", "Jean_Luc_Picard_Report_2025-04-12.pdf"},
		{"strips punctuation", "O'Brien, Miles", "2025-04-12", "OBrien_Miles_Report_2025-04-12.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachmentName(tt.pitcher, tt.date))
		})
	}
}

// TestSubject tests the subject line
func TestSubject(t *testing.T) {
	assert.Equal(t, "Pitching Report: John Smith (2025-04-12)",
		Subject("John Smith", "2025-04-12"))
}

// TestBody tests the body summary
func TestBody(t *testing.T) {
	assert.Equal(t,
		"Attached is the pitching report for John Smith from 2025-04-12 (42 pitches tracked).\n",
		Body("John Smith", "2025-04-12", 42))
}
