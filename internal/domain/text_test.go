package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2023-05-01T12:00:00Z", "2023-05-01"},
		{"2019-12-31T23:59:59+09:00", "2019-12-31"},
		{"2023-05-01", "2023-05-01"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(tt.input))
		})
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\nc\r\n", NormalizeLineEndings("a\nb\r\nc\r", LineEndingCRLF))
	assert.Equal(t, "a\nb\nc\n", NormalizeLineEndings("a\r\nb\nc\r\n", LineEndingLF))
	// Already normalized text is left as is.
	assert.Equal(t, "x\r\n", NormalizeLineEndings("x\r\n", LineEndingCRLF))
}

func TestSprintName(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected string
	}{
		{
			name:     "same year",
			start:    time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
			expected: "02 Jan - 16 Jan 2024",
		},
		{
			name:     "across years",
			start:    time.Date(2023, time.December, 25, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
			expected: "25 Dec 2023 - 08 Jan 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SprintName(tt.start, tt.end))
		})
	}
}
