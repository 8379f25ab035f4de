package main

import "testing"

func TestParseCardArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected int
		hasError bool
	}{
		{
			name:     "Five cards",
			input:    []string{"SA", "SK", "SQ", "SJ", "ST"},
			expected: 5,
			hasError: false,
		},
		{
			name:     "Two cards",
			input:    []string{"SA", "HA"},
			expected: 2,
			hasError: false,
		},
		{
			name:     "Lowercase codes",
			input:    []string{"sa", "hk"},
			expected: 2,
			hasError: false,
		},
		{
			name:     "Invalid code",
			input:    []string{"SA", "XX"},
			hasError: true,
		},
		{
			name:     "Rank before suit",
			input:    []string{"AS"},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := parseCardArgs(tt.input)

			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if len(cards) != tt.expected {
				t.Errorf("Expected %d cards, got %d", tt.expected, len(cards))
			}
		})
	}
}
