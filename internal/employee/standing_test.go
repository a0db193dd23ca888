package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(n int) *int { return &n }

func TestDerive(t *testing.T) {
	tests := []struct {
		name       string
		rating     *int
		terminated string
		want       Standing
		label      string
	}{
		{"no fields", nil, "", Active{}, "Active"},
		{"blank termination", nil, "   ", Active{}, "Active"},
		{"excellent", ptr(5), "", Rated{Level: 5}, "Excellent"},
		{"good", ptr(4), "", Rated{Level: 4}, "Good"},
		{"average", ptr(3), "", Rated{Level: 3}, "Average"},
		{"needs improvement", ptr(2), "", Rated{Level: 2}, "Needs Improvement"},
		{"lowest", ptr(1), "", Rated{Level: 1}, "Needs Improvement"},
		{"clamped high", ptr(9), "", Rated{Level: 5}, "Excellent"},
		{"clamped low", ptr(-3), "", Rated{Level: 1}, "Needs Improvement"},
		{"terminated", nil, "2025-06-30", Terminated{Date: "2025-06-30"}, "Terminated"},
		{"termination wins", ptr(5), "2025-06-30", Terminated{Date: "2025-06-30"}, "Terminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.rating, tt.terminated)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, got.Label())
		})
	}
}

func TestParseRating(t *testing.T) {
	r, err := ParseRating("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParseRating(" 4 ")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 4, *r)

	_, err = ParseRating("six")
	assert.Error(t, err)
	_, err = ParseRating("6")
	assert.Error(t, err)
	_, err = ParseRating("0")
	assert.Error(t, err)
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate(""))
	assert.NoError(t, ValidateDate("2025-07-22"))
	assert.Error(t, ValidateDate("22/07/2025"))
	assert.Error(t, ValidateDate("2025-13-01"))
}
