package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeLabel(t *testing.T) {
	year, month := 2024, 3

	tests := []struct {
		name   string
		locale string
		year   *int
		month  *int
		want   string
	}{
		{"year and month", "en", &year, &month, "March 2024"},
		{"year only", "en", &year, nil, "2024"},
		{"month only", "en", nil, &month, "March"},
		{"all time", "en", nil, nil, "All periods"},
		{"all time in arabic", "ar", nil, nil, "كل الفترات"},
		{"unknown locale falls back", "de", nil, nil, "All periods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeLabel(tt.locale, tt.year, tt.month))
		})
	}
}
