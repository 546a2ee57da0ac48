package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func midnight(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{"ISO date", "2025-01-01", ptr(midnight(2025, time.January, 2))},
		{"ISO datetime", "2025-06-15T18:30:00Z", ptr(midnight(2025, time.June, 16))},
		{"day first when first component exceeds 12", "31/01/2025", ptr(midnight(2025, time.February, 1))},
		{"month first when second component exceeds 12", "01/31/2025", ptr(midnight(2025, time.February, 1))},
		{"ambiguous defaults to day first", "05/03/2025", ptr(midnight(2025, time.March, 6))},
		{"dash separators", "31-01-2025", ptr(midnight(2025, time.February, 1))},
		{"two digit year promoted", "31/01/25", ptr(midnight(2025, time.February, 1))},
		{"month end rolls to next month", "31/12/2025", ptr(midnight(2026, time.January, 1))},
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"not a date", "not a date", nil},
		{"non numeric parts", "aa/bb/cc", nil},
		{"too few parts", "12/2025", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestComputeIsAlwaysMidnight(t *testing.T) {
	got := Compute("2025-06-15T18:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 0, got.Second())
}

func ptr(t time.Time) *time.Time { return &t }
