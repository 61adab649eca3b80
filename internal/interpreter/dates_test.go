package interpreter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDueDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"month day", "exam on march 27", "2026-03-27"},
		{"day of month", "due the 27th of march", "2026-03-27"},
		{"day month without of", "due 27 march", "2026-03-27"},
		{"past date rolls to next year", "party on january 5", "2027-01-05"},
		{"in days", "submit in 3 days", "2026-03-07"},
		{"in weeks", "review in 2 weeks", "2026-03-18"},
		{"in months", "renew in 1 month", "2026-04-04"},
		{"this friday", "demo this friday", "2026-03-06"},
		{"next friday", "demo next friday", "2026-03-13"},
		{"next wednesday skips today", "sync next wednesday", "2026-03-11"},
		{"today", "finish today", "2026-03-04"},
		{"tomorrow", "finish tomorrow", "2026-03-05"},
		{"day after tomorrow", "finish the day after tomorrow", "2026-03-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDueDate(tt.text, testNow)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, 12, got.Hour())
		})
	}
}

func TestExtractDueDateNoDate(t *testing.T) {
	assert.Nil(t, extractDueDate("review the lecture slides", testNow))
}

func TestClampDay(t *testing.T) {
	assert.Equal(t, 28, clampDay(2026, time.February, 31))
	assert.Equal(t, 29, clampDay(2028, time.February, 31))
	assert.Equal(t, 15, clampDay(2026, time.April, 15))
}
