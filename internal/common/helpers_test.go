package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeKudos(t *testing.T) {
	assert.Equal(t, "kudo", PluralizeKudos(1))
	assert.Equal(t, "kudos", PluralizeKudos(0))
	assert.Equal(t, "kudos", PluralizeKudos(3))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "1 point", FormatPoints(1))
	assert.Equal(t, "150 points", FormatPoints(150))
}

func TestFormatPointsDelta(t *testing.T) {
	assert.Equal(t, "+5 points", FormatPointsDelta(5))
	assert.Equal(t, "+0 points", FormatPointsDelta(0))
	assert.Equal(t, "-50 points", FormatPointsDelta(-50))
}

func TestYearsOfService(t *testing.T) {
	hire := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"до годовщины", time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC), 5},
		{"день годовщины", time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), 6},
		{"после годовщины", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 6},
		{"первый год ещё не прошёл", time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), 0},
		{"дата найма в будущем", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearsOfService(hire, tt.now))
		})
	}
}

func TestSameCalendarDay(t *testing.T) {
	a := time.Date(1990, 3, 8, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 3, 8, 15, 30, 0, 0, time.UTC)
	c := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(a, b))
	assert.False(t, SameCalendarDay(a, c))
}

func TestFormatCalendarDay(t *testing.T) {
	assert.Equal(t, "March 8", FormatCalendarDay(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel...", Truncate("hello world", 3))
	// Многобайтовые символы не режутся посередине
	assert.Equal(t, "при...", Truncate("признание", 3))
}
