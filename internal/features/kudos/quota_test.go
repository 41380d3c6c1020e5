package kudos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthStartUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "середина месяца",
			in:   time.Date(2026, 8, 15, 13, 45, 0, 0, time.UTC),
			want: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "первый момент месяца",
			in:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "последняя наносекунда месяца",
			in:   time.Date(2026, 8, 31, 23, 59, 59, 999999999, time.UTC),
			want: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "29 февраля високосного года",
			in:   time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "локальное время приводится к UTC",
			// 31 июля 23:00 в UTC-3 — это уже 1 августа 02:00 UTC
			in:   time.Date(2026, 7, 31, 23, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
			want: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthStartUTC(tt.in))
		})
	}
}

func TestNextMonthStartUTC(t *testing.T) {
	assert.Equal(t,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		NextMonthStartUTC(time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)),
	)

	// Переход через год
	assert.Equal(t,
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		NextMonthStartUTC(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)),
	)
}

func TestSameQuotaWindow(t *testing.T) {
	a := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameQuotaWindow(a, b))
	assert.False(t, SameQuotaWindow(b, c))

	// Два момента по разные стороны границы месяца в локальном поясе,
	// но в одном окне UTC
	local := time.FixedZone("NPT", 5*60*60+45*60)
	x := time.Date(2026, 9, 1, 3, 0, 0, 0, local)  // 31 августа 21:15 UTC
	y := time.Date(2026, 8, 31, 12, 0, 0, 0, local)
	assert.True(t, SameQuotaWindow(x, y))
}

func TestQuotaStatusRemaining(t *testing.T) {
	assert.Equal(t, 3, QuotaStatus{Used: 0, Limit: 3}.Remaining())
	assert.Equal(t, 1, QuotaStatus{Used: 2, Limit: 3}.Remaining())
	assert.Equal(t, 0, QuotaStatus{Used: 3, Limit: 3}.Remaining())
	// Остаток не уходит в минус, даже если лимит понизили задним числом
	assert.Equal(t, 0, QuotaStatus{Used: 5, Limit: 3}.Remaining())
}

func TestValidBadge(t *testing.T) {
	require.NotEmpty(t, Badges)

	for _, b := range Badges {
		assert.True(t, ValidBadge(b), b)
	}
	assert.True(t, ValidBadge(""), "пустой бейдж допустим")
	assert.False(t, ValidBadge("Rockstar"))
	assert.False(t, ValidBadge("team player"), "регистр имеет значение")
}
