package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nairobi = time.FixedZone("EAT", 3*3600)

func TestTodayLocalUsesLocalComponents(t *testing.T) {
	// 21:30 UTC is already the next day in UTC+3.
	now := time.Date(2024, 6, 1, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-02", TodayLocal(now, nairobi))
	assert.Equal(t, "2024-06-01", TodayLocal(now, time.UTC))
}

func TestLocalDateOf(t *testing.T) {
	tests := []struct {
		name string
		ts   string
		want string
		ok   bool
	}{
		{"rfc3339 with offset", "2024-06-01T23:50:00+03:00", "2024-06-01", true},
		{"utc instant shifts forward", "2024-06-01T22:10:00Z", "2024-06-02", true},
		{"space separated", "2024-06-01 10:00:00", "2024-06-01", true},
		{"zoneless near midnight stays local", "2024-06-01 23:50:00", "2024-06-01", true},
		{"zoneless iso near midnight stays local", "2024-06-01T23:50:00", "2024-06-01", true},
		{"bare date", "2024-06-01", "2024-06-01", true},
		{"empty", "", "", false},
		{"garbage", "not-a-date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LocalDateOf(tt.ts, nairobi)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsOnDateNeverMatchesMalformedInput(t *testing.T) {
	assert.False(t, IsOnDate("", "2024-06-01", nairobi))
	assert.False(t, IsOnDate("not-a-date", "2024-06-01", nairobi))
	assert.False(t, IsOnDate("2024-06-01T10:00:00Z", "", nairobi))
}

func TestIsOnDateRespectsTimezone(t *testing.T) {
	// 00:10 local on June 2nd must not match June 1st even though the
	// UTC date is still June 1st.
	assert.True(t, IsOnDate("2024-06-02T00:10:00+03:00", "2024-06-02", nairobi))
	assert.False(t, IsOnDate("2024-06-02T00:10:00+03:00", "2024-06-01", nairobi))
}
