package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestISOWeekKeyYearBoundaries(t *testing.T) {
	// 2021-01-03 (Sunday) still belongs to ISO week 53 of 2020.
	assert.Equal(t, "2020-W53", ISOWeekKey(d(2021, 1, 3)))
	assert.Equal(t, "2021-W01", ISOWeekKey(d(2021, 1, 4)))
	// 2024-12-30 (Monday) is week 1 of 2025.
	assert.Equal(t, "2025-W01", ISOWeekKey(d(2024, 12, 30)))
	assert.Equal(t, "2024-W52", ISOWeekKey(d(2024, 12, 29)))
}

func TestSameISOWeek(t *testing.T) {
	monday := d(2024, 3, 4)
	assert.True(t, SameISOWeek(monday, d(2024, 3, 9)))   // Saturday
	assert.True(t, SameISOWeek(monday, d(2024, 3, 10)))  // Sunday
	assert.False(t, SameISOWeek(monday, d(2024, 3, 11))) // next Monday
	assert.False(t, SameISOWeek(d(2024, 3, 3), monday))  // Sunday before
}

func TestDateOfUsesLocation(t *testing.T) {
	jkt := time.FixedZone("WIB", 7*3600)
	// 20:00 UTC is already the next day in UTC+7.
	ts := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, d(2024, 5, 2), DateOf(ts, jkt))
	assert.Equal(t, d(2024, 5, 1), DateOf(ts, time.UTC))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, d(2024, 2, 29), got)

	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
	_, err = ParseDate("  ")
	assert.Error(t, err)
}

func TestDaysBetweenAndWeekBounds(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(d(2024, 1, 30), d(2024, 2, 2)))
	assert.Equal(t, -1, DaysBetween(d(2024, 1, 2), d(2024, 1, 1)))

	mon, sun := WeekBounds(d(2024, 3, 7))
	assert.Equal(t, d(2024, 3, 4), mon)
	assert.Equal(t, d(2024, 3, 10), sun)
	mon, _ = WeekBounds(d(2024, 3, 10))
	assert.Equal(t, d(2024, 3, 4), mon)
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDisplay(d(2024, 3, 5)))
}
