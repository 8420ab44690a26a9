package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestParseBareClock(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")
	// a wednesday, 10:00 local
	now := time.Date(2022, 3, 16, 10, 0, 0, 0, loc)

	cases := []struct {
		input string
		want  time.Time
	}{
		// meridiem-less hours default to PM
		{"9", time.Date(2022, 3, 16, 21, 0, 0, 0, loc)},
		{"2:30", time.Date(2022, 3, 16, 14, 30, 0, 0, loc)},
		{"2.30", time.Date(2022, 3, 16, 14, 30, 0, 0, loc)},
		// explicit meridiems are honored
		{"9 am", time.Date(2022, 3, 17, 9, 0, 0, 0, loc)}, // 9:00 already passed, rolls over
		{"11am", time.Date(2022, 3, 16, 11, 0, 0, 0, loc)},
		{"9pm", time.Date(2022, 3, 16, 21, 0, 0, 0, loc)},
		// 12 and up are taken literally
		{"12", time.Date(2022, 3, 16, 12, 0, 0, 0, loc)},
		{"17:15", time.Date(2022, 3, 16, 17, 15, 0, 0, loc)},
		{"12 am", time.Date(2022, 3, 17, 0, 0, 0, 0, loc)},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			got, err := Parse(c.input, loc, now)
			require.NoError(t, err)
			assert.True(t, c.want.Equal(got), "want %s, got %s", c.want, got)
		})
	}
}

func TestParseRollsOverToNextDay(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")
	now := time.Date(2022, 3, 16, 22, 0, 0, 0, loc)

	got, err := Parse("9", loc, now)
	require.NoError(t, err)

	want := time.Date(2022, 3, 17, 21, 0, 0, 0, loc)
	assert.True(t, want.Equal(got), "21:00 already passed, expected tomorrow 21:00, got %s", got)
}

func TestParseNaturalLanguageFallback(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")
	now := time.Date(2022, 3, 16, 10, 0, 0, 0, loc)

	got, err := Parse("tomorrow at 7pm", loc, now)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Day())
	assert.Equal(t, 19, got.Hour())

	// PM bias applies to the fallback parser too
	got, err = Parse("tomorrow at 2:30", loc, now)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestParseFailure(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")
	now := time.Date(2022, 3, 16, 10, 0, 0, 0, loc)

	for _, input := range []string{"", "   ", "gibberish words", "whenever works"} {
		_, err := Parse(input, loc, now)
		assert.ErrorIs(t, err, ErrUnparseable, "input %q should not parse", input)
	}
}

func TestParseResultInReferenceZone(t *testing.T) {
	tokyo := mustLoadLocation(t, "Asia/Tokyo")
	now := time.Date(2022, 3, 16, 1, 0, 0, 0, time.UTC) // 10:00 in Tokyo

	got, err := Parse("9", tokyo, now)
	require.NoError(t, err)

	assert.Equal(t, tokyo.String(), got.Location().String(), "result should be expressed in the reference zone")
	assert.Equal(t, 21, got.Hour())
	assert.Equal(t, 16, got.Day())
}

func TestApplyMeridiem(t *testing.T) {
	cases := []struct {
		hour     int
		meridiem string
		want     int
	}{
		{9, "", 21},
		{11, "", 23},
		{12, "", 12},
		{0, "", 0},
		{13, "", 13},
		{9, "am", 9},
		{12, "am", 0},
		{9, "pm", 21},
		{12, "pm", 12},
		{9, "PM", 21},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, applyMeridiem(c.hour, c.meridiem), "hour %d %q", c.hour, c.meridiem)
	}
}
