// Package timeparse resolves free-text time expressions ("9", "2:30",
// "tomorrow at noon") against a reference timezone into an absolute instant.
//
// Parsing is an ordered pipeline with first-success semantics: a bare-clock
// heuristic for digit-leading input, then a natural language parser biased
// towards PM for ambiguous clock times.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/jonas747/when"
	"github.com/jonas747/when/rules"
	wcommon "github.com/jonas747/when/rules/common"
	"github.com/jonas747/when/rules/en"
)

// ErrUnparseable signals input no pipeline stage could resolve. Callers must
// not mutate any state on this path.
const ErrUnparseable = errors.Sentinel("could not parse time")

var parser = newParser()

func newParser() *when.Parser {
	w := when.New(&rules.Options{
		Distance:     10,
		MatchByOrder: true,
	})

	w.Add(
		en.Weekday(rules.Override),
		en.CasualDate(rules.Override),
		en.CasualTime(rules.Override),
		Hour(rules.Override),
		HourMinute(rules.Override),
		en.Deadline(rules.Override),
		en.ExactMonthDate(rules.Override),
	)
	w.Add(wcommon.All...)

	return w
}

// clockRE matches input that is nothing but a bare clock time, e.g. "9",
// "9:30", "9 pm", "09.30pm".
var clockRE = regexp.MustCompile(`^(\d{1,2})(?:[:.](\d{2}))?\s*(?i:(am|pm))?\.?$`)

// Parse resolves input relative to now in the reference location loc. The
// returned instant is expressed in loc so the stored time stays unambiguous.
func Parse(input string, loc *time.Location, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnparseable
	}

	nowLocal := now.In(loc)

	if input[0] >= '0' && input[0] <= '9' {
		if t, ok := parseClock(input, nowLocal); ok {
			return t, nil
		}
	}

	r, err := parser.Parse(input, nowLocal)
	if err != nil || r == nil {
		return time.Time{}, ErrUnparseable
	}

	return r.Time.In(loc), nil
}

// parseClock interprets input as a bare clock time. Hours 1-11 without an
// explicit meridiem default to PM. The result is always strictly in the
// future: a time of day that has already passed today rolls over to tomorrow.
func parseClock(input string, nowLocal time.Time) (time.Time, bool) {
	m := clockRE.FindStringSubmatch(input)
	if m == nil {
		return time.Time{}, false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}
	if hour > 12 && m[3] != "" {
		// "13 pm" and friends
		return time.Time{}, false
	}

	hour = applyMeridiem(hour, m[3])

	t := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), hour, minute, 0, 0, nowLocal.Location())
	if !t.After(nowLocal) {
		t = t.AddDate(0, 0, 1)
	}

	return t, true
}

// applyMeridiem normalizes an hour given an optional am/pm marker. With no
// marker, hours between 1 and 11 are taken to mean PM.
func applyMeridiem(hour int, meridiem string) int {
	switch strings.ToLower(strings.TrimSpace(meridiem)) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	default:
		if hour >= 1 && hour < 12 {
			hour += 12
		}
	}

	return hour
}
