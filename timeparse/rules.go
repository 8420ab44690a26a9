package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/jonas747/when/rules"
)

// Custom hour rules for the natural language parser. The stock english rules
// require an explicit meridiem and otherwise lean AM; these accept a bare hour
// and interpret meridiem-less times between 1:00 and 11:59 as PM.

func Hour(s rules.Strategy) rules.Rule {
	overwrite := s == rules.Override

	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)(?:\W|^)(\d{1,2})\s*(am|pm)?(?:\W|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			if c.Hour != nil && !overwrite {
				return false, nil
			}

			hour, err := strconv.Atoi(strings.TrimSpace(m.Captures[0]))
			if err != nil || hour > 23 {
				return false, nil
			}

			c.Hour = pointer.ToInt(applyMeridiem(hour, m.Captures[1]))
			c.Minute = pointer.ToInt(0)
			return true, nil
		},
	}
}

func HourMinute(s rules.Strategy) rules.Rule {
	overwrite := s == rules.Override

	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)(?:\W|^)(\d{1,2})[:.]([0-5][0-9])\s*(am|pm)?(?:\W|$)`),
		Applier: func(m *rules.Match, c *rules.Context, o *rules.Options, ref time.Time) (bool, error) {
			if (c.Hour != nil || c.Minute != nil) && !overwrite {
				return false, nil
			}

			hour, err := strconv.Atoi(strings.TrimSpace(m.Captures[0]))
			if err != nil || hour > 23 {
				return false, nil
			}

			minute, err := strconv.Atoi(strings.TrimSpace(m.Captures[1]))
			if err != nil {
				return false, nil
			}

			c.Hour = pointer.ToInt(applyMeridiem(hour, m.Captures[2]))
			c.Minute = pointer.ToInt(minute)
			return true, nil
		},
	}
}
