package nlu

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockRe       = regexp.MustCompile(`(\d{1,2})[点时](\d{1,2})?分?`)
	afterMinuteRe = regexp.MustCompile(`(\d+)\s*分钟后`)
	afterHourRe   = regexp.MustCompile(`(\d+)\s*小时后`)
)

var relativeDays = []struct {
	word string
	days int
}{
	// 大后天 must precede 后天, longest word first.
	{"大后天", 3},
	{"后天", 2},
	{"明天", 1},
	{"今天", 0},
	{"昨天", -1},
	{"前天", -2},
}

// ParseTimeExpression resolves a relative or clock-time reference in text
// against now. It reports false when no time reference is present.
func ParseTimeExpression(text string, now time.Time) (time.Time, bool) {
	for _, rel := range relativeDays {
		if strings.Contains(text, rel.word) {
			return now.AddDate(0, 0, rel.days), true
		}
	}

	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if (strings.Contains(text, "下午") || strings.Contains(text, "晚上")) && hour < 12 {
			hour += 12
		} else if strings.Contains(text, "凌晨") && hour == 12 {
			hour = 0
		}
		if hour > 23 || minute > 59 {
			return time.Time{}, false
		}
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), true
	}

	if m := afterMinuteRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Minute), true
	}
	if m := afterHourRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Hour), true
	}

	return time.Time{}, false
}
