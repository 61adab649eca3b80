package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday, "sunday": time.Sunday,
}

const monthsPattern = `january|february|march|april|may|june|july|august|september|october|november|december`
const weekdaysPattern = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

var (
	// "march 27", "27 march", "27th of march"
	reMonthDay = regexp.MustCompile(`\b(` + monthsPattern + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	reDayMonth = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthsPattern + `)\b`)
	// "in 2 weeks", "in 3 days"
	reRelative = regexp.MustCompile(`\bin\s+(\d+)\s+(day|days|week|weeks|month|months)\b`)
	// "next monday", "this friday"
	reWeekday = regexp.MustCompile(`\b(next|this)\s+(` + weekdaysPattern + `)\b`)
	// bare words
	reToday            = regexp.MustCompile(`\btoday\b`)
	reTomorrow         = regexp.MustCompile(`\btomorrow\b`)
	reDayAfterTomorrow = regexp.MustCompile(`\bday\s+after\s+tomorrow\b`)
)

func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}

func safeDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, clampDay(year, month, day), 12, 0, 0, 0, time.UTC)
}

func atNoonUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// nextWeekday returns the next occurrence of the weekday. forceNext pushes
// the result into the following week, matching "next monday" vs "this monday".
func nextWeekday(day time.Weekday, now time.Time, forceNext bool) time.Time {
	ahead := (int(day) - int(now.Weekday()) + 7) % 7
	if forceNext {
		if ahead == 0 {
			ahead = 7
		} else {
			ahead += 7
		}
	}
	return atNoonUTC(now.AddDate(0, 0, ahead))
}

// explicitDate resolves a month/day pair; dates already past roll to next year.
func explicitDate(month time.Month, day int, now time.Time) time.Time {
	year := now.Year()
	if month < now.Month() || (month == now.Month() && day < now.Day()) {
		year++
	}
	return safeDate(year, month, day)
}

// extractDueDate tries the date patterns in order of specificity and returns
// nil when the text carries no recognizable date.
func extractDueDate(text string, now time.Time) *time.Time {
	lower := strings.ToLower(text)

	if m := reDayMonth.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[1])
		due := explicitDate(months[m[2]], day, now)
		return &due
	}
	if m := reMonthDay.FindStringSubmatch(lower); m != nil {
		day, _ := strconv.Atoi(m[2])
		due := explicitDate(months[m[1]], day, now)
		return &due
	}

	if m := reRelative.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		var due time.Time
		switch {
		case strings.HasPrefix(m[2], "day"):
			due = now.AddDate(0, 0, n)
		case strings.HasPrefix(m[2], "week"):
			due = now.AddDate(0, 0, 7*n)
		default:
			due = now.AddDate(0, n, 0)
		}
		due = atNoonUTC(due)
		return &due
	}

	if m := reWeekday.FindStringSubmatch(lower); m != nil {
		due := nextWeekday(weekdays[m[2]], now, m[1] == "next")
		return &due
	}

	if reDayAfterTomorrow.MatchString(lower) {
		due := atNoonUTC(now.AddDate(0, 0, 2))
		return &due
	}
	if reTomorrow.MatchString(lower) {
		due := atNoonUTC(now.AddDate(0, 0, 1))
		return &due
	}
	if reToday.MatchString(lower) {
		due := atNoonUTC(now)
		return &due
	}

	return nil
}
