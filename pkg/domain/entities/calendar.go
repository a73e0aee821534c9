package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WorkCalendar decides which dates count toward lead time offsets
type WorkCalendar struct {
	calendarID  string
	workingDays [7]bool // indexed by time.Weekday
	holidays    map[time.Time]struct{}
}

// NewWorkCalendar creates a calendar working on the given weekdays, minus the
// holidays. At least one weekday must be a working day.
func NewWorkCalendar(calendarID string, workingDays []time.Weekday, holidays []time.Time) (*WorkCalendar, error) {
	c := &WorkCalendar{
		calendarID: calendarID,
		holidays:   make(map[time.Time]struct{}, len(holidays)),
	}
	for _, day := range workingDays {
		if day < time.Sunday || day > time.Saturday {
			return nil, fmt.Errorf("calendar %s: invalid weekday %d", calendarID, int(day))
		}
		c.workingDays[day] = true
	}
	if len(c.WorkingDays()) == 0 {
		return nil, fmt.Errorf("calendar %s: at least one working day is required", calendarID)
	}
	for _, h := range holidays {
		c.holidays[dateOnly(h)] = struct{}{}
	}
	return c, nil
}

// WeekdayCalendar works Monday through Friday
func WeekdayCalendar() *WorkCalendar {
	c, _ := NewWorkCalendar("WEEKDAYS", []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}, nil)
	return c
}

// ContinuousCalendar treats every day as a working day (24/7 operation)
func ContinuousCalendar() *WorkCalendar {
	c, _ := NewWorkCalendar("CONTINUOUS", []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
	}, nil)
	return c
}

func (c *WorkCalendar) CalendarID() string { return c.calendarID }

// WorkingDays returns the working weekdays, Sunday first
func (c *WorkCalendar) WorkingDays() []time.Weekday {
	var days []time.Weekday
	for day, working := range c.workingDays {
		if working {
			days = append(days, time.Weekday(day))
		}
	}
	return days
}

// Holidays returns the holiday dates in order
func (c *WorkCalendar) Holidays() []time.Time {
	result := make([]time.Time, 0, len(c.holidays))
	for h := range c.holidays {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result
}

// IsWorkingDay reports whether date is a working weekday and not a holiday
func (c *WorkCalendar) IsWorkingDay(date time.Time) bool {
	if _, holiday := c.holidays[dateOnly(date)]; holiday {
		return false
	}
	return c.workingDays[date.Weekday()]
}

// AddWorkingDays steps forward from start until days working days have passed.
// start itself is not counted.
func (c *WorkCalendar) AddWorkingDays(start time.Time, days int) time.Time {
	return c.step(start, days, 1)
}

// SubtractWorkingDays steps backward from start until days working days have
// passed. start itself is not counted.
func (c *WorkCalendar) SubtractWorkingDays(start time.Time, days int) time.Time {
	return c.step(start, days, -1)
}

// WorkingDaysBetween counts working days in (start, end]
func (c *WorkCalendar) WorkingDaysBetween(start, end time.Time) int {
	count := 0
	for current := start.AddDate(0, 0, 1); !current.After(end); current = current.AddDate(0, 0, 1) {
		if c.IsWorkingDay(current) {
			count++
		}
	}
	return count
}

func (c *WorkCalendar) step(start time.Time, days, direction int) time.Time {
	current := start
	for remaining := days; remaining > 0; {
		current = current.AddDate(0, 0, direction)
		if c.IsWorkingDay(current) {
			remaining--
		}
	}
	return current
}

// ParseWeekday accepts full English weekday names and three-letter abbreviations
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if name == full || name == full[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("unrecognized weekday %q", s)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
