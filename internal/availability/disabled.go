package availability

import "time"

// Calculator answers which hour/minute/second selections are off-limits
// for a candidate date, given the club's weekly hours. It is the single
// source of the weekday convention (time.Weekday, 0 = Sunday); the club
// API stores weekdays the same way.
type Calculator struct {
	byWeekday map[int]window
}

type window struct {
	start ClockTime
	end   ClockTime
}

// NewCalculator indexes the weekly list. An entry with a malformed
// start or end time is dropped, which makes that day read as closed:
// a broken row must never crash a picker, only lock it.
func NewCalculator(list []WeekdayAvailability) *Calculator {
	byWeekday := make(map[int]window, len(list))
	for _, a := range list {
		start, err := ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(a.EndTime)
		if err != nil {
			continue
		}
		byWeekday[a.Weekday] = window{start: start, end: end}
	}
	return &Calculator{byWeekday: byWeekday}
}

// ForDate resolves the disabled-time view for one date.
func (c *Calculator) ForDate(date time.Time) Disabled {
	return c.ForWeekday(int(date.Weekday()))
}

// ForWeekday resolves the view for a weekday (0 = Sunday), for callers
// that validate recurring slots rather than concrete dates.
func (c *Calculator) ForWeekday(weekday int) Disabled {
	w, ok := c.byWeekday[weekday]
	if !ok {
		return Disabled{closed: true}
	}
	return Disabled{window: w}
}

// Inert is the view before any date is selected: nothing is disabled.
func (c *Calculator) Inert() Disabled {
	return Disabled{inert: true}
}

type Disabled struct {
	inert  bool
	closed bool
	window window
}

// Hours lists the hours that cannot be selected.
func (d Disabled) Hours() []int {
	hours := []int{}
	if d.inert {
		return hours
	}
	for h := 0; h < 24; h++ {
		if d.closed || h < d.window.start.Hour || h > d.window.end.Hour {
			hours = append(hours, h)
		}
	}
	return hours
}

// Minutes lists the minutes that cannot be selected while the given hour
// is highlighted. On the boundary hours only the out-of-window minutes
// are disabled; a window that starts and ends within the same hour
// applies both cuts.
func (d Disabled) Minutes(hour int) []int {
	minutes := []int{}
	if d.inert {
		return minutes
	}
	for m := 0; m < 60; m++ {
		if d.closed ||
			(hour == d.window.start.Hour && m < d.window.start.Minute) ||
			(hour == d.window.end.Hour && m > d.window.end.Minute) {
			minutes = append(minutes, m)
		}
	}
	return minutes
}

// Seconds is required by the picker contract even though the domain has
// no second-level granularity: empty on an open day, everything on a
// closed one.
func (d Disabled) Seconds() []int {
	seconds := []int{}
	if d.inert || !d.closed {
		return seconds
	}
	for s := 0; s < 60; s++ {
		seconds = append(seconds, s)
	}
	return seconds
}

// Window reports the parsed open window for validation callers. ok is
// false on a closed (or inert) day.
func (d Disabled) Window() (start, end ClockTime, ok bool) {
	if d.inert || d.closed {
		return ClockTime{}, ClockTime{}, false
	}
	return d.window.start, d.window.end, true
}
