// Package calendar implements the in-world calendar: a pure date function
// over elapsed days and the WorldClock that tracks month boundaries.
package calendar

import "fmt"

// Calendar constants: 5-day weeks, 5-week months, 4-month seasons,
// 4-season years.
const (
	DaysInWeek    = 5
	WeeksInMonth  = 5
	DaysInMonth   = WeeksInMonth * DaysInWeek
	MonthsInSeason = 4
	DaysInSeason  = MonthsInSeason * DaysInMonth
	SeasonsInYear = 4
	DaysInYear    = SeasonsInYear * DaysInSeason

	// EpochYear is the campaign year. Single-year campaigns; no rollover.
	EpochYear = 1690
)

// MonthNames holds the sixteen months in order.
var MonthNames = [16]string{
	"Winter's Start",
	"Celynrag",
	"Talan",
	"Winter's End",
	"Spring's Start",
	"Ynsovan",
	"Grothlynan",
	"Spring's End",
	"Summer's Start",
	"Jalynsong",
	"Bandari",
	"Summer's End",
	"Autumn's Start",
	"Celindro",
	"Alynon",
	"Autumn's End",
}

// Date is a resolved in-world date.
type Date struct {
	Day   int    `json:"day"`   // 1..25 within the month
	Month string `json:"month"` // from MonthNames
	Year  int    `json:"year"`
}

// String renders the date the way the game displays it, e.g. "3 Talan, 1690".
func (d Date) String() string {
	return fmt.Sprintf("%d %s, %d", d.Day, d.Month, d.Year)
}

// DateFor maps an elapsed day count to its in-world date. Pure: identical
// input always yields the identical date, and DateFor(d) == DateFor(d+400).
func DateFor(daysElapsed int) Date {
	totalDays := daysElapsed % DaysInYear
	seasonIndex := totalDays / DaysInSeason
	daysInSeason := totalDays % DaysInSeason
	monthIndex := seasonIndex*MonthsInSeason + daysInSeason/DaysInMonth
	return Date{
		Day:   totalDays%DaysInMonth + 1,
		Month: MonthNames[monthIndex],
		Year:  EpochYear,
	}
}

// WorldClock tracks elapsed days and the cyclic day of month. DaysElapsed
// is monotonic; DayOfMonth advances 1..25 and wraps back to 1.
type WorldClock struct {
	DaysElapsed int `json:"days"`
	DayOfMonth  int `json:"dayOfMonth"`
}

// NewWorldClock starts a fresh clock on day 1 of the first month.
func NewWorldClock() WorldClock {
	return WorldClock{DaysElapsed: 0, DayOfMonth: 1}
}

// Advance moves the clock one day forward and reports whether the day of
// month wrapped, i.e. a new month began.
func (c *WorldClock) Advance() (monthWrapped bool) {
	c.DaysElapsed++
	c.DayOfMonth = c.DayOfMonth%DaysInMonth + 1
	return c.DayOfMonth == 1
}

// Date returns the clock's current date.
func (c WorldClock) Date() Date {
	return DateFor(c.DaysElapsed)
}
