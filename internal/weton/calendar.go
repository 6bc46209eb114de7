package weton

import (
	"fmt"
	"time"
)

// DateLayout is the layout accepted by ParseDate.
const DateLayout = "2006-01-02"

// Date is a plain Gregorian calendar date with no time zone or time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string, rejecting dates that do not exist.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &DateError{Input: s, Err: err}
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := d.midnight().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// dayNumber counts days since 1970-01-01. Unix seconds are used rather than
// time.Sub so dates centuries away from the epoch do not saturate a Duration.
func (d Date) dayNumber() int64 {
	return floorDiv(d.midnight().Unix(), 86400)
}

// DateError reports an input string that is not a valid calendar date.
type DateError struct {
	Input string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD): %v", e.Input, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// Pasaran is a day of the five-day Javanese market week.
type Pasaran int

const (
	Kliwon Pasaran = iota
	Legi
	Pahing
	Pon
	Wage
)

var pasaranNames = [...]string{"Kliwon", "Legi", "Pahing", "Pon", "Wage"}

func (p Pasaran) String() string {
	if p < Kliwon || p > Wage {
		return fmt.Sprintf("Pasaran(%d)", int(p))
	}
	return pasaranNames[p]
}

// Next returns the pasaran of the following day.
func (p Pasaran) Next() Pasaran {
	return Pasaran(floorMod(int64(p)+1, 5))
}

// Pasarans lists the cycle in order, starting at Kliwon.
func Pasarans() []Pasaran {
	return []Pasaran{Kliwon, Legi, Pahing, Pon, Wage}
}

// Neptu weights. The tables are total over their domains.
var (
	weekdayNeptu = map[time.Weekday]int{
		time.Sunday:    5,
		time.Monday:    4,
		time.Tuesday:   3,
		time.Wednesday: 7,
		time.Thursday:  8,
		time.Friday:    6,
		time.Saturday:  9,
	}

	pasaranNeptu = map[Pasaran]int{
		Kliwon: 8,
		Legi:   5,
		Pahing: 9,
		Pon:    7,
		Wage:   4,
	}

	javaneseDays = map[time.Weekday]string{
		time.Sunday:    "Minggu",
		time.Monday:    "Senin",
		time.Tuesday:   "Selasa",
		time.Wednesday: "Rabu",
		time.Thursday:  "Kamis",
		time.Friday:    "Jumat",
		time.Saturday:  "Sabtu",
	}
)

// WeekdayNeptu returns the neptu weight of a weekday.
func WeekdayNeptu(w time.Weekday) int { return weekdayNeptu[w] }

// PasaranNeptu returns the neptu weight of a pasaran day.
func PasaranNeptu(p Pasaran) int { return pasaranNeptu[p] }

// pasaranEpoch anchors the five-day cycle: 1900-01-01 is offset 0.
var pasaranEpoch = Date{Year: 1900, Month: time.January, Day: 1}

// pasaranPhase shifts the epoch offset so that 1900-01-01 falls on Pahing.
const pasaranPhase = 2

// Weton is the weekday/pasaran combination of a date and its neptu.
type Weton struct {
	Date    Date
	Weekday time.Weekday
	Pasaran Pasaran
	Neptu   int
}

// Name returns the weton in English weekday form, e.g. "Sunday Kliwon".
func (w Weton) Name() string {
	return w.Weekday.String() + " " + w.Pasaran.String()
}

// JavaneseName returns the weton with the Javanese day name, e.g. "Minggu Kliwon".
func (w Weton) JavaneseName() string {
	return javaneseDays[w.Weekday] + " " + w.Pasaran.String()
}

// Convert maps a calendar date to its weton. Every valid date has one.
func Convert(d Date) Weton {
	delta := d.dayNumber() - pasaranEpoch.dayNumber()
	pasaran := Pasaran(floorMod(delta+pasaranPhase, 5))
	weekday := d.midnight().Weekday()

	return Weton{
		Date:    d,
		Weekday: weekday,
		Pasaran: pasaran,
		Neptu:   weekdayNeptu[weekday] + pasaranNeptu[pasaran],
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
