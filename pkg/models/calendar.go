package models

import (
	"fmt"
	"strings"
	"time"
)

// Day is a day of the scheduling week, Monday first
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DayCount is the number of days in the scheduling week
const DayCount = 7

// Days lists every day in weekly order
var Days = [DayCount]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayNames = [DayCount]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Valid reports whether d is one of the seven canonical days
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ParseDay accepts a day name in any letter case, surrounded by optional whitespace
func ParseDay(s string) (Day, error) {
	name := strings.TrimSpace(s)
	for i, n := range dayNames {
		if strings.EqualFold(n, name) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("invalid day %q: choose from %s", s, strings.Join(dayNames[:], ", "))
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid day %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Shift is one of the three daily work shifts
type Shift int

const (
	Morning Shift = iota
	Afternoon
	Evening
)

// ShiftCount is the number of shifts per day
const ShiftCount = 3

// Shifts lists every shift in canonical order
var Shifts = [ShiftCount]Shift{Morning, Afternoon, Evening}

var shiftNames = [ShiftCount]string{"Morning", "Afternoon", "Evening"}

func (s Shift) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shift(%d)", int(s))
	}
	return shiftNames[s]
}

// Valid reports whether s is one of the canonical shifts
func (s Shift) Valid() bool {
	return s >= Morning && s <= Evening
}

// ParseShift accepts a shift name in any letter case, surrounded by optional whitespace
func ParseShift(s string) (Shift, error) {
	name := strings.TrimSpace(s)
	for i, n := range shiftNames {
		if strings.EqualFold(n, name) {
			return Shift(i), nil
		}
	}
	return 0, fmt.Errorf("invalid shift %q: choose from %s", s, strings.Join(shiftNames[:], ", "))
}

func (s Shift) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid shift %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Shift) UnmarshalText(text []byte) error {
	parsed, err := ParseShift(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Hours returns the wall-clock start and the length of the shift.
// Evening runs past midnight into the following day.
func (s Shift) Hours() (start time.Duration, length time.Duration) {
	switch s {
	case Morning:
		return 6 * time.Hour, 8 * time.Hour
	case Afternoon:
		return 14 * time.Hour, 8 * time.Hour
	default:
		return 22 * time.Hour, 8 * time.Hour
	}
}

// WeekStart returns midnight of the Monday on or before t, in t's location
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}
