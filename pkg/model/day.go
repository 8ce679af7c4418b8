package model

import "strings"

type Day int

// Week order of the university calendar, starting on Saturday
const (
	Saturday Day = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

const Days = 7

var dayNames = [Days]string{"saturday", "sunday", "monday", "tuesday", "wednesday", "thursday", "friday"}

// Canonical Persian names with the ZWNJ and spaces stripped (see normalizeDayName)
var persianDayNames = map[string]Day{
	"شنبه":     Saturday,
	"یکشنبه":   Sunday,
	"دوشنبه":   Monday,
	"سهشنبه":   Tuesday,
	"چهارشنبه": Wednesday,
	"پنجشنبه":  Thursday,
	"جمعه":     Friday,
}

func (day Day) String() string {
	if !day.Valid() {
		return "invalid"
	}
	return dayNames[day]
}

func (day Day) Valid() bool {
	return day >= Saturday && day <= Friday
}

func AllDays() []Day {
	return []Day{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}
}

// Parses either an english identifier (case insensitive) or a persian weekday name
func ParseDay(name string) (Day, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for i, dayName := range dayNames {
		if lower == dayName {
			return Day(i), nil
		}
	}

	if day, ok := persianDayNames[normalizeDayName(name)]; ok {
		return day, nil
	}

	return 0, InvalidFieldError{Field: "day", Value: name}
}

// Maps arabic letter variants to their persian form and removes whitespace and zero-width non-joiners
func normalizeDayName(name string) string {
	replacer := strings.NewReplacer(
		"ي", "ی",
		"ى", "ی",
		"ك", "ک",
		"\u200c", "",
		" ", "",
		"\t", "",
	)
	return replacer.Replace(strings.TrimSpace(name))
}
