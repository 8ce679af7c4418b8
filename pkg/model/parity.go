package model

import "strings"

// Parity marks a session that only takes place in alternating weeks
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityFirstHalf
	ParityEven
	ParitySecondHalf
)

const (
	OddMarker  = "ف"
	EvenMarker = "ز"
)

var parityNames = map[Parity]string{
	ParityNone:       "",
	ParityOdd:        "odd",
	ParityFirstHalf:  "first-half",
	ParityEven:       "even",
	ParitySecondHalf: "second-half",
}

func (parity Parity) String() string {
	return parityNames[parity]
}

// Folds a parity into one of the two week classes: ParityOdd, ParityEven or ParityNone
func (parity Parity) Week() Parity {
	switch parity {
	case ParityOdd, ParityFirstHalf:
		return ParityOdd
	case ParityEven, ParitySecondHalf:
		return ParityEven
	default:
		return ParityNone
	}
}

// Checks whether both parities belong to opposite week classes. ParityNone complements nothing
func (parity Parity) Complements(other Parity) bool {
	week, otherWeek := parity.Week(), other.Week()
	return week != ParityNone && otherWeek != ParityNone && week != otherWeek
}

func ParseParity(marker string) (Parity, error) {
	switch strings.ToLower(strings.TrimSpace(marker)) {
	case "":
		return ParityNone, nil
	case OddMarker, "odd":
		return ParityOdd, nil
	case "first-half":
		return ParityFirstHalf, nil
	case EvenMarker, "even":
		return ParityEven, nil
	case "second-half":
		return ParitySecondHalf, nil
	}
	return ParityNone, InvalidFieldError{Field: "parity", Value: marker}
}
