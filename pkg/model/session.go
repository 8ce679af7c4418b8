package model

type Session struct {
	Day      Day
	Start    int // First row on the placement grid
	End      int // Exclusive last row on the placement grid
	Parity   Parity
	Location string
}

func (session Session) Span() int {
	return session.End - session.Start
}

// Checks whether both sessions cover exactly the same rows of the same day
func (session Session) SameTime(other Session) bool {
	return session.Day == other.Day && session.Start == other.Start && session.End == other.End
}

// Checks whether two sessions cannot coexist. Sessions on different days never conflict, neither do sessions of
// complementary parities; otherwise they conflict if and only if their half-open intervals overlap
func Conflicts(a, b Session) bool {
	if a.Day != b.Day {
		return false
	} else if a.Parity.Complements(b.Parity) {
		return false
	}
	return overlap(a.Start, a.End, b.Start, b.End)
}

// Checks whether any pair of sessions of both courses conflicts
func CoursesConflict(a, b Course) bool {
	for _, sessionA := range a.Sessions {
		for _, sessionB := range b.Sessions {
			if Conflicts(sessionA, sessionB) {
				return true
			}
		}
	}
	return false
}

func overlap(start1, end1, start2, end2 int) bool {
	return !(end1 <= start2 || end2 <= start1)
}
