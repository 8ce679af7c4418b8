package planner

import (
	"cmp"
	"slices"

	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/samber/lo"
)

type metrics struct {
	days       int
	gapMinutes int
	score      float64
}

// Measures a set of courses: the distinct days they meet on and the idle minutes between consecutive sessions of
// each day, counting only gaps above the threshold. The score adds half of the idle hours to the day count
func measure(courses []model.Course, gapThresholdMinutes int) metrics {
	sessions := lo.FlatMap(courses, func(course model.Course, _ int) []model.Session { return course.Sessions })
	byDay := lo.GroupBy(sessions, func(session model.Session) model.Day { return session.Day })

	gapMinutes := 0
	for _, daySessions := range byDay {
		slices.SortFunc(daySessions, func(a, b model.Session) int {
			return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
		})
		for i := 1; i < len(daySessions); i++ {
			gap := (daySessions[i].Start - daySessions[i-1].End) * model.SlotMinutes
			if gap > gapThresholdMinutes {
				gapMinutes += gap
			}
		}
	}

	return metrics{
		days:       len(byDay),
		gapMinutes: gapMinutes,
		score:      float64(len(byDay)) + 0.5*float64(gapMinutes)/60,
	}
}
