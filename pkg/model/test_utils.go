package model

import (
	"fmt"
	"math/rand/v2"
)

// Builds a random catalog with the given number of course codes, each offered in a number of sections. Sessions
// are aligned to the placement grid and roughly a fifth of them alternate weeks
func GenerateCatalog(codes, sections, sessionsPerSection int) *Catalog {
	return NewCatalog(GenerateRecords(codes, sections, sessionsPerSection), PlacementGrid, nil)
}

func GenerateRecords(codes, sections, sessionsPerSection int) []CourseRecord {
	grid := PlacementGrid
	records := make([]CourseRecord, 0, codes*sections)

	for code := range codes {
		for section := range sections {
			record := CourseRecord{
				Key:         fmt.Sprintf("c%d_%d", code, section+1),
				Code:        fmt.Sprintf("c%d_%d", code, section+1),
				Name:        fmt.Sprintf("course %d", code),
				Credits:     rand.IntN(3) + 1,
				IsAvailable: true,
			}

			for range sessionsPerSection {
				length := rand.IntN(3) + 2 // Between one and two hours
				start := rand.IntN(grid.Slots() - length + 1)

				parity := ""
				if rand.Float32() < 0.2 {
					parity = OddMarker
					if rand.Float32() < 0.5 {
						parity = EvenMarker
					}
				}

				record.Schedule = append(record.Schedule, SessionRecord{
					Day:    Day(rand.IntN(5)).String(),
					Start:  grid.Clock(start),
					End:    grid.Clock(start + length),
					Parity: parity,
				})
			}

			records = append(records, record)
		}
	}

	return records
}
