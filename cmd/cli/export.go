package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/limaJavier/courseplanner/pkg/occupancy"
	"github.com/limaJavier/courseplanner/pkg/planner"
	"github.com/samber/lo"
)

type CombinationRow struct {
	Rank       int     `csv:"rank" json:"rank"`
	Courses    string  `csv:"courses" json:"courses"`
	Days       int     `csv:"days" json:"days"`
	GapMinutes int     `csv:"gap_minutes" json:"gapMinutes"`
	Score      float64 `csv:"score" json:"score"`
}

type ScheduleRow struct {
	Rank              int    `csv:"rank" json:"rank"`
	Method            string `csv:"method" json:"method"`
	Courses           string `csv:"courses" json:"courses"`
	Skipped           string `csv:"skipped" json:"skipped"`
	Score             int    `csv:"score" json:"score"`
	PriorityPreserved bool   `csv:"priority_preserved" json:"priorityPreserved"`
	Days              int    `csv:"days" json:"days"`
	GapMinutes        int    `csv:"gap_minutes" json:"gapMinutes"`
}

type CellRow struct {
	Day     string `csv:"day" json:"day"`
	Start   string `csv:"start" json:"start"`
	End     string `csv:"end" json:"end"`
	State   string `csv:"state" json:"state"`
	Courses string `csv:"courses" json:"courses"`
	Parity  string `csv:"parity" json:"parity"`
}

const listSeparator = " "

func combinationRows(combinations []planner.Combination) []*CombinationRow {
	return lo.Map(combinations, func(combination planner.Combination, i int) *CombinationRow {
		return &CombinationRow{
			Rank:       i + 1,
			Courses:    strings.Join(combination.Courses, listSeparator),
			Days:       combination.Days,
			GapMinutes: combination.GapMinutes,
			Score:      combination.Score,
		}
	})
}

func scheduleRows(schedules []planner.ScheduleResult) []*ScheduleRow {
	return lo.Map(schedules, func(schedule planner.ScheduleResult, i int) *ScheduleRow {
		return &ScheduleRow{
			Rank:              i + 1,
			Method:            schedule.Method,
			Courses:           strings.Join(schedule.Courses, listSeparator),
			Skipped:           strings.Join(schedule.Skipped, listSeparator),
			Score:             schedule.Score,
			PriorityPreserved: schedule.PriorityPreserved,
			Days:              schedule.Days,
			GapMinutes:        schedule.GapMinutes,
		}
	})
}

func cellRows(entries []occupancy.Entry, grid model.Grid) []*CellRow {
	return lo.Map(entries, func(entry occupancy.Entry, _ int) *CellRow {
		placements := entry.Occupancy.Placements()
		return &CellRow{
			Day:     entry.Cell.Day.String(),
			Start:   grid.Clock(entry.Cell.Row),
			End:     grid.Clock(entry.End()),
			State:   entry.Occupancy.State.String(),
			Courses: strings.Join(entry.Occupancy.Keys(), listSeparator),
			Parity: strings.Join(lo.Map(placements, func(placement occupancy.Placement, _ int) string {
				return placement.Session.Parity.String()
			}), listSeparator),
		}
	})
}

// Writes rows as indented json or csv, to the output file or the standard output when empty
func writeRows[T any](rows []*T, format, outFile string) error {
	var content string
	switch format {
	case "csv":
		str, err := gocsv.MarshalString(&rows)
		if err != nil {
			return fmt.Errorf("cannot build csv output: %v", err)
		}
		content = str
	case "json":
		bytes, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot build json output: %v", err)
		}
		content = string(bytes) + "\n"
	default:
		return fmt.Errorf("unknown output format \"%v\"", format)
	}

	if outFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(content), 0666); err != nil {
		return fmt.Errorf("cannot write output file: %v", err)
	}
	return nil
}
