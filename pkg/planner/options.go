package planner

const (
	DefaultGapThresholdMinutes = 15
	DefaultMaxSkip             = 3
)

type Options struct {
	GapThresholdMinutes int // Idle time between sessions is only penalized above this threshold
	MaxSkip             int // Largest number of courses a skip alternative may leave out
	MaxCombinations     int // Zero means unbounded
}

func DefaultOptions() Options {
	return Options{
		GapThresholdMinutes: DefaultGapThresholdMinutes,
		MaxSkip:             DefaultMaxSkip,
	}
}
