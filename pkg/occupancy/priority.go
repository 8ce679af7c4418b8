package occupancy

import "math"

// Rank given to courses absent from the priority order
const LowestPriority = math.MaxInt

// PriorityLookup maps a course key to its rank, where a lower rank means a higher priority
type PriorityLookup func(key string) int

// Builds a lookup out of an ordered key list. Repeated keys keep their first position
func NewPriorityLookup(order []string) PriorityLookup {
	ranks := make(map[string]int, len(order))
	for i, key := range order {
		if _, ok := ranks[key]; !ok {
			ranks[key] = i
		}
	}

	return func(key string) int {
		if rank, ok := ranks[key]; ok {
			return rank
		}
		return LowestPriority
	}
}

func (lookup PriorityLookup) rank(key string) int {
	if lookup == nil {
		return LowestPriority
	}
	return lookup(key)
}
