package model

// Stats summarizes a task collection.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Today          int `json:"today"`
	TodayCompleted int `json:"todayCompleted"`
	Week           int `json:"week"`
}

// ComputeStats aggregates counts from the full, today and week task lists.
func ComputeStats(all, today, week []*Task) Stats {
	return Stats{
		Total:          len(all),
		Completed:      countCompleted(all),
		Today:          len(today),
		TodayCompleted: countCompleted(today),
		Week:           len(week),
	}
}

func countCompleted(tasks []*Task) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			n++
		}
	}
	return n
}
