package scheduler

// Workload counts the days each employee has been scheduled
type Workload struct {
	counts map[string]int
}

// NewWorkload creates an empty counter
func NewWorkload() *Workload {
	return &Workload{counts: make(map[string]int)}
}

// Count returns the days scheduled for name
func (w *Workload) Count(name string) int {
	return w.counts[name]
}

// Increment records one more scheduled day for name
func (w *Workload) Increment(name string) {
	w.counts[name]++
}
