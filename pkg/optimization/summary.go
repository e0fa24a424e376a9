// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single break-even search.
type Summary struct {
	Scenario   string   `json:"scenario"`
	Field      string   `json:"field"`
	Target     string   `json:"target"`
	Original   float64  `json:"original"`
	Value      float64  `json:"value"`
	Floor      float64  `json:"floor"`
	Metric     float64  `json:"metric"`
	Headroom   float64  `json:"headroom"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Notes      []string `json:"notes,omitempty"`
}

// Feasible reports whether the chosen value keeps the target at or above
// the floor.
func (s Summary) Feasible() bool {
	return s.Headroom >= 0
}
