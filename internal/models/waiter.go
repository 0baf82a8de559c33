package models

// Waiter is a member of the floor staff submitting tickets. TypoBias
// scales the configured typo rate; some people type sloppier than others.
type Waiter struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	TypoBias float64 `json:"typo_bias"`
}
