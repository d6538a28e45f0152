package practice

import "github.com/abhisek/circuitz/internal/explain"

// explanationMsg carries a finished explanation. seq identifies the problem
// it was requested for; a result for an older problem is dropped.
type explanationMsg struct {
	seq         uint64
	explanation explain.Explanation
}
