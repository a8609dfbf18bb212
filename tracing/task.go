package tracing

import "github.com/netsimlab/vns/sim"

// A TaskStep represents a milestone in the processing of a task.
type TaskStep struct {
	Time sim.VTimeInNano `json:"time"`
	What string          `json:"what"`
}

// A Task is a unit of model activity with a duration in virtual time, such
// as loading one web page, discovering one route, or receiving one frame.
type Task struct {
	ID        string          `json:"id"`
	ParentID  string          `json:"parent_id"`
	Kind      string          `json:"kind"`
	What      string          `json:"what"`
	Where     string          `json:"where"`
	StartTime sim.VTimeInNano `json:"start_time"`
	EndTime   sim.VTimeInNano `json:"end_time"`
	Steps     []TaskStep      `json:"steps"`
	Detail    interface{}     `json:"-"`
}

// TaskFilter is a function that can filter interesting tasks. If this
// function returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// AnyTask is a TaskFilter that accepts every task.
func AnyTask(_ Task) bool {
	return true
}

// TaskKindIs returns a TaskFilter that accepts tasks of the given kind.
func TaskKindIs(kind string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind
	}
}
