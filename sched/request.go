// Package sched defines the domain types passed between frontends, the
// scheduler and node monitors. These types double as the wire structs for
// the thrift surface (see wire.go), the same way the original Sparrow
// daemon passes its thrift types through the scheduler core.
package sched

// PlacementPreference lists candidate hosts a task would like to run on.
// Hosts are bare hostnames or dotted IPs, without a port.
type PlacementPreference struct {
	Nodes []string
}

// TaskSpec is one task within a scheduling request. Message is an opaque
// payload handed back to whichever node monitor the task binds to.
type TaskSpec struct {
	TaskID     string
	Preference *PlacementPreference
	Message    []byte
}

// Constrained returns whether this task carries a usable node preference.
func (t *TaskSpec) Constrained() bool {
	return t.Preference != nil && len(t.Preference.Nodes) > 0
}

// SchedulingRequest is a frontend's request to place a set of tasks.
// ProbeRatio overrides the scheduler's default when set; it must be >= 1.0.
type SchedulingRequest struct {
	App        string
	Tasks      []*TaskSpec
	ProbeRatio *float64
}

func (r *SchedulingRequest) IsSetProbeRatio() bool {
	return r.ProbeRatio != nil
}

func (r *SchedulingRequest) GetProbeRatio() float64 {
	if r.ProbeRatio == nil {
		return 0
	}
	return *r.ProbeRatio
}

// Constrained returns whether any task in the request has a node preference.
// A single constrained task makes the whole request constrained.
func (r *SchedulingRequest) Constrained() bool {
	for _, task := range r.Tasks {
		if task.Constrained() {
			return true
		}
	}
	return false
}
