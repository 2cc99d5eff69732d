// Package cluster tracks the set of node monitors available to a scheduler.
// Three interchangeable SchedulerState implementations exist, selected by the
// deployment mode: standalone (in-memory registrations), configbased (static
// list from configuration) and dynamic (snapshot maintained from an external
// membership source).
package cluster

// SchedulerState is the scheduler's view of cluster membership.
//
// Backends returns a snapshot: a plan computed from one snapshot stays valid
// even if membership changes before the request's getTask calls arrive.
type SchedulerState interface {
	// WatchApplication starts tracking workers for the given application.
	// Returns whether the application is accepted.
	WatchApplication(appId string) bool

	// Backends returns the node monitors currently usable for the application.
	Backends(appId string) []Node
}
