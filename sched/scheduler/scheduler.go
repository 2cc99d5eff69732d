// Package scheduler implements per-request task placement: a submitted job
// enqueues more probe reservations than it has tasks, and each task binds to
// whichever probed node monitor pulls first (late binding).
package scheduler

import (
	"github.com/sparrowdev/sparrow/sched"
)

// Scheduler is the front door for frontends and node monitors. Methods may be
// invoked concurrently by the RPC server.
type Scheduler interface {
	// RegisterFrontend records where completion messages for appId should go
	// and asks the cluster state to track the application's workers. Returns
	// false for an unparseable address.
	RegisterFrontend(appId string, addr string) bool

	// SubmitJob places a request's tasks: it enqueues reservation batches on
	// a set of node monitors and returns once dispatch is initiated. Dispatch
	// is best effort; per-worker transport failures do not abort the request.
	SubmitJob(req *sched.SchedulingRequest) error

	// GetTask is called by a node monitor holding a reservation credit.
	// Returns at most one launch spec; an empty reply releases the credit.
	GetTask(requestId string, nodeMonitorAddress sched.HostPort) []*sched.TaskLaunchSpec

	// SendFrontendMessage forwards a task status update to the frontend that
	// registered appId.
	SendFrontendMessage(appId string, taskId sched.FullTaskID, status int32, message []byte)
}

// SchedulerConfig variables read at initialization.
// DefaultProbeRatioUnconstrained / DefaultProbeRatioConstrained -
//     probe ratios used when a request does not set one.
// SpreadTaskCaching - if true, requests with probe ratio 3 whose tasks all
//     share one identical preference list of one or two nodes have those
//     preferred nodes excluded from placement. This forces jobs onto fresh
//     workers so the application layer caches its input data in more places.
//     A workload-specific special case, not part of the placement algorithm.
type SchedulerConfig struct {
	DefaultProbeRatioUnconstrained float64
	DefaultProbeRatioConstrained   float64
	SpreadTaskCaching              bool
}
