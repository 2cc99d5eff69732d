package scheduler

import (
	"math"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/sched"
)

// TaskPlacer owns one request's placement plan and assignment bookkeeping.
// Implementations serialize their internal state; concurrent AssignTask calls
// are linearizable (one caller sees a task, the next sees the decremented
// credit).
type TaskPlacer interface {
	// Plan selects node monitors for the request and builds one reservation
	// batch per selected worker. The worker set is a snapshot; the plan stays
	// valid even if membership changes afterward. Called exactly once.
	Plan(req *sched.SchedulingRequest, requestId string, backends []cluster.Node,
		schedulerAddr sched.HostPort) map[cluster.NodeId]*sched.EnqueueTaskReservationsRequest

	// AssignTask answers one reservation credit held by the given node
	// monitor: a single launch spec while unassigned tasks remain, empty
	// otherwise. A task is returned at most once across all calls.
	AssignTask(nodeMonitorAddress sched.HostPort) []*sched.TaskLaunchSpec

	// AllResponsesReceived reports whether every issued credit has been
	// answered (with a task or empty). Once true the placer never produces
	// another launch spec and is eligible for retirement.
	AllResponsesReceived() bool
}

// probeCount returns how many reservations a request gets: the probe ratio
// times the task count, rounded up.
func probeCount(probeRatio float64, numTasks int) int {
	return int(math.Ceil(probeRatio * float64(numTasks)))
}

func launchSpec(task *sched.TaskSpec) *sched.TaskLaunchSpec {
	return &sched.TaskLaunchSpec{TaskID: task.TaskID, Message: task.Message}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
