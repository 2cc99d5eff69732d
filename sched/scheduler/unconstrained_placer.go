package scheduler

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/sched"
)

// unconstrainedTaskPlacer probes a random subset of workers and lets any task
// bind at any probed worker, so every batch carries the full task list.
type unconstrainedTaskPlacer struct {
	requestId  string
	probeRatio float64
	rand       *rand.Rand

	mu         sync.Mutex
	planned    bool
	credits    map[cluster.NodeId]int
	unassigned []*sched.TaskSpec
	issued     int
	responses  int
}

func newUnconstrainedTaskPlacer(requestId string, probeRatio float64, r *rand.Rand) *unconstrainedTaskPlacer {
	return &unconstrainedTaskPlacer{
		requestId:  requestId,
		probeRatio: probeRatio,
		rand:       r,
		credits:    make(map[cluster.NodeId]int),
	}
}

func (p *unconstrainedTaskPlacer) Plan(req *sched.SchedulingRequest, requestId string,
	backends []cluster.Node, schedulerAddr sched.HostPort) map[cluster.NodeId]*sched.EnqueueTaskReservationsRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() { p.planned = true }()

	reservations := make(map[cluster.NodeId]*sched.EnqueueTaskReservationsRequest)
	probes := probeCount(p.probeRatio, len(req.Tasks))
	if probes == 0 || len(backends) == 0 {
		return reservations
	}

	// Sort so that selection depends only on the worker set and the seed.
	backends = append([]cluster.Node{}, backends...)
	sort.Sort(cluster.NodeSorter(backends))

	// First round: up to one reservation per worker, chosen uniformly at
	// random without replacement.
	for _, i := range p.rand.Perm(len(backends))[:minInt(probes, len(backends))] {
		p.credits[backends[i].Id()]++
	}
	// Extra reservations beyond the cluster size go to random workers with
	// replacement until the total reaches the probe count.
	for extra := probes - len(backends); extra > 0; extra-- {
		p.credits[backends[p.rand.Intn(len(backends))].Id()]++
	}

	p.unassigned = append([]*sched.TaskSpec{}, req.Tasks...)
	p.issued = probes

	for nodeId, count := range p.credits {
		reservations[nodeId] = &sched.EnqueueTaskReservationsRequest{
			AppID:            req.App,
			RequestID:        requestId,
			SchedulerAddress: schedulerAddr,
			NumReservations:  int32(count),
			Tasks:            req.Tasks,
		}
	}
	return reservations
}

func (p *unconstrainedTaskPlacer) AssignTask(nodeMonitorAddress sched.HostPort) []*sched.TaskLaunchSpec {
	p.mu.Lock()
	defer p.mu.Unlock()

	nodeId := cluster.NodeId(nodeMonitorAddress.String())
	if p.credits[nodeId] == 0 {
		// A pull without an outstanding credit; nothing was promised here.
		return nil
	}
	p.credits[nodeId]--
	p.responses++

	if len(p.unassigned) == 0 {
		return nil
	}
	task := p.unassigned[0]
	p.unassigned = p.unassigned[1:]
	return []*sched.TaskLaunchSpec{launchSpec(task)}
}

func (p *unconstrainedTaskPlacer) AllResponsesReceived() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.planned && p.responses == p.issued
}

var _ TaskPlacer = (*unconstrainedTaskPlacer)(nil)
