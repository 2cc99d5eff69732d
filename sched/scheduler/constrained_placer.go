package scheduler

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/sched"
)

// constrainedTaskPlacer honors per-task node preferences: each task probes a
// random sample of its preferred workers, falling back to unconstrained
// selection when preferences run out. A worker's batch lists exactly the
// tasks that selected it.
type constrainedTaskPlacer struct {
	requestId  string
	probeRatio float64
	rand       *rand.Rand

	mu        sync.Mutex
	planned   bool
	credits   map[cluster.NodeId]int
	tasks     []*constrainedTask
	issued    int
	responses int
}

// constrainedTask tracks which workers hold credits a task may bind through.
type constrainedTask struct {
	spec     *sched.TaskSpec
	eligible map[cluster.NodeId]bool
	assigned bool
}

func newConstrainedTaskPlacer(requestId string, probeRatio float64, r *rand.Rand) *constrainedTaskPlacer {
	return &constrainedTaskPlacer{
		requestId:  requestId,
		probeRatio: probeRatio,
		rand:       r,
		credits:    make(map[cluster.NodeId]int),
	}
}

func (p *constrainedTaskPlacer) Plan(req *sched.SchedulingRequest, requestId string,
	backends []cluster.Node, schedulerAddr sched.HostPort) map[cluster.NodeId]*sched.EnqueueTaskReservationsRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() { p.planned = true }()

	reservations := make(map[cluster.NodeId]*sched.EnqueueTaskReservationsRequest)
	if len(backends) == 0 || len(req.Tasks) == 0 {
		return reservations
	}

	backends = append([]cluster.Node{}, backends...)
	sort.Sort(cluster.NodeSorter(backends))

	probesPerTask := int(math.Ceil(p.probeRatio))
	for _, spec := range req.Tasks {
		task := &constrainedTask{spec: spec, eligible: make(map[cluster.NodeId]bool)}
		p.tasks = append(p.tasks, task)

		// Sample from the task's resolvable preferred workers first,
		// preserving preference order across hosts.
		var preferred []cluster.Node
		seen := map[cluster.NodeId]bool{}
		if spec.Preference != nil {
			for _, host := range spec.Preference.Nodes {
				for _, b := range backendsForHost(backends, host) {
					if !seen[b.Id()] {
						seen[b.Id()] = true
						preferred = append(preferred, b)
					}
				}
			}
		}
		probes := 0
		for _, i := range p.rand.Perm(len(preferred)) {
			if probes == probesPerTask {
				break
			}
			p.addCredit(task, preferred[i].Id())
			probes++
		}
		// Preferences exhausted: fill the remaining probes with random
		// workers, with replacement, as the unconstrained placer would.
		for ; probes < probesPerTask; probes++ {
			p.addCredit(task, backends[p.rand.Intn(len(backends))].Id())
		}
	}

	for _, task := range p.tasks {
		for nodeId := range task.eligible {
			batch, ok := reservations[nodeId]
			if !ok {
				batch = &sched.EnqueueTaskReservationsRequest{
					AppID:            req.App,
					RequestID:        requestId,
					SchedulerAddress: schedulerAddr,
				}
				reservations[nodeId] = batch
			}
			batch.Tasks = append(batch.Tasks, task.spec)
		}
	}
	for nodeId, batch := range reservations {
		batch.NumReservations = int32(p.credits[nodeId])
	}
	return reservations
}

func (p *constrainedTaskPlacer) addCredit(task *constrainedTask, nodeId cluster.NodeId) {
	p.credits[nodeId]++
	p.issued++
	task.eligible[nodeId] = true
}

func (p *constrainedTaskPlacer) AssignTask(nodeMonitorAddress sched.HostPort) []*sched.TaskLaunchSpec {
	p.mu.Lock()
	defer p.mu.Unlock()

	nodeId := cluster.NodeId(nodeMonitorAddress.String())
	if p.credits[nodeId] == 0 {
		return nil
	}
	p.credits[nodeId]--
	p.responses++

	// Tasks are considered in submission order for determinism.
	for _, task := range p.tasks {
		if !task.assigned && task.eligible[nodeId] {
			task.assigned = true
			return []*sched.TaskLaunchSpec{launchSpec(task.spec)}
		}
	}
	return nil
}

func (p *constrainedTaskPlacer) AllResponsesReceived() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.planned && p.responses == p.issued
}

var _ TaskPlacer = (*constrainedTaskPlacer)(nil)
