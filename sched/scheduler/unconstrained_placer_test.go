package scheduler

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/sched"
)

func makeTasks(ids ...string) []*sched.TaskSpec {
	tasks := []*sched.TaskSpec{}
	for _, id := range ids {
		tasks = append(tasks, &sched.TaskSpec{TaskID: id, Message: []byte(id)})
	}
	return tasks
}

func makeBackends(addrs ...string) []cluster.Node {
	nodes := []cluster.Node{}
	for _, addr := range addrs {
		nodes = append(nodes, cluster.NewIdNode(addr))
	}
	return nodes
}

func schedAddr() sched.HostPort {
	return sched.HostPort{Host: "10.0.0.1", Port: 20503}
}

func totalReservations(reservations map[cluster.NodeId]*sched.EnqueueTaskReservationsRequest) int {
	total := 0
	for _, batch := range reservations {
		total += int(batch.NumReservations)
	}
	return total
}

func pull(t *testing.T, p TaskPlacer, addr string) *sched.TaskLaunchSpec {
	hp, err := sched.ParseHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	specs := p.AssignTask(hp)
	if len(specs) > 1 {
		t.Fatalf("placer returned %d launch specs, want 0 or 1", len(specs))
	}
	if len(specs) == 0 {
		return nil
	}
	return specs[0]
}

func TestUnconstrainedPlanOneReservationPerWorker(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1", "t2")}

	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1", "w4:1"), schedAddr())
	if len(reservations) != 4 {
		t.Fatalf("expected reservations on all 4 workers, got %d", len(reservations))
	}
	for nodeId, batch := range reservations {
		if batch.NumReservations != 1 {
			t.Errorf("worker %s: expected 1 reservation, got %d", nodeId, batch.NumReservations)
		}
		if len(batch.Tasks) != 2 {
			t.Errorf("worker %s: batch should carry the full task list, got %d", nodeId, len(batch.Tasks))
		}
		if batch.RequestID != "r0" || batch.AppID != "appA" {
			t.Errorf("worker %s: bad batch identity: %+v", nodeId, batch)
		}
		if batch.SchedulerAddress != schedAddr() {
			t.Errorf("worker %s: bad scheduler address: %v", nodeId, batch.SchedulerAddress)
		}
	}
}

func TestUnconstrainedProbeRatioOne(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 1.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1", "t2", "t3")}

	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1", "w4:1"), schedAddr())
	if got := totalReservations(reservations); got != 3 {
		t.Errorf("ratio 1.0 should issue exactly one reservation per task, got %d", got)
	}
}

func TestUnconstrainedMoreProbesThanWorkers(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 3.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1", "t2")}

	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())
	if len(reservations) != 3 {
		t.Errorf("every worker should be probed, got %d", len(reservations))
	}
	if got := totalReservations(reservations); got != 6 {
		t.Errorf("expected 6 reservations total, got %d", got)
	}
}

func TestUnconstrainedEmptyWorkerSet(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1")}

	reservations := p.Plan(req, "r0", nil, schedAddr())
	if len(reservations) != 0 {
		t.Errorf("expected an empty plan, got %v", reservations)
	}
	if !p.AllResponsesReceived() {
		t.Error("a placer with no reservations should be drained immediately")
	}
	if spec := pull(t, p, "w1:1"); spec != nil {
		t.Errorf("expected no task from an empty plan, got %v", spec)
	}
}

func TestUnconstrainedDeterministicUnderFixedSeed(t *testing.T) {
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1", "t2", "t3")}
	backends := makeBackends("w1:1", "w2:1", "w3:1", "w4:1", "w5:1")

	p1 := newUnconstrainedTaskPlacer("r0", 1.5, rand.New(rand.NewSource(42)))
	p2 := newUnconstrainedTaskPlacer("r0", 1.5, rand.New(rand.NewSource(42)))
	plan1 := p1.Plan(req, "r0", backends, schedAddr())
	plan2 := p2.Plan(req, "r0", backends, schedAddr())

	if !reflect.DeepEqual(plan1, plan2) {
		t.Errorf("identical inputs and seed should produce identical plans:\n%v\n%v", plan1, plan2)
	}
}

func TestUnconstrainedAssignmentOrderAndDrain(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1", "t2")}
	p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1", "w4:1"), schedAddr())

	// Tie-breaking among unassigned tasks is insertion order.
	first := pull(t, p, "w3:1")
	if first == nil || first.TaskID != "t1" {
		t.Fatalf("expected t1 first, got %v", first)
	}
	second := pull(t, p, "w1:1")
	if second == nil || second.TaskID != "t2" {
		t.Fatalf("expected t2 second, got %v", second)
	}

	if p.AllResponsesReceived() {
		t.Error("two credits are still outstanding")
	}
	if spec := pull(t, p, "w2:1"); spec != nil {
		t.Errorf("all tasks assigned; expected empty, got %v", spec)
	}
	if spec := pull(t, p, "w4:1"); spec != nil {
		t.Errorf("all tasks assigned; expected empty, got %v", spec)
	}
	if !p.AllResponsesReceived() {
		t.Error("placer should drain once every credit is answered")
	}
}

func TestUnconstrainedPullWithoutCredit(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 1.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1")}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1"), schedAddr())

	var unprobed string
	for _, w := range []string{"w1:1", "w2:1"} {
		if _, ok := reservations[cluster.NodeId(w)]; !ok {
			unprobed = w
		}
	}
	if unprobed == "" {
		t.Fatal("one of the two workers should be unprobed at ratio 1.0")
	}

	if spec := pull(t, p, unprobed); spec != nil {
		t.Errorf("a worker without credits should get nothing, got %v", spec)
	}
	if p.AllResponsesReceived() {
		t.Error("an uncredited pull must not count as a response")
	}
}

func TestUnconstrainedTaskAssignedAtMostOnce(t *testing.T) {
	p := newUnconstrainedTaskPlacer("r0", 3.0, rand.New(rand.NewSource(7)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: makeTasks("t1", "t2")}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())

	seen := map[string]int{}
	for nodeId, batch := range reservations {
		for i := int32(0); i < batch.NumReservations; i++ {
			if spec := pull(t, p, string(nodeId)); spec != nil {
				seen[spec.TaskID]++
			}
		}
	}
	for taskId, count := range seen {
		if count != 1 {
			t.Errorf("task %s assigned %d times", taskId, count)
		}
	}
	if len(seen) != 2 {
		t.Errorf("both tasks should have been assigned, got %v", seen)
	}
	if !p.AllResponsesReceived() {
		t.Error("placer should drain after every credit is answered")
	}
}
