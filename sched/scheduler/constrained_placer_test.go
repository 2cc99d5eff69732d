package scheduler

import (
	"math/rand"
	"testing"

	"github.com/sparrowdev/sparrow/sched"
)

func prefTask(id string, hosts ...string) *sched.TaskSpec {
	return &sched.TaskSpec{
		TaskID:     id,
		Message:    []byte(id),
		Preference: &sched.PlacementPreference{Nodes: hosts},
	}
}

func TestConstrainedProbesPreferredWorkers(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "w1", "w2", "w3"),
	}}
	backends := makeBackends("w1:1", "w2:1", "w3:1", "w4:1")

	reservations := p.Plan(req, "r0", backends, schedAddr())
	if got := totalReservations(reservations); got != 2 {
		t.Errorf("expected ceil(2.0) probes for the task, got %d", got)
	}
	for nodeId, batch := range reservations {
		if nodeId == "w4:1" {
			t.Error("w4 is not preferred by any task and should not be probed")
		}
		if len(batch.Tasks) != 1 || batch.Tasks[0].TaskID != "t1" {
			t.Errorf("worker %s: batch should list exactly the tasks preferring it, got %v", nodeId, batch.Tasks)
		}
	}
}

func TestConstrainedBatchListsOnlyPreferringTasks(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 1.0, rand.New(rand.NewSource(3)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "w1"),
		prefTask("t2", "w2"),
	}}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())

	if batch, ok := reservations["w1:1"]; !ok || len(batch.Tasks) != 1 || batch.Tasks[0].TaskID != "t1" {
		t.Errorf("w1 should hold exactly t1, got %+v", batch)
	}
	if batch, ok := reservations["w2:1"]; !ok || len(batch.Tasks) != 1 || batch.Tasks[0].TaskID != "t2" {
		t.Errorf("w2 should hold exactly t2, got %+v", batch)
	}
	if _, ok := reservations["w3:1"]; ok {
		t.Error("w3 is preferred by nobody and should not be probed")
	}
}

func TestConstrainedAssignsOnlyPreferringTasks(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 1.0, rand.New(rand.NewSource(3)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "w1"),
		prefTask("t2", "w2"),
	}}
	p.Plan(req, "r0", makeBackends("w1:1", "w2:1"), schedAddr())

	if spec := pull(t, p, "w2:1"); spec == nil || spec.TaskID != "t2" {
		t.Errorf("w2 should receive t2, got %v", spec)
	}
	if spec := pull(t, p, "w1:1"); spec == nil || spec.TaskID != "t1" {
		t.Errorf("w1 should receive t1, got %v", spec)
	}
	if !p.AllResponsesReceived() {
		t.Error("both credits answered; placer should be drained")
	}
}

func TestConstrainedFallsBackWhenPreferencesUnresolvable(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(5)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "no-such-host.invalid"),
	}}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())

	if got := totalReservations(reservations); got != 2 {
		t.Errorf("unresolvable preferences should fall back to 2 random probes, got %d", got)
	}
	// The task must be assignable through the fallback workers.
	var assigned *sched.TaskLaunchSpec
	for nodeId, batch := range reservations {
		for i := int32(0); i < batch.NumReservations; i++ {
			if spec := pull(t, p, string(nodeId)); spec != nil {
				assigned = spec
			}
		}
	}
	if assigned == nil || assigned.TaskID != "t1" {
		t.Errorf("expected t1 to bind via fallback probes, got %v", assigned)
	}
	if !p.AllResponsesReceived() {
		t.Error("placer should drain once fallback credits are answered")
	}
}

func TestConstrainedMixedTasks(t *testing.T) {
	// One constrained and one unconstrained task in the same request: the
	// unconstrained task samples the whole worker set.
	p := newConstrainedTaskPlacer("r0", 1.0, rand.New(rand.NewSource(11)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "w1"),
		{TaskID: "t2", Message: []byte("t2")},
	}}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())

	if got := totalReservations(reservations); got != 2 {
		t.Errorf("expected one probe per task at ratio 1.0, got %d", got)
	}

	assigned := map[string]bool{}
	for nodeId, batch := range reservations {
		for i := int32(0); i < batch.NumReservations; i++ {
			if spec := pull(t, p, string(nodeId)); spec != nil {
				assigned[spec.TaskID] = true
			}
		}
	}
	if !assigned["t1"] || !assigned["t2"] {
		t.Errorf("both tasks should bind, got %v", assigned)
	}
}

func TestConstrainedTaskAssignedAtMostOnce(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 3.0, rand.New(rand.NewSource(13)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "w1", "w2", "w3"),
		prefTask("t2", "w1", "w2", "w3"),
	}}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())

	counts := map[string]int{}
	empties := 0
	for nodeId, batch := range reservations {
		for i := int32(0); i < batch.NumReservations; i++ {
			if spec := pull(t, p, string(nodeId)); spec != nil {
				counts[spec.TaskID]++
			} else {
				empties++
			}
		}
	}
	for taskId, count := range counts {
		if count != 1 {
			t.Errorf("task %s assigned %d times", taskId, count)
		}
	}
	if empties != 4 {
		t.Errorf("6 credits minus 2 tasks should leave 4 empty replies, got %d", empties)
	}
	if !p.AllResponsesReceived() {
		t.Error("placer should drain after all credits are answered")
	}
}

func TestConstrainedEmptyWorkerSet(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(1)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{prefTask("t1", "w1")}}

	if reservations := p.Plan(req, "r0", nil, schedAddr()); len(reservations) != 0 {
		t.Errorf("expected an empty plan, got %v", reservations)
	}
	if !p.AllResponsesReceived() {
		t.Error("a placer with no reservations should be drained immediately")
	}
}

func TestConstrainedCreditsMatchBatchCounts(t *testing.T) {
	p := newConstrainedTaskPlacer("r0", 2.0, rand.New(rand.NewSource(17)))
	req := &sched.SchedulingRequest{App: "appA", Tasks: []*sched.TaskSpec{
		prefTask("t1", "w1", "w2"),
		prefTask("t2", "w2", "w3"),
	}}
	reservations := p.Plan(req, "r0", makeBackends("w1:1", "w2:1", "w3:1"), schedAddr())

	total := 0
	for nodeId, batch := range reservations {
		if batch.NumReservations <= 0 {
			t.Errorf("worker %s has a batch without reservations", nodeId)
		}
		total += int(batch.NumReservations)
	}
	if total != 4 {
		t.Errorf("expected ceil(2.0) credits per task = 4 total, got %d", total)
	}
}
