package scheduler

import (
	"testing"

	"github.com/sparrowdev/sparrow/sched"
)

func TestBackendsForHostLiteralMatch(t *testing.T) {
	backends := makeBackends("h1:1", "h1:2", "h2:1")
	matched := backendsForHost(backends, "h1")
	if len(matched) != 2 {
		t.Errorf("expected both h1 backends, got %v", matched)
	}
}

func TestBackendsForHostUnresolvable(t *testing.T) {
	backends := makeBackends("h1:1")
	if matched := backendsForHost(backends, "no-such-host.invalid"); len(matched) != 0 {
		t.Errorf("unresolvable host should match nothing, got %v", matched)
	}
}

func TestSpreadApplies(t *testing.T) {
	three := 3.0
	two := 2.0

	cases := []struct {
		name string
		req  *sched.SchedulingRequest
		want bool
	}{
		{
			"one shared preference",
			&sched.SchedulingRequest{ProbeRatio: &three, Tasks: []*sched.TaskSpec{
				prefTask("t1", "h1"), prefTask("t2", "h1"),
			}},
			true,
		},
		{
			"two shared preferences",
			&sched.SchedulingRequest{ProbeRatio: &three, Tasks: []*sched.TaskSpec{
				prefTask("t1", "h1", "h2"),
			}},
			true,
		},
		{
			"wrong probe ratio",
			&sched.SchedulingRequest{ProbeRatio: &two, Tasks: []*sched.TaskSpec{
				prefTask("t1", "h1"),
			}},
			false,
		},
		{
			"ratio not set",
			&sched.SchedulingRequest{Tasks: []*sched.TaskSpec{prefTask("t1", "h1")}},
			false,
		},
		{
			"three preferred nodes",
			&sched.SchedulingRequest{ProbeRatio: &three, Tasks: []*sched.TaskSpec{
				prefTask("t1", "h1", "h2", "h3"),
			}},
			false,
		},
		{
			"differing preferences",
			&sched.SchedulingRequest{ProbeRatio: &three, Tasks: []*sched.TaskSpec{
				prefTask("t1", "h1"), prefTask("t2", "h2"),
			}},
			false,
		},
		{
			"unconstrained task in the mix",
			&sched.SchedulingRequest{ProbeRatio: &three, Tasks: []*sched.TaskSpec{
				prefTask("t1", "h1"), {TaskID: "t2"},
			}},
			false,
		},
		{
			"no tasks",
			&sched.SchedulingRequest{ProbeRatio: &three},
			false,
		},
	}
	for _, c := range cases {
		if got := spreadApplies(c.req); got != c.want {
			t.Errorf("%s: spreadApplies = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestExcludePreferredBackends(t *testing.T) {
	backends := makeBackends("h1:1", "h2:1", "h3:1")
	kept := excludePreferredBackends(backends, []*sched.TaskSpec{prefTask("t1", "h1", "h3")})
	if len(kept) != 1 || kept[0].Id() != "h2:1" {
		t.Errorf("expected only h2:1 to remain, got %v", kept)
	}
}
