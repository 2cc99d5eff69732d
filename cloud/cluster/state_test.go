package cluster

import (
	"testing"
)

func TestSetAndDiff(t *testing.T) {
	s := makeState([]Node{NewIdNode("host1:1"), NewIdNode("host2:1")})

	updates := s.setAndDiff([]Node{NewIdNode("host2:1"), NewIdNode("host3:1")})
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %v", updates)
	}
	if updates[0].UpdateType != NodeAdded || updates[0].Id != "host3:1" {
		t.Errorf("expected add of host3:1, got %v", updates[0])
	}
	if updates[1].UpdateType != NodeRemoved || updates[1].Id != "host1:1" {
		t.Errorf("expected removal of host1:1, got %v", updates[1])
	}
}

func TestSetAndDiffNoChange(t *testing.T) {
	nodes := []Node{NewIdNode("host1:1")}
	s := makeState(nodes)
	if updates := s.setAndDiff(nodes); len(updates) != 0 {
		t.Errorf("expected no updates, got %v", updates)
	}
}

func TestStateUpdate(t *testing.T) {
	s := makeState(nil)
	s.update([]NodeUpdate{NewAdd(NewIdNode("host1:1")), NewAdd(NewIdNode("host2:1"))})
	s.update([]NodeUpdate{NewRemove("host1:1")})

	snap := s.snapshot()
	if len(snap) != 1 || snap[0].Id() != "host2:1" {
		t.Errorf("expected snapshot [host2:1], got %v", snap)
	}
}

func TestNodeIdHost(t *testing.T) {
	if h := NodeId("host1:20502").Host(); h != "host1" {
		t.Errorf("expected host1, got %v", h)
	}
	if h := NodeId("host1").Host(); h != "host1" {
		t.Errorf("expected host1, got %v", h)
	}
}
