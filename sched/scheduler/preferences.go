package scheduler

import (
	"net"

	log "github.com/sirupsen/logrus"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/sched"
)

// backendsForHost returns the backends running on a preferred host. Literal
// matches against the node id's host part win; otherwise the host is resolved
// through DNS and matched by address. A host that fails to resolve yields no
// backends and placement proceeds with the remaining preferences.
func backendsForHost(backends []cluster.Node, host string) []cluster.Node {
	var matched []cluster.Node
	for _, b := range backends {
		if b.Id().Host() == host {
			matched = append(matched, b)
		}
	}
	if len(matched) > 0 {
		return matched
	}

	addrs, err := net.LookupHost(host)
	if err != nil {
		log.Errorf("Failed to resolve preferred node %q: %v", host, err)
		return nil
	}
	for _, b := range backends {
		for _, addr := range addrs {
			if b.Id().Host() == addr {
				matched = append(matched, b)
				break
			}
		}
	}
	return matched
}

// spreadApplies reports whether the task-caching spread rule covers this
// request: probe ratio exactly 3 and every task carrying one identical
// preference list of one or two nodes.
func spreadApplies(req *sched.SchedulingRequest) bool {
	if !req.IsSetProbeRatio() || req.GetProbeRatio() != 3 {
		return false
	}
	if len(req.Tasks) == 0 || !req.Tasks[0].Constrained() {
		return false
	}
	first := req.Tasks[0].Preference.Nodes
	if len(first) > 2 {
		return false
	}
	for _, task := range req.Tasks[1:] {
		if !task.Constrained() || !equalHosts(task.Preference.Nodes, first) {
			return false
		}
	}
	return true
}

func equalHosts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// excludePreferredBackends drops every backend hosting one of the tasks'
// preferred nodes, so placement lands on workers that do not yet hold the
// job's input data.
func excludePreferredBackends(backends []cluster.Node, tasks []*sched.TaskSpec) []cluster.Node {
	excluded := map[cluster.NodeId]bool{}
	for _, task := range tasks {
		if task.Preference == nil {
			continue
		}
		for _, host := range task.Preference.Nodes {
			for _, b := range backendsForHost(backends, host) {
				excluded[b.Id()] = true
			}
		}
	}
	var kept []cluster.Node
	for _, b := range backends {
		if !excluded[b.Id()] {
			kept = append(kept, b)
		}
	}
	return kept
}
