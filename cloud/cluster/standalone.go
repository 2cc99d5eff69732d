package cluster

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// standaloneState keeps per-application membership in memory, populated by
// local registrations. Used for single-machine deployments and tests.
type standaloneState struct {
	mu       sync.RWMutex
	backends map[string]map[NodeId]Node
}

func NewStandaloneState() *standaloneState {
	return &standaloneState{backends: make(map[string]map[NodeId]Node)}
}

func (s *standaloneState) WatchApplication(appId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.backends[appId]; !ok {
		s.backends[appId] = make(map[NodeId]Node)
	}
	return true
}

// AddBackend registers a node monitor for an application.
func (s *standaloneState) AddBackend(appId string, node Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.backends[appId]; !ok {
		s.backends[appId] = make(map[NodeId]Node)
	}
	log.Infof("Registering backend %s for app %s", node.Id(), appId)
	s.backends[appId][node.Id()] = node
}

// RemoveBackend drops a previously registered node monitor.
func (s *standaloneState) RemoveBackend(appId string, id NodeId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nodes, ok := s.backends[appId]; ok {
		delete(nodes, id)
	}
}

func (s *standaloneState) Backends(appId string) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes := make([]Node, 0, len(s.backends[appId]))
	for _, n := range s.backends[appId] {
		nodes = append(nodes, n)
	}
	return nodes
}

var _ SchedulerState = (*standaloneState)(nil)
