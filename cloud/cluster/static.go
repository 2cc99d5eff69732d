package cluster

// staticState serves a fixed node monitor list from configuration. Every
// watched application sees the same worker set.
type staticState struct {
	nodes []Node
}

func NewStaticState(addrs []string) *staticState {
	nodes := make([]Node, 0, len(addrs))
	for _, addr := range addrs {
		nodes = append(nodes, NewIdNode(addr))
	}
	return &staticState{nodes: nodes}
}

func (s *staticState) WatchApplication(appId string) bool {
	return len(s.nodes) > 0
}

func (s *staticState) Backends(appId string) []Node {
	nodes := make([]Node, len(s.nodes))
	copy(nodes, s.nodes)
	return nodes
}

var _ SchedulerState = (*staticState)(nil)
