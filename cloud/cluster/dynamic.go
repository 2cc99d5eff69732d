package cluster

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"
)

// Fetcher returns a full list of visible node monitors from an external
// membership source.
type Fetcher interface {
	Fetch() ([]Node, error)
}

// dynamicState is the production SchedulerState: a snapshot of the worker set
// maintained in place from an external membership source. The fetch loop runs
// in its own goroutine and replaces the snapshot under the lock; Backends
// readers always see a consistent set.
type dynamicState struct {
	mu      sync.RWMutex
	state   *state
	watched map[string]bool

	fetcher Fetcher
	retry   backoff.BackOff
	tickCh  <-chan time.Time
	closeCh chan struct{}
}

// NewDynamicState polls f every interval, retrying failed fetches per b.
func NewDynamicState(f Fetcher, interval time.Duration, b backoff.BackOff) *dynamicState {
	s := &dynamicState{
		state:   makeState(nil),
		watched: make(map[string]bool),
		fetcher: f,
		retry:   b,
		tickCh:  time.NewTicker(interval).C,
		closeCh: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *dynamicState) loop() {
	for {
		select {
		case <-s.tickCh:
			var nodes []Node
			op := func() error {
				var err error
				nodes, err = s.fetcher.Fetch()
				return err
			}
			if err := backoff.Retry(op, s.retry); err != nil {
				log.Errorf("Failed to fetch cluster membership, keeping last snapshot: %v", err)
				continue
			}
			s.mu.Lock()
			s.state.setAndDiff(nodes)
			s.mu.Unlock()
		case <-s.closeCh:
			return
		}
	}
}

func (s *dynamicState) Close() {
	close(s.closeCh)
}

func (s *dynamicState) WatchApplication(appId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watched[appId] = true
	return true
}

func (s *dynamicState) Backends(appId string) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.watched[appId] {
		return nil
	}
	return s.state.snapshot()
}

var _ SchedulerState = (*dynamicState)(nil)
