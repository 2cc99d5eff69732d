package scheduler

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// requestRegistry maps live request ids to their task placer. A placer is
// inserted exactly once during SubmitJob and removed exactly once when it
// drains, so the registry does not grow without bound.
type requestRegistry struct {
	mu      sync.Mutex
	placers map[string]TaskPlacer
}

func newRequestRegistry() *requestRegistry {
	return &requestRegistry{placers: make(map[string]TaskPlacer)}
}

func (r *requestRegistry) Insert(requestId string, placer TaskPlacer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.placers[requestId]; ok {
		// Request ids are allocated at most once, so this indicates an
		// allocator bug. Keep the existing placer.
		log.Errorf("Placer for request %s already registered", requestId)
		return
	}
	r.placers[requestId] = placer
}

func (r *requestRegistry) Get(requestId string) (TaskPlacer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	placer, ok := r.placers[requestId]
	return placer, ok
}

// Remove deletes the placer and reports whether this caller deleted it, so
// that concurrent getTask calls observing a drained placer race to at most
// one removal.
func (r *requestRegistry) Remove(requestId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.placers[requestId]; !ok {
		return false
	}
	delete(r.placers, requestId)
	return true
}

func (r *requestRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.placers)
}
