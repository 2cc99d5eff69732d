package scheduler

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"

	"github.com/sparrowdev/sparrow/cloud/cluster"
	"github.com/sparrowdev/sparrow/common/stats"
	frontendapi "github.com/sparrowdev/sparrow/frontendapi/client"
	"github.com/sparrowdev/sparrow/sched"
	workerapi "github.com/sparrowdev/sparrow/workerapi/client"
)

// sparrowScheduler is one stateless scheduler replica. It shares no
// per-request state with other replicas: request ids embed this scheduler's
// address, and every placer lives only in this process's registry.
//
// Concurrency: methods are called concurrently by the RPC server. The request
// counter is atomic, the frontend map is guarded by mu, the registry and each
// placer serialize themselves.
type sparrowScheduler struct {
	addr   sched.HostPort
	state  cluster.SchedulerState
	config SchedulerConfig

	workers   workerapi.Pool
	frontends frontendapi.Pool

	counter uint64

	mu            sync.RWMutex
	frontendAddrs map[string]string

	registry *requestRegistry

	randMu sync.Mutex
	rand   *rand.Rand

	stat  stats.StatsReceiver
	audit *auditLogger
}

// NewScheduler creates a scheduler listening at addr, using the given cluster
// state and client pools. auditLog may be nil to share the standard logger.
func NewScheduler(
	addr sched.HostPort,
	state cluster.SchedulerState,
	workers workerapi.Pool,
	frontends frontendapi.Pool,
	config SchedulerConfig,
	stat stats.StatsReceiver,
	auditLog *log.Logger,
) *sparrowScheduler {
	return &sparrowScheduler{
		addr:          addr,
		state:         state,
		config:        config,
		workers:       workers,
		frontends:     frontends,
		frontendAddrs: make(map[string]string),
		registry:      newRequestRegistry(),
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		stat:          stat,
		audit:         newAuditLogger(auditLog),
	}
}

func (s *sparrowScheduler) RegisterFrontend(appId string, addr string) bool {
	log.Debugf("registerFrontend(%s, %s)", appId, addr)
	if _, err := sched.ParseHostPort(addr); err != nil {
		log.Errorf("Bad address from frontend: %v", err)
		return false
	}
	s.mu.Lock()
	s.frontendAddrs[appId] = addr
	s.mu.Unlock()
	s.stat.Counter(stats.SchedRegisterFrontendCounter).Inc(1)
	return s.state.WatchApplication(appId)
}

func (s *sparrowScheduler) SubmitJob(req *sched.SchedulingRequest) error {
	defer s.stat.Latency(stats.SchedSubmitJobLatency_ms).Time().Stop()
	s.stat.Counter(stats.SchedSubmitJobCounter).Inc(1)
	start := time.Now()

	requestId := s.nextRequestId()
	s.audit.arrived(requestId, len(req.Tasks), s.addr)

	backends := s.state.Backends(req.App)

	constrained := req.Constrained()
	probeRatio := s.config.DefaultProbeRatioUnconstrained
	if constrained {
		probeRatio = s.config.DefaultProbeRatioConstrained
	}
	if req.IsSetProbeRatio() {
		probeRatio = req.GetProbeRatio()
	}

	var placer TaskPlacer
	if constrained {
		placer = newConstrainedTaskPlacer(requestId, probeRatio, s.newRand())
	} else {
		placer = newUnconstrainedTaskPlacer(requestId, probeRatio, s.newRand())
	}
	s.registry.Insert(requestId, placer)
	s.stat.Gauge(stats.SchedLivePlacersGauge).Update(int64(s.registry.Len()))

	if s.config.SpreadTaskCaching && spreadApplies(req) {
		log.Infof("Excluding preferred nodes for request %s to spread cached data", requestId)
		backends = excludePreferredBackends(backends, req.Tasks)
	}

	reservations := placer.Plan(req, requestId, backends, s.addr)

	// Best-effort broadcast: a worker we fail to reach just never pulls; the
	// remaining workers must still get their batches.
	for nodeId, batch := range reservations {
		addr := string(nodeId)
		s.audit.launchEnqueue(requestId, addr)
		client, err := s.workers.Borrow(addr)
		if err != nil {
			log.Errorf("Error borrowing node monitor client for %s: %v", addr, err)
			s.stat.Counter(stats.SchedEnqueueFailureCounter).Inc(1)
			continue
		}
		go s.enqueueReservations(addr, client, batch)
	}

	// A plan with no reservations (e.g. no workers available) will never see
	// a getTask, so the placer retires here.
	if placer.AllResponsesReceived() {
		if s.registry.Remove(requestId) {
			log.Infof("Request %s issued no reservations; retiring immediately", requestId)
		}
		s.stat.Gauge(stats.SchedLivePlacersGauge).Update(int64(s.registry.Len()))
	}

	log.Debugf("All reservations for request %s enqueued; returning. Total time: %v",
		requestId, time.Since(start))
	return nil
}

func (s *sparrowScheduler) enqueueReservations(addr string, client workerapi.Client, batch *sched.EnqueueTaskReservationsRequest) {
	if err := client.EnqueueTaskReservations(batch); err != nil {
		log.Errorf("Error enqueueing task reservations on %s: %v", addr, err)
		s.stat.Counter(stats.SchedEnqueueFailureCounter).Inc(1)
		s.workers.Discard(addr, client)
		return
	}
	s.audit.completeEnqueue(batch.RequestID, addr)
	s.workers.Return(addr, client)
}

func (s *sparrowScheduler) GetTask(requestId string, nodeMonitorAddress sched.HostPort) []*sched.TaskLaunchSpec {
	s.stat.Counter(stats.SchedGetTaskCounter).Inc(1)
	placer, ok := s.registry.Get(requestId)
	if !ok {
		log.Errorf("Received getTask() from %s for request %s which has no more pending reservations",
			nodeMonitorAddress, requestId)
		s.stat.Counter(stats.SchedGetTaskUnknownCounter).Inc(1)
		return nil
	}

	specs := placer.AssignTask(nodeMonitorAddress)
	if len(specs) > 1 {
		log.Errorf("Received invalid task placement for request %s: %s", requestId, spew.Sdump(specs))
		return nil
	} else if len(specs) == 1 {
		s.audit.assignedTask(requestId, specs[0].TaskID, nodeMonitorAddress.String())
		s.stat.Counter(stats.SchedAssignedTaskCounter).Inc(1)
	} else {
		s.audit.noTask(requestId)
	}

	if placer.AllResponsesReceived() {
		if s.registry.Remove(requestId) {
			log.Debugf("All responses received for request %s; retiring placer", requestId)
		}
		s.stat.Gauge(stats.SchedLivePlacersGauge).Update(int64(s.registry.Len()))
	}
	return specs
}

func (s *sparrowScheduler) SendFrontendMessage(appId string, taskId sched.FullTaskID, status int32, message []byte) {
	s.mu.RLock()
	addr, ok := s.frontendAddrs[appId]
	s.mu.RUnlock()
	if !ok {
		log.Errorf("Requested message sent to unregistered app: %s", appId)
		return
	}

	client, err := s.frontends.Borrow(addr)
	if err != nil {
		log.Errorf("Error borrowing frontend client for %s: %v", appId, err)
		s.stat.Counter(stats.SchedFrontendMessageErrCounter).Inc(1)
		return
	}
	go func() {
		if err := client.FrontendMessage(taskId, status, message); err != nil {
			log.Errorf("Error sending message to frontend %s: %v", appId, err)
			s.stat.Counter(stats.SchedFrontendMessageErrCounter).Inc(1)
			s.frontends.Discard(addr, client)
			return
		}
		s.frontends.Return(addr, client)
	}()
}

// nextRequestId returns an id unique across all schedulers: this scheduler's
// address plus an atomically incremented counter. The address embeds the port
// so co-located schedulers cannot collide. A counter rather than a request
// hash because identical jobs may be submitted repeatedly.
func (s *sparrowScheduler) nextRequestId() string {
	n := atomic.AddUint64(&s.counter, 1) - 1
	return fmt.Sprintf("%s_%d", s.addr, n)
}

// newRand seeds a placer-private RNG; placers must not share one since each
// serializes only its own state.
func (s *sparrowScheduler) newRand() *rand.Rand {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return rand.New(rand.NewSource(s.rand.Int63()))
}

var _ Scheduler = (*sparrowScheduler)(nil)
