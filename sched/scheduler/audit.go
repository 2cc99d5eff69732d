package scheduler

import (
	"github.com/sirupsen/logrus"

	"github.com/sparrowdev/sparrow/sched"
)

// Audit events, one structured line each. Lines for one request are partially
// ordered: arrived precedes every node_monitor_launch_enqueue_task, and
// assigned_task / get_task_no_task follow.
const (
	auditEventArrived         = "arrived"
	auditEventLaunchEnqueue   = "node_monitor_launch_enqueue_task"
	auditEventCompleteEnqueue = "node_monitor_complete_enqueue_task"
	auditEventAssignedTask    = "assigned_task"
	auditEventNoTask          = "get_task_no_task"
)

// auditLogger writes request lifecycle events to a dedicated logger so the
// audit stream can be routed and aggregated separately from diagnostics.
type auditLogger struct {
	log *logrus.Logger
}

func newAuditLogger(log *logrus.Logger) *auditLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &auditLogger{log: log}
}

func (a *auditLogger) arrived(requestId string, numTasks int, addr sched.HostPort) {
	// The scheduler address is somewhat redundant here since all events in
	// one audit stream come from the same scheduler, but it simplifies log
	// aggregation when multiple daemons share a machine.
	a.log.WithFields(logrus.Fields{
		"requestId": requestId,
		"numTasks":  numTasks,
		"host":      addr.Host,
		"port":      addr.Port,
	}).Info(auditEventArrived)
}

func (a *auditLogger) launchEnqueue(requestId string, nodeMonitor string) {
	a.log.WithFields(logrus.Fields{
		"requestId":   requestId,
		"nodeMonitor": nodeMonitor,
	}).Info(auditEventLaunchEnqueue)
}

func (a *auditLogger) completeEnqueue(requestId string, nodeMonitor string) {
	a.log.WithFields(logrus.Fields{
		"requestId":   requestId,
		"nodeMonitor": nodeMonitor,
	}).Info(auditEventCompleteEnqueue)
}

func (a *auditLogger) assignedTask(requestId string, taskId string, nodeMonitor string) {
	a.log.WithFields(logrus.Fields{
		"requestId":   requestId,
		"taskId":      taskId,
		"nodeMonitor": nodeMonitor,
	}).Info(auditEventAssignedTask)
}

func (a *auditLogger) noTask(requestId string) {
	a.log.WithFields(logrus.Fields{
		"requestId": requestId,
	}).Info(auditEventNoTask)
}
