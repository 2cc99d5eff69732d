package sched

import (
	"fmt"
	"net"
	"strconv"

	"github.com/pkg/errors"
)

// HostPort identifies one network endpoint: a scheduler, a node monitor or
// a frontend.
type HostPort struct {
	Host string
	Port int32
}

func (hp HostPort) String() string {
	return fmt.Sprintf("%s:%d", hp.Host, hp.Port)
}

// ParseHostPort parses "host:port" into a HostPort.
func ParseHostPort(addr string) (HostPort, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return HostPort{}, errors.Wrapf(err, "bad address %q", addr)
	}
	port, err := strconv.ParseInt(portStr, 10, 32)
	if err != nil {
		return HostPort{}, errors.Wrapf(err, "bad port in address %q", addr)
	}
	return HostPort{Host: host, Port: int32(port)}, nil
}

// EnqueueTaskReservationsRequest asks one node monitor to enqueue reservation
// credits for a request. The node monitor treats the credits as opaque: when
// it has capacity it calls getTask on SchedulerAddress, once per credit.
// Tasks lists the task specs eligible to fill the credits at this worker.
type EnqueueTaskReservationsRequest struct {
	AppID            string
	RequestID        string
	SchedulerAddress HostPort
	NumReservations  int32
	Tasks            []*TaskSpec
}

// TaskLaunchSpec is the reply to a getTask call: the payload of exactly one
// pending task, or nothing (an empty reply releases the credit).
type TaskLaunchSpec struct {
	TaskID  string
	Message []byte
}

// FullTaskID names a task globally: across schedulers (RequestID embeds the
// scheduler's address) and across applications.
type FullTaskID struct {
	TaskID    string
	RequestID string
	AppID     string
}

func (id FullTaskID) String() string {
	return fmt.Sprintf("%s.%s.%s", id.AppID, id.RequestID, id.TaskID)
}
