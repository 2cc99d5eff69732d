// Package client is a thrift client for the scheduler surface, used by
// frontends (registerFrontend, submitJob, sendFrontendMessage) and by node
// monitors pulling tasks (getTask).
package client

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/sparrowdev/sparrow/sched"
	"github.com/sparrowdev/sparrow/sparrowapi"
)

type Client interface {
	Dial() error
	Close() error
	RegisterFrontend(app string, socketAddress string) (bool, error)
	SubmitJob(req *sched.SchedulingRequest) error
	GetTask(requestId string, nodeMonitorAddress sched.HostPort) ([]*sched.TaskLaunchSpec, error)
	SendFrontendMessage(app string, taskId sched.FullTaskID, status int32, message []byte) error
}

type client struct {
	addr             string
	transportFactory thrift.TTransportFactory
	protocolFactory  thrift.TProtocolFactory
	transport        thrift.TTransport
	scheduler        thrift.TClient
}

func NewClient(transportFactory thrift.TTransportFactory, protocolFactory thrift.TProtocolFactory, addr string) Client {
	return &client{
		addr:             addr,
		transportFactory: transportFactory,
		protocolFactory:  protocolFactory,
	}
}

func (c *client) Dial() error {
	_, err := c.dial()
	return err
}

func (c *client) dial() (thrift.TClient, error) {
	if c.scheduler == nil {
		if c.addr == "" {
			return nil, errors.New("cannot dial: no address")
		}
		log.Info("Dialing ", c.addr)
		var transport thrift.TTransport
		transport, err := thrift.NewTSocket(c.addr)
		if err != nil {
			return nil, errors.Wrap(err, "error opening socket")
		}
		transport, err = c.transportFactory.GetTransport(transport)
		if err != nil {
			return nil, errors.Wrap(err, "error wrapping transport")
		}
		if err = transport.Open(); err != nil {
			return nil, errors.Wrap(err, "error opening transport")
		}
		c.transport = transport
		c.scheduler = thrift.NewTStandardClient(
			c.protocolFactory.GetProtocol(transport), c.protocolFactory.GetProtocol(transport))
	}
	return c.scheduler, nil
}

func (c *client) Close() error {
	if c.transport != nil {
		return c.transport.Close()
	}
	return nil
}

func (c *client) RegisterFrontend(app string, socketAddress string) (bool, error) {
	scheduler, err := c.dial()
	if err != nil {
		return false, err
	}
	args := &sparrowapi.RegisterFrontendArgs{App: app, SocketAddress: socketAddress}
	result := &sparrowapi.RegisterFrontendResult{}
	if err := scheduler.Call(context.Background(), sparrowapi.MethodRegisterFrontend, args, result); err != nil {
		return false, err
	}
	return result.Success, nil
}

func (c *client) SubmitJob(req *sched.SchedulingRequest) error {
	scheduler, err := c.dial()
	if err != nil {
		return err
	}
	args := &sparrowapi.SubmitJobArgs{Request: req}
	return scheduler.Call(context.Background(), sparrowapi.MethodSubmitJob, args, &sched.Void{})
}

func (c *client) GetTask(requestId string, nodeMonitorAddress sched.HostPort) ([]*sched.TaskLaunchSpec, error) {
	scheduler, err := c.dial()
	if err != nil {
		return nil, err
	}
	args := &sparrowapi.GetTaskArgs{RequestID: requestId, NodeMonitorAddress: nodeMonitorAddress}
	result := &sparrowapi.GetTaskResult{}
	if err := scheduler.Call(context.Background(), sparrowapi.MethodGetTask, args, result); err != nil {
		return nil, err
	}
	return result.Success, nil
}

func (c *client) SendFrontendMessage(app string, taskId sched.FullTaskID, status int32, message []byte) error {
	scheduler, err := c.dial()
	if err != nil {
		return err
	}
	args := &sparrowapi.SendFrontendMessageArgs{App: app, TaskID: taskId, Status: status, Message: message}
	return scheduler.Call(context.Background(), sparrowapi.MethodSendFrontendMessage, args, &sched.Void{})
}
