// Package server exposes a scheduler over thrift. The processor is written
// against the wire structs in sparrowapi; one server instance handles
// frontends (registerFrontend, submitJob, sendFrontendMessage) and node
// monitors (getTask) on the same port.
package server

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"
	log "github.com/sirupsen/logrus"

	"github.com/sparrowdev/sparrow/common/stats"
	"github.com/sparrowdev/sparrow/sched"
	"github.com/sparrowdev/sparrow/sched/scheduler"
	"github.com/sparrowdev/sparrow/sparrowapi"
)

// Called by a main binary. Blocks until the connection is terminated.
func Serve(scheduler scheduler.Scheduler, stat stats.StatsReceiver, addr string,
	transportFactory thrift.TTransportFactory, protocolFactory thrift.TProtocolFactory) error {
	transport, err := thrift.NewTServerSocket(addr)
	if err != nil {
		return err
	}
	server := thrift.NewTSimpleServer4(
		NewProcessor(NewHandler(scheduler, stat)), transport, transportFactory, protocolFactory)

	log.Info("Serving thrift: ", addr)

	return server.Serve()
}

// Handler dispatches decoded RPCs to the scheduler and counts them.
type Handler struct {
	scheduler scheduler.Scheduler
	stat      stats.StatsReceiver
}

func NewHandler(scheduler scheduler.Scheduler, stat stats.StatsReceiver) *Handler {
	return &Handler{scheduler: scheduler, stat: stat.Scope("handler")}
}

func (h *Handler) RegisterFrontend(app string, socketAddress string) bool {
	h.stat.Counter("registerFrontendRpmCounter").Inc(1)
	return h.scheduler.RegisterFrontend(app, socketAddress)
}

func (h *Handler) SubmitJob(req *sched.SchedulingRequest) error {
	defer h.stat.Latency("submitJobLatency_ms").Time().Stop()
	h.stat.Counter("submitJobRpmCounter").Inc(1)
	return h.scheduler.SubmitJob(req)
}

func (h *Handler) GetTask(requestId string, nodeMonitorAddress sched.HostPort) []*sched.TaskLaunchSpec {
	defer h.stat.Latency("getTaskLatency_ms").Time().Stop()
	h.stat.Counter("getTaskRpmCounter").Inc(1)
	return h.scheduler.GetTask(requestId, nodeMonitorAddress)
}

func (h *Handler) SendFrontendMessage(app string, taskId sched.FullTaskID, status int32, message []byte) {
	h.stat.Counter("sendFrontendMessageRpmCounter").Inc(1)
	h.scheduler.SendFrontendMessage(app, taskId, status, message)
}

// processor routes incoming thrift messages by method name.
type processor struct {
	handler *Handler
}

func NewProcessor(handler *Handler) thrift.TProcessor {
	return &processor{handler: handler}
}

func (p *processor) Process(ctx context.Context, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	name, _, seqId, err := iprot.ReadMessageBegin()
	if err != nil {
		return false, err
	}
	switch name {
	case sparrowapi.MethodRegisterFrontend:
		return p.processRegisterFrontend(ctx, seqId, iprot, oprot)
	case sparrowapi.MethodSubmitJob:
		return p.processSubmitJob(ctx, seqId, iprot, oprot)
	case sparrowapi.MethodGetTask:
		return p.processGetTask(ctx, seqId, iprot, oprot)
	case sparrowapi.MethodSendFrontendMessage:
		return p.processSendFrontendMessage(ctx, seqId, iprot, oprot)
	}

	iprot.Skip(thrift.STRUCT)
	iprot.ReadMessageEnd()
	x := thrift.NewTApplicationException(thrift.UNKNOWN_METHOD, "Unknown function "+name)
	oprot.WriteMessageBegin(name, thrift.EXCEPTION, seqId)
	x.Write(oprot)
	oprot.WriteMessageEnd()
	oprot.Flush(ctx)
	return false, x
}

func (p *processor) processRegisterFrontend(ctx context.Context, seqId int32, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	args := sparrowapi.RegisterFrontendArgs{}
	if err := p.readArgs(ctx, &args, sparrowapi.MethodRegisterFrontend, seqId, iprot, oprot); err != nil {
		return false, err
	}
	result := sparrowapi.RegisterFrontendResult{
		Success: p.handler.RegisterFrontend(args.App, args.SocketAddress),
	}
	return p.writeReply(ctx, &result, sparrowapi.MethodRegisterFrontend, seqId, oprot)
}

func (p *processor) processSubmitJob(ctx context.Context, seqId int32, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	args := sparrowapi.SubmitJobArgs{}
	if err := p.readArgs(ctx, &args, sparrowapi.MethodSubmitJob, seqId, iprot, oprot); err != nil {
		return false, err
	}
	if args.Request == nil {
		args.Request = &sched.SchedulingRequest{}
	}
	if err := p.handler.SubmitJob(args.Request); err != nil {
		x := thrift.NewTApplicationException(thrift.INTERNAL_ERROR, err.Error())
		oprot.WriteMessageBegin(sparrowapi.MethodSubmitJob, thrift.EXCEPTION, seqId)
		x.Write(oprot)
		oprot.WriteMessageEnd()
		oprot.Flush(ctx)
		return true, nil
	}
	return p.writeReply(ctx, &sched.Void{}, sparrowapi.MethodSubmitJob, seqId, oprot)
}

func (p *processor) processGetTask(ctx context.Context, seqId int32, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	args := sparrowapi.GetTaskArgs{}
	if err := p.readArgs(ctx, &args, sparrowapi.MethodGetTask, seqId, iprot, oprot); err != nil {
		return false, err
	}
	result := sparrowapi.GetTaskResult{
		Success: p.handler.GetTask(args.RequestID, args.NodeMonitorAddress),
	}
	return p.writeReply(ctx, &result, sparrowapi.MethodGetTask, seqId, oprot)
}

func (p *processor) processSendFrontendMessage(ctx context.Context, seqId int32, iprot, oprot thrift.TProtocol) (bool, thrift.TException) {
	args := sparrowapi.SendFrontendMessageArgs{}
	if err := p.readArgs(ctx, &args, sparrowapi.MethodSendFrontendMessage, seqId, iprot, oprot); err != nil {
		return false, err
	}
	p.handler.SendFrontendMessage(args.App, args.TaskID, args.Status, args.Message)
	return p.writeReply(ctx, &sched.Void{}, sparrowapi.MethodSendFrontendMessage, seqId, oprot)
}

type wireStruct interface {
	Write(oprot thrift.TProtocol) error
	Read(iprot thrift.TProtocol) error
}

func (p *processor) readArgs(ctx context.Context, args wireStruct, method string, seqId int32, iprot, oprot thrift.TProtocol) thrift.TException {
	if err := args.Read(iprot); err != nil {
		iprot.ReadMessageEnd()
		x := thrift.NewTApplicationException(thrift.PROTOCOL_ERROR, err.Error())
		oprot.WriteMessageBegin(method, thrift.EXCEPTION, seqId)
		x.Write(oprot)
		oprot.WriteMessageEnd()
		oprot.Flush(ctx)
		return x
	}
	return iprot.ReadMessageEnd()
}

func (p *processor) writeReply(ctx context.Context, result wireStruct, method string, seqId int32, oprot thrift.TProtocol) (bool, thrift.TException) {
	if err := oprot.WriteMessageBegin(method, thrift.REPLY, seqId); err != nil {
		return false, err
	}
	if err := result.Write(oprot); err != nil {
		return false, err
	}
	if err := oprot.WriteMessageEnd(); err != nil {
		return false, err
	}
	if err := oprot.Flush(ctx); err != nil {
		return false, err
	}
	return true, nil
}
