// Package sparrowapi defines the wire shapes of the scheduler's thrift
// surface: the method argument and result structs shared by the server
// processor and the client. Method semantics live in sched/scheduler.
package sparrowapi

import (
	"github.com/apache/thrift/lib/go/thrift"

	"github.com/sparrowdev/sparrow/sched"
)

// Method names as they appear on the wire.
const (
	MethodRegisterFrontend    = "registerFrontend"
	MethodSubmitJob           = "submitJob"
	MethodGetTask             = "getTask"
	MethodSendFrontendMessage = "sendFrontendMessage"
)

type RegisterFrontendArgs struct {
	App           string
	SocketAddress string
}

func (p *RegisterFrontendArgs) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("registerFrontend_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("app", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(p.App); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("socketAddress", thrift.STRING, 2); err != nil {
		return err
	}
	if err := oprot.WriteString(p.SocketAddress); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func (p *RegisterFrontendArgs) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, fid, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch {
		case fid == 1 && ftype == thrift.STRING:
			if p.App, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRING:
			if p.SocketAddress, err = iprot.ReadString(); err != nil {
				return err
			}
		default:
			if err = iprot.Skip(ftype); err != nil {
				return err
			}
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

type RegisterFrontendResult struct {
	Success bool
}

func (p *RegisterFrontendResult) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("registerFrontend_result"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("success", thrift.BOOL, 0); err != nil {
		return err
	}
	if err := oprot.WriteBool(p.Success); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func (p *RegisterFrontendResult) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, fid, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		if fid == 0 && ftype == thrift.BOOL {
			if p.Success, err = iprot.ReadBool(); err != nil {
				return err
			}
		} else if err = iprot.Skip(ftype); err != nil {
			return err
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

type SubmitJobArgs struct {
	Request *sched.SchedulingRequest
}

func (p *SubmitJobArgs) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("submitJob_args"); err != nil {
		return err
	}
	if p.Request != nil {
		if err := oprot.WriteFieldBegin("request", thrift.STRUCT, 1); err != nil {
			return err
		}
		if err := p.Request.Write(oprot); err != nil {
			return err
		}
		if err := oprot.WriteFieldEnd(); err != nil {
			return err
		}
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func (p *SubmitJobArgs) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, fid, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		if fid == 1 && ftype == thrift.STRUCT {
			p.Request = &sched.SchedulingRequest{}
			if err = p.Request.Read(iprot); err != nil {
				return err
			}
		} else if err = iprot.Skip(ftype); err != nil {
			return err
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

type GetTaskArgs struct {
	RequestID          string
	NodeMonitorAddress sched.HostPort
}

func (p *GetTaskArgs) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("getTask_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("requestId", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(p.RequestID); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("nodeMonitorAddress", thrift.STRUCT, 2); err != nil {
		return err
	}
	if err := p.NodeMonitorAddress.Write(oprot); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func (p *GetTaskArgs) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, fid, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch {
		case fid == 1 && ftype == thrift.STRING:
			if p.RequestID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRUCT:
			if err = p.NodeMonitorAddress.Read(iprot); err != nil {
				return err
			}
		default:
			if err = iprot.Skip(ftype); err != nil {
				return err
			}
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

type GetTaskResult struct {
	Success []*sched.TaskLaunchSpec
}

func (p *GetTaskResult) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("getTask_result"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("success", thrift.LIST, 0); err != nil {
		return err
	}
	if err := oprot.WriteListBegin(thrift.STRUCT, len(p.Success)); err != nil {
		return err
	}
	for _, spec := range p.Success {
		if err := spec.Write(oprot); err != nil {
			return err
		}
	}
	if err := oprot.WriteListEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func (p *GetTaskResult) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, fid, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		if fid == 0 && ftype == thrift.LIST {
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			p.Success = make([]*sched.TaskLaunchSpec, 0, size)
			for i := 0; i < size; i++ {
				spec := &sched.TaskLaunchSpec{}
				if err := spec.Read(iprot); err != nil {
					return err
				}
				p.Success = append(p.Success, spec)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		} else if err = iprot.Skip(ftype); err != nil {
			return err
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

type SendFrontendMessageArgs struct {
	App     string
	TaskID  sched.FullTaskID
	Status  int32
	Message []byte
}

func (p *SendFrontendMessageArgs) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("sendFrontendMessage_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("app", thrift.STRING, 1); err != nil {
		return err
	}
	if err := oprot.WriteString(p.App); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("taskId", thrift.STRUCT, 2); err != nil {
		return err
	}
	if err := p.TaskID.Write(oprot); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("status", thrift.I32, 3); err != nil {
		return err
	}
	if err := oprot.WriteI32(p.Status); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("message", thrift.STRING, 4); err != nil {
		return err
	}
	if err := oprot.WriteBinary(p.Message); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

func (p *SendFrontendMessageArgs) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, fid, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		switch {
		case fid == 1 && ftype == thrift.STRING:
			if p.App, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRUCT:
			if err = p.TaskID.Read(iprot); err != nil {
				return err
			}
		case fid == 3 && ftype == thrift.I32:
			if p.Status, err = iprot.ReadI32(); err != nil {
				return err
			}
		case fid == 4 && ftype == thrift.STRING:
			if p.Message, err = iprot.ReadBinary(); err != nil {
				return err
			}
		default:
			if err = iprot.Skip(ftype); err != nil {
				return err
			}
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}
