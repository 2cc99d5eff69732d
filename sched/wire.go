package sched

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// Thrift bindings for the domain types. Hand-rolled rather than generated so
// the wire structs and the domain structs are one and the same; field ids and
// names here are the wire contract and must not change.

func writeField(oprot thrift.TProtocol, name string, typ thrift.TType, id int16, write func() error) error {
	if err := oprot.WriteFieldBegin(name, typ, id); err != nil {
		return err
	}
	if err := write(); err != nil {
		return err
	}
	return oprot.WriteFieldEnd()
}

func writeStructEnd(oprot thrift.TProtocol) error {
	if err := oprot.WriteFieldStop(); err != nil {
		return err
	}
	return oprot.WriteStructEnd()
}

// Void is the wire shape of a method that returns nothing.
type Void struct{}

func (p *Void) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("Void"); err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *Void) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return err
	}
	for {
		_, ftype, _, err := iprot.ReadFieldBegin()
		if err != nil {
			return err
		}
		if ftype == thrift.STOP {
			break
		}
		if err = iprot.Skip(ftype); err != nil {
			return err
		}
		if err = iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

func (p *PlacementPreference) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("PlacementPreference"); err != nil {
		return err
	}
	err := writeField(oprot, "nodes", thrift.LIST, 1, func() error {
		if err := oprot.WriteListBegin(thrift.STRING, len(p.Nodes)); err != nil {
			return err
		}
		for _, node := range p.Nodes {
			if err := oprot.WriteString(node); err != nil {
				return err
			}
		}
		return oprot.WriteListEnd()
	})
	if err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *PlacementPreference) Read(iprot thrift.TProtocol) error {
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
		case fid == 1 && ftype == thrift.LIST:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			p.Nodes = make([]string, 0, size)
			for i := 0; i < size; i++ {
				node, err := iprot.ReadString()
				if err != nil {
					return err
				}
				p.Nodes = append(p.Nodes, node)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ftype); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd()
}

func (p *TaskSpec) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("TaskSpec"); err != nil {
		return err
	}
	err := writeField(oprot, "taskId", thrift.STRING, 1, func() error {
		return oprot.WriteString(p.TaskID)
	})
	if err != nil {
		return err
	}
	if p.Preference != nil {
		err = writeField(oprot, "preference", thrift.STRUCT, 2, func() error {
			return p.Preference.Write(oprot)
		})
		if err != nil {
			return err
		}
	}
	err = writeField(oprot, "message", thrift.STRING, 3, func() error {
		return oprot.WriteBinary(p.Message)
	})
	if err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *TaskSpec) Read(iprot thrift.TProtocol) error {
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
			if p.TaskID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRUCT:
			p.Preference = &PlacementPreference{}
			if err = p.Preference.Read(iprot); err != nil {
				return err
			}
		case fid == 3 && ftype == thrift.STRING:
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

func (p *SchedulingRequest) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("SchedulingRequest"); err != nil {
		return err
	}
	err := writeField(oprot, "app", thrift.STRING, 1, func() error {
		return oprot.WriteString(p.App)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "tasks", thrift.LIST, 2, func() error {
		if err := oprot.WriteListBegin(thrift.STRUCT, len(p.Tasks)); err != nil {
			return err
		}
		for _, task := range p.Tasks {
			if err := task.Write(oprot); err != nil {
				return err
			}
		}
		return oprot.WriteListEnd()
	})
	if err != nil {
		return err
	}
	if p.ProbeRatio != nil {
		err = writeField(oprot, "probeRatio", thrift.DOUBLE, 3, func() error {
			return oprot.WriteDouble(*p.ProbeRatio)
		})
		if err != nil {
			return err
		}
	}
	return writeStructEnd(oprot)
}

func (p *SchedulingRequest) Read(iprot thrift.TProtocol) error {
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
		case fid == 2 && ftype == thrift.LIST:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			p.Tasks = make([]*TaskSpec, 0, size)
			for i := 0; i < size; i++ {
				task := &TaskSpec{}
				if err := task.Read(iprot); err != nil {
					return err
				}
				p.Tasks = append(p.Tasks, task)
			}
			if err := iprot.ReadListEnd(); err != nil {
				return err
			}
		case fid == 3 && ftype == thrift.DOUBLE:
			ratio, err := iprot.ReadDouble()
			if err != nil {
				return err
			}
			p.ProbeRatio = &ratio
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

func (p *HostPort) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("HostPort"); err != nil {
		return err
	}
	err := writeField(oprot, "host", thrift.STRING, 1, func() error {
		return oprot.WriteString(p.Host)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "port", thrift.I32, 2, func() error {
		return oprot.WriteI32(p.Port)
	})
	if err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *HostPort) Read(iprot thrift.TProtocol) error {
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
			if p.Host, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.I32:
			if p.Port, err = iprot.ReadI32(); err != nil {
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

func (p *EnqueueTaskReservationsRequest) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("EnqueueTaskReservationsRequest"); err != nil {
		return err
	}
	err := writeField(oprot, "appId", thrift.STRING, 1, func() error {
		return oprot.WriteString(p.AppID)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "requestId", thrift.STRING, 2, func() error {
		return oprot.WriteString(p.RequestID)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "schedulerAddress", thrift.STRUCT, 3, func() error {
		return p.SchedulerAddress.Write(oprot)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "numReservations", thrift.I32, 4, func() error {
		return oprot.WriteI32(p.NumReservations)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "tasks", thrift.LIST, 5, func() error {
		if err := oprot.WriteListBegin(thrift.STRUCT, len(p.Tasks)); err != nil {
			return err
		}
		for _, task := range p.Tasks {
			if err := task.Write(oprot); err != nil {
				return err
			}
		}
		return oprot.WriteListEnd()
	})
	if err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *EnqueueTaskReservationsRequest) Read(iprot thrift.TProtocol) error {
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
			if p.AppID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRING:
			if p.RequestID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 3 && ftype == thrift.STRUCT:
			if err = p.SchedulerAddress.Read(iprot); err != nil {
				return err
			}
		case fid == 4 && ftype == thrift.I32:
			if p.NumReservations, err = iprot.ReadI32(); err != nil {
				return err
			}
		case fid == 5 && ftype == thrift.LIST:
			_, size, err := iprot.ReadListBegin()
			if err != nil {
				return err
			}
			p.Tasks = make([]*TaskSpec, 0, size)
			for i := 0; i < size; i++ {
				task := &TaskSpec{}
				if err := task.Read(iprot); err != nil {
					return err
				}
				p.Tasks = append(p.Tasks, task)
			}
			if err := iprot.ReadListEnd(); err != nil {
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

func (p *TaskLaunchSpec) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("TaskLaunchSpec"); err != nil {
		return err
	}
	err := writeField(oprot, "taskId", thrift.STRING, 1, func() error {
		return oprot.WriteString(p.TaskID)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "message", thrift.STRING, 2, func() error {
		return oprot.WriteBinary(p.Message)
	})
	if err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *TaskLaunchSpec) Read(iprot thrift.TProtocol) error {
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
			if p.TaskID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRING:
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

func (p *FullTaskID) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("FullTaskID"); err != nil {
		return err
	}
	err := writeField(oprot, "taskId", thrift.STRING, 1, func() error {
		return oprot.WriteString(p.TaskID)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "requestId", thrift.STRING, 2, func() error {
		return oprot.WriteString(p.RequestID)
	})
	if err != nil {
		return err
	}
	err = writeField(oprot, "appId", thrift.STRING, 3, func() error {
		return oprot.WriteString(p.AppID)
	})
	if err != nil {
		return err
	}
	return writeStructEnd(oprot)
}

func (p *FullTaskID) Read(iprot thrift.TProtocol) error {
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
			if p.TaskID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.STRING:
			if p.RequestID, err = iprot.ReadString(); err != nil {
				return err
			}
		case fid == 3 && ftype == thrift.STRING:
			if p.AppID, err = iprot.ReadString(); err != nil {
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
