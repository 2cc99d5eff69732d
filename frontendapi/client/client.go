// Package client provides the thrift client the scheduler uses to deliver
// task status messages to frontends.
package client

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/sparrowdev/sparrow/common/dialer"
	"github.com/sparrowdev/sparrow/sched"
)

type Client interface {
	FrontendMessage(taskId sched.FullTaskID, status int32, message []byte) error
}

// Pool hands out Clients per frontend address with the same return-on-success
// / discard-on-error contract as the node monitor pool.
type Pool interface {
	Borrow(addr string) (Client, error)
	Return(addr string, c Client)
	Discard(addr string, c Client)
}

func NewPool(d dialer.Dialer, maxIdlePerEndpoint int) Pool {
	return &thriftPool{conns: dialer.NewPool(d, maxIdlePerEndpoint)}
}

type thriftPool struct {
	conns *dialer.Pool
}

func (p *thriftPool) Borrow(addr string) (Client, error) {
	conn, err := p.conns.Borrow(addr)
	if err != nil {
		return nil, err
	}
	return &thriftClient{conn: conn}, nil
}

func (p *thriftPool) Return(addr string, c Client) {
	if tc, ok := c.(*thriftClient); ok {
		p.conns.Return(tc.conn)
	}
}

func (p *thriftPool) Discard(addr string, c Client) {
	if tc, ok := c.(*thriftClient); ok {
		p.conns.Discard(tc.conn)
	}
}

type thriftClient struct {
	conn *dialer.Conn
}

func (c *thriftClient) FrontendMessage(taskId sched.FullTaskID, status int32, message []byte) error {
	args := &frontendMessageArgs{TaskID: taskId, Status: status, Message: message}
	return c.conn.Client().Call(context.Background(), "frontendMessage", args, &sched.Void{})
}

type frontendMessageArgs struct {
	TaskID  sched.FullTaskID
	Status  int32
	Message []byte
}

func (p *frontendMessageArgs) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("frontendMessage_args"); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("taskId", thrift.STRUCT, 1); err != nil {
		return err
	}
	if err := p.TaskID.Write(oprot); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("status", thrift.I32, 2); err != nil {
		return err
	}
	if err := oprot.WriteI32(p.Status); err != nil {
		return err
	}
	if err := oprot.WriteFieldEnd(); err != nil {
		return err
	}
	if err := oprot.WriteFieldBegin("message", thrift.STRING, 3); err != nil {
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

func (p *frontendMessageArgs) Read(iprot thrift.TProtocol) error {
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
		case fid == 1 && ftype == thrift.STRUCT:
			if err = p.TaskID.Read(iprot); err != nil {
				return err
			}
		case fid == 2 && ftype == thrift.I32:
			if p.Status, err = iprot.ReadI32(); err != nil {
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
