// Package client provides the thrift client the scheduler uses to enqueue
// task reservations on node monitors, plus the pool the connections are
// borrowed from.
package client

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/sparrowdev/sparrow/common/dialer"
	"github.com/sparrowdev/sparrow/sched"
)

type Client interface {
	EnqueueTaskReservations(req *sched.EnqueueTaskReservationsRequest) error
}

// Pool hands out Clients per node monitor address. Return a client after a
// successful call; Discard one whose call errored, since its connection may
// be in a bad state.
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

func (c *thriftClient) EnqueueTaskReservations(req *sched.EnqueueTaskReservationsRequest) error {
	args := &enqueueTaskReservationsArgs{Request: req}
	return c.conn.Client().Call(context.Background(), "enqueueTaskReservations", args, &sched.Void{})
}

type enqueueTaskReservationsArgs struct {
	Request *sched.EnqueueTaskReservationsRequest
}

func (p *enqueueTaskReservationsArgs) Write(oprot thrift.TProtocol) error {
	if err := oprot.WriteStructBegin("enqueueTaskReservations_args"); err != nil {
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

func (p *enqueueTaskReservationsArgs) Read(iprot thrift.TProtocol) error {
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
			p.Request = &sched.EnqueueTaskReservationsRequest{}
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
