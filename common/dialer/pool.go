package dialer

import (
	"sync"

	"github.com/apache/thrift/lib/go/thrift"
)

// Conn is one established thrift connection checked out of a Pool.
type Conn struct {
	addr      string
	transport thrift.TTransport
	client    thrift.TClient
}

// Client returns the thrift client speaking over this connection.
func (c *Conn) Client() thrift.TClient {
	return c.client
}

func (c *Conn) Addr() string {
	return c.addr
}

func (c *Conn) close() {
	c.transport.Close()
}

// Pool keeps reusable thrift connections keyed by endpoint address. Borrowed
// connections must be handed back with Return after a successful call or
// dropped with Discard after an error, since a connection that errored may
// have unread bytes in flight.
type Pool struct {
	dialer  Dialer
	maxIdle int

	mu   sync.Mutex
	idle map[string][]*Conn
}

func NewPool(d Dialer, maxIdlePerEndpoint int) *Pool {
	return &Pool{
		dialer:  d,
		maxIdle: maxIdlePerEndpoint,
		idle:    make(map[string][]*Conn),
	}
}

// Borrow returns an idle connection for addr, dialing a new one if none is
// pooled.
func (p *Pool) Borrow(addr string) (*Conn, error) {
	p.mu.Lock()
	if conns := p.idle[addr]; len(conns) > 0 {
		conn := conns[len(conns)-1]
		p.idle[addr] = conns[:len(conns)-1]
		p.mu.Unlock()
		return conn, nil
	}
	p.mu.Unlock()

	transport, protocolFactory, err := p.dialer.Dial(addr)
	if err != nil {
		return nil, err
	}
	client := thrift.NewTStandardClient(
		protocolFactory.GetProtocol(transport), protocolFactory.GetProtocol(transport))
	return &Conn{addr: addr, transport: transport, client: client}, nil
}

// Return hands a healthy connection back for reuse.
func (p *Pool) Return(conn *Conn) {
	p.mu.Lock()
	if len(p.idle[conn.addr]) < p.maxIdle {
		p.idle[conn.addr] = append(p.idle[conn.addr], conn)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	conn.close()
}

// Discard closes a connection without pooling it.
func (p *Pool) Discard(conn *Conn) {
	conn.close()
}

// Close drops all idle connections.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conns := range p.idle {
		for _, conn := range conns {
			conn.close()
		}
	}
	p.idle = make(map[string][]*Conn)
}
