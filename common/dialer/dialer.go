// Library for establishing Thrift network connections for clients.
// Provides Dialer interface with basic implementation.
package dialer

import (
	log "github.com/sirupsen/logrus"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"
)

// Interface for initializing a thrift connection for a client
type Dialer interface {
	Dial(addr string) (thrift.TTransport, thrift.TProtocolFactory, error)
}

type simpleDialer struct {
	transportFactory thrift.TTransportFactory
	protocolFactory  thrift.TProtocolFactory
}

// Create instance of basic Dialer that manages thrift transport/protocol factories.
// Opens a thrift connection directly to the given address.
func NewSimpleDialer(tf thrift.TTransportFactory, pf thrift.TProtocolFactory) Dialer {
	return &simpleDialer{transportFactory: tf, protocolFactory: pf}
}

func (d *simpleDialer) Dial(addr string) (thrift.TTransport, thrift.TProtocolFactory, error) {
	log.Info("Dialing ", addr)

	var transport thrift.TTransport
	transport, err := thrift.NewTSocket(addr)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error opening socket")
	}

	transport, err = d.transportFactory.GetTransport(transport)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error wrapping transport")
	}
	err = transport.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "error opening transport")
	}

	return transport, d.protocolFactory, nil
}
