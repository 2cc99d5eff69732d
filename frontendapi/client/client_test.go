package client

import (
	"bytes"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/sparrowdev/sparrow/sched"
)

func TestFrontendMessageArgsWire(t *testing.T) {
	in := &frontendMessageArgs{
		TaskID:  sched.FullTaskID{TaskID: "t1", RequestID: "10.0.0.1:20503_0", AppID: "appA"},
		Status:  2,
		Message: []byte("finished"),
	}

	transport := thrift.NewTMemoryBufferLen(1024)
	protocol := thrift.NewTBinaryProtocolFactoryDefault().GetProtocol(transport)
	if err := in.Write(protocol); err != nil {
		t.Fatal(err)
	}

	out := &frontendMessageArgs{}
	if err := out.Read(protocol); err != nil {
		t.Fatal(err)
	}
	if out.TaskID != in.TaskID || out.Status != 2 || !bytes.Equal(out.Message, in.Message) {
		t.Errorf("bad args after round trip: %+v", out)
	}
}
