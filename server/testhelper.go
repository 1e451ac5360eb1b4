package server

import (
	"net"
	"testing"

	"github.com/nats-io/nats-server/v2/server"
	natstest "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"gotest.tools/v3/assert"
)

// RunNatsServerOnPort will run a nats server on the given port. -1 picks a
// random port.
func RunNatsServerOnPort(port int) *server.Server {
	opts := natstest.DefaultTestOptions
	opts.Port = port
	return RunNatsServerWithOptions(&opts)
}

// RunNatsServerWithOptions will run a server with the given options.
func RunNatsServerWithOptions(opts *server.Options) *server.Server {
	return natstest.RunServer(opts)
}

func NewNatsConnection(t *testing.T, url string) *nats.Conn {
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("Failed to create default connection: %v\n", err)
	}
	return nc
}

// SendLines writes CRLF terminated lines to clientConn.
func SendLines(t *testing.T, clientConn net.Conn, lines ...string) {
	for _, line := range lines {
		_, err := clientConn.Write([]byte(line + "\r\n"))
		assert.NilError(t, err)
	}
}
