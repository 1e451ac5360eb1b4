package server

import (
	"context"
	"errors"
	"net"
	"sync"

	"github.com/openfms/nmea-device/bus"
	"github.com/openfms/nmea-device/db/clickhouse"
	"go.uber.org/zap"
)

type Empty struct{}

// Options tunes what the server does with each connection.
type Options struct {
	// RawLines reports every received line, not only the undecodable ones.
	RawLines bool
	// Talkers limits published messages to these talker prefixes, e.g. "GP".
	// Empty means all.
	Talkers []string
}

type NMEAServer struct {
	listenAddr string
	mu         sync.Mutex
	ln         net.Listener
	stopped    bool
	quitChan   chan Empty
	quitOnce   sync.Once
	wg         sync.WaitGroup
	log        *zap.Logger
	publisher  bus.Publisher
	nmeaDB     clickhouse.NMEADBConn
	opts       Options
	ctx        context.Context
	cancel     context.CancelFunc
}

type TcpServerInterface interface {
	Listen() error
	Start()
	Stop()
}

var (
	_ TcpServerInterface = &NMEAServer{}
)

// NewServer builds a server. publisher and nmeaDB may be nil.
func NewServer(listenAddr string, logger *zap.Logger, publisher bus.Publisher, nmeaDB clickhouse.NMEADBConn, opts Options) *NMEAServer {
	ctx, cancel := context.WithCancel(context.Background())
	return &NMEAServer{
		listenAddr: listenAddr,
		quitChan:   make(chan Empty),
		wg:         sync.WaitGroup{},
		log:        logger,
		publisher:  publisher,
		nmeaDB:     nmeaDB,
		opts:       opts,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Listen binds the listen address. Start calls it when needed. After Stop it
// returns net.ErrClosed.
func (ts *NMEAServer) Listen() error {
	_, err := ts.listener()
	return err
}

func (ts *NMEAServer) listener() (net.Listener, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.stopped {
		return nil, net.ErrClosed
	}
	if ts.ln != nil {
		return ts.ln, nil
	}
	ln, err := net.Listen("tcp", ts.listenAddr)
	if err != nil {
		return nil, err
	}
	ts.ln = ln
	return ln, nil
}

// Addr is the bound address, nil before Listen.
func (ts *NMEAServer) Addr() net.Addr {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.ln == nil {
		return nil
	}
	return ts.ln.Addr()
}

func (ts *NMEAServer) Start() {
	ln, err := ts.listener()
	if err != nil {
		if !errors.Is(err, net.ErrClosed) {
			ts.log.Error("failed to listen", zap.Error(err))
		}
		return
	}
	defer ln.Close()

	go ts.acceptConnections(ln)
	ts.log.Info("server started",
		zap.String("ListenAddress", ln.Addr().String()),
	)
	<-ts.quitChan
}

func (ts *NMEAServer) acceptConnections(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			ts.log.Error("accept connection error", zap.Error(err))
			continue
		}
		if !ts.track() {
			conn.Close()
			return
		}
		ts.log.Info("new Connection to the server", zap.String("Address", conn.RemoteAddr().String()))
		go ts.HandleConnection(conn)
	}
}

// track registers a connection with the wait group unless Stop has begun.
func (ts *NMEAServer) track() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.stopped {
		return false
	}
	ts.wg.Add(1)
	return true
}

// Stop closes the listener, ends every session and waits for them.
func (ts *NMEAServer) Stop() {
	ts.quitOnce.Do(func() {
		ts.cancel()
		ts.mu.Lock()
		ts.stopped = true
		if ts.ln != nil {
			ts.ln.Close()
		}
		ts.mu.Unlock()
		ts.wg.Wait()
		close(ts.quitChan)
		ts.log.Info("stop server")
	})
}
