package simulator

import (
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"
)

// TrackerDevice pretends to be a GPS receiver streaming NMEA over TCP.
type TrackerDevice struct {
	serverAddr string
	conn       net.Conn
	mu         sync.Mutex
	log        *zap.Logger
}

type TrackerInterface interface {
	Connect() error
	Stop()
	SendLine(line string) error
}

var (
	_ TrackerInterface = &TrackerDevice{}
)

func NewTrackerDevice(serverAddr string, logger *zap.Logger) *TrackerDevice {
	return &TrackerDevice{
		serverAddr: serverAddr,
		log:        logger,
	}
}

func (td *TrackerDevice) Connect() error {
	conn, err := net.Dial("tcp", td.serverAddr)
	if err != nil {
		return fmt.Errorf("failed to dial server: %w", err)
	}
	td.mu.Lock()
	td.conn = conn
	td.mu.Unlock()
	return nil
}

func (td *TrackerDevice) Stop() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.conn != nil {
		td.conn.Close()
		td.conn = nil
	}
	td.log.Info("stop tracker simulator")
}
