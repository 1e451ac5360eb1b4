package serialport

import (
	"fmt"

	"go.bug.st/serial"
)

// Open opens the receiver at path. The returned port is usually wrapped in a
// processor.ScannerSource.
func Open(path string, opts PortOptions) (serial.Port, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if opts.RTS {
		if err := port.SetRTS(true); err != nil {
			port.Close()
			return nil, fmt.Errorf("set rts on %s: %w", path, err)
		}
	}
	return port, nil
}

// Ports lists the serial ports present on this machine.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
