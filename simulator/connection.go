package simulator

import (
	"errors"
	"fmt"

	"github.com/openfms/nmea-device/parser"
)

var (
	ErrNotConnected = errors.New("simulator is not connected")
	ErrEmptyCapture = errors.New("capture has no lines to replay")
)

// SendLine writes one line terminated by CRLF.
func (td *TrackerDevice) SendLine(line string) error {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.conn == nil {
		return ErrNotConnected
	}
	if _, err := td.conn.Write([]byte(line + "\r\n")); err != nil {
		return fmt.Errorf("failed to send line: %w", err)
	}
	return nil
}

// normalize re-renders decodable sentences with a fresh checksum. Everything
// else is sent as it was read so receivers see the same faults.
func normalize(line string) string {
	msg, err := parser.Parse(line)
	if err != nil || (msg.ChecksumPresent() && !msg.ChecksumValid()) {
		return line
	}
	return parser.Encode(msg)
}
