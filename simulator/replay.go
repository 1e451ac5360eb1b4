package simulator

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReadLines loads a capture, skipping blank lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// Replay sends lines one per interval, starting over at the end, until ctx is
// done or a write fails. With loop false it returns after one pass.
func (td *TrackerDevice) Replay(ctx context.Context, lines []string, interval time.Duration, loop bool) error {
	if len(lines) == 0 {
		return ErrEmptyCapture
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, line := range lines {
			if err := td.SendLine(normalize(line)); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		td.log.Info("replay pass finished", zap.Int("lines", len(lines)))
		if !loop {
			return nil
		}
	}
}

// SendRandomFixes streams generated GGA and RMC pairs until ctx is done.
func (td *TrackerDevice) SendRandomFixes(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	track := newRandomTrack(time.Now().UnixNano())
	for {
		for _, line := range track.next(time.Now().UTC()) {
			if err := td.SendLine(line); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
