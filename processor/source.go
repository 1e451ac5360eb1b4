package processor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// LineReader supplies one line of text at a time. ReadLine returns io.EOF
// once the source has no more data.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

var ErrSourceClosed = errors.New("line source closed")

// ScannerSource reads newline delimited text from an io.Reader. Reads happen
// on a background goroutine so ReadLine can honour ctx while the underlying
// reader blocks. The goroutine ends when the reader is exhausted or Close is
// called; a caller that hands the source to a Processor without OwnsSource
// must call Close itself.
type ScannerSource struct {
	r         io.Reader
	lines     chan string
	done      chan struct{}
	err       error
	startOnce sync.Once
	closeOnce sync.Once
}

var _ LineReader = &ScannerSource{}

func NewScannerSource(r io.Reader) *ScannerSource {
	return &ScannerSource{
		r:     r,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

func (s *ScannerSource) scan() {
	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			select {
			case s.lines <- scanner.Text():
			case <-s.done:
				return
			}
		}
		s.err = scanner.Err()
	}()
}

func (s *ScannerSource) ReadLine(ctx context.Context) (string, error) {
	s.startOnce.Do(s.scan)
	select {
	case <-s.done:
		return "", ErrSourceClosed
	default:
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
		return "", ErrSourceClosed
	case line, ok := <-s.lines:
		if !ok {
			if s.err != nil {
				return "", s.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Close stops the scanning goroutine and closes the reader when it is an
// io.Closer.
func (s *ScannerSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if c, ok := s.r.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}
