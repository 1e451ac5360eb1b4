package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/openfms/nmea-device/parser"
	"go.uber.org/zap"
)

var (
	ErrClosed         = errors.New("processor closed")
	ErrAlreadyStarted = errors.New("processor already started")
)

type State int32

const (
	StateActive State = iota
	StateHalted
)

func (s State) String() string {
	if s == StateHalted {
		return "Halted"
	}
	return "Active"
}

type ErrorKind uint8

const (
	// ReadFailed means the source returned an error.
	ReadFailed ErrorKind = iota + 1
	// NoData means the source reached the end of its data.
	NoData
	// LineInvalid means a '$' line could not be decoded.
	LineInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case ReadFailed:
		return "ReadFailed"
	case NoData:
		return "NoData"
	case LineInvalid:
		return "LineInvalid"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// ReceiveError is published on the error channel. Err is nil for NoData.
type ReceiveError struct {
	Kind ErrorKind
	Err  error
}

func (e ReceiveError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e ReceiveError) Unwrap() error { return e.Err }

// RawLine is published for lines that were not decoded. LineValid is true when
// the line starts with '$'.
type RawLine struct {
	Text          string
	LineValid     bool
	ChecksumValid bool
}

type Options struct {
	// SuppressRawLineForDecoded withholds the raw-line notification for lines
	// that decoded successfully.
	SuppressRawLineForDecoded bool
	// EnableEvents turns decoding and every notification on. When false lines
	// are read and discarded.
	EnableEvents bool
	// OwnsSource makes Close also close the source, if it is an io.Closer.
	// A borrowed ScannerSource must be closed by the caller, otherwise its
	// scanning goroutine stays parked on the next line.
	OwnsSource bool
}

func DefaultOptions() Options {
	return Options{
		SuppressRawLineForDecoded: true,
		EnableEvents:              true,
	}
}

// Processor reads lines from a LineReader one at a time, decodes NMEA
// sentences and hands the results to the registered handlers. Handlers run
// on the reading goroutine, in order, and the next line is not read until
// they return.
type Processor struct {
	source LineReader
	opts   Options
	log    *zap.Logger

	mu          sync.RWMutex
	rawHandlers []func(RawLine)
	msgHandlers []func(parser.Message)
	errHandlers []func(ReceiveError)
	cancel      context.CancelFunc
	closed      bool
	eventsOff   atomic.Bool
	state       atomic.Int32
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

func New(source LineReader, logger *zap.Logger, opts Options) *Processor {
	p := &Processor{
		source: source,
		opts:   opts,
		log:    logger,
	}
	p.eventsOff.Store(!opts.EnableEvents)
	return p
}

func (p *Processor) OnRawLine(fn func(RawLine)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rawHandlers = append(p.rawHandlers, fn)
}

func (p *Processor) OnMessage(fn func(parser.Message)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgHandlers = append(p.msgHandlers, fn)
}

func (p *Processor) OnError(fn func(ReceiveError)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errHandlers = append(p.errHandlers, fn)
}

// SetEventsEnabled toggles decoding and notifications while running.
func (p *Processor) SetEventsEnabled(enabled bool) {
	p.eventsOff.Store(!enabled)
}

func (p *Processor) State() State { return State(p.state.Load()) }

func (p *Processor) begin(ctx context.Context) (context.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	if p.cancel != nil {
		return nil, ErrAlreadyStarted
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Add(1)
	return ctx, nil
}

// Start runs the read loop on its own goroutine.
func (p *Processor) Start(ctx context.Context) error {
	ctx, err := p.begin(ctx)
	if err != nil {
		return err
	}
	go func() {
		defer p.wg.Done()
		if err := p.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.log.Debug("processor stopped", zap.Error(err))
		}
	}()
	return nil
}

// Run reads and processes lines on the calling goroutine until the source
// fails, runs dry, ctx is cancelled or Close is called. It returns nil when
// the source reached its end.
func (p *Processor) Run(ctx context.Context) error {
	ctx, err := p.begin(ctx)
	if err != nil {
		return err
	}
	defer p.wg.Done()
	return p.run(ctx)
}

func (p *Processor) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := p.source.ReadLine(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.state.Store(int32(StateHalted))
			if errors.Is(err, io.EOF) {
				p.log.Info("line source has no more data")
				p.publishError(ReceiveError{Kind: NoData})
				return nil
			}
			p.log.Error("read line failed", zap.Error(err))
			p.publishError(ReceiveError{Kind: ReadFailed, Err: err})
			return err
		}
		p.processLine(line)
	}
}

func (p *Processor) processLine(line string) {
	line = strings.TrimSpace(line)
	if p.eventsOff.Load() {
		p.log.Debug("line discarded", zap.String("line", line))
		return
	}
	if !strings.HasPrefix(line, "$") {
		p.publishRaw(RawLine{Text: line})
		return
	}
	msg, err := parser.Parse(line)
	if err == nil && msg.Kind() == parser.KindUnknown && msg.ChecksumPresent() && !msg.ChecksumValid() {
		// A corrupted type code cannot be told apart from an unknown type.
		err = fmt.Errorf("%s: %w", msg.Type(), parser.ErrChecksumMismatch)
	}
	if err != nil {
		_, checksumValid, _ := parser.VerifyChecksum(line)
		p.log.Debug("sentence decode failed", zap.String("line", line), zap.Error(err))
		p.publishError(ReceiveError{Kind: LineInvalid, Err: err})
		p.publishRaw(RawLine{Text: line, LineValid: true, ChecksumValid: checksumValid})
		return
	}
	p.publishMessage(msg)
	if !p.opts.SuppressRawLineForDecoded {
		p.publishRaw(RawLine{Text: line, LineValid: true, ChecksumValid: msg.ChecksumValid()})
	}
}

func (p *Processor) publishRaw(raw RawLine) {
	p.mu.RLock()
	handlers := p.rawHandlers
	p.mu.RUnlock()
	for _, fn := range handlers {
		fn(raw)
	}
}

func (p *Processor) publishMessage(msg parser.Message) {
	p.mu.RLock()
	handlers := p.msgHandlers
	p.mu.RUnlock()
	for _, fn := range handlers {
		fn(msg)
	}
}

func (p *Processor) publishError(e ReceiveError) {
	if p.eventsOff.Load() {
		return
	}
	p.mu.RLock()
	handlers := p.errHandlers
	p.mu.RUnlock()
	for _, fn := range handlers {
		fn(e)
	}
}

// Close stops the read loop and waits for it to return. No handler runs
// after Close returns, so Close must not be called from a handler. The source
// is closed only when the processor owns it.
func (p *Processor) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		cancel := p.cancel
		p.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		p.wg.Wait()
		p.state.Store(int32(StateHalted))
		if p.opts.OwnsSource {
			if c, ok := p.source.(io.Closer); ok {
				err = c.Close()
			}
		}
	})
	return err
}
