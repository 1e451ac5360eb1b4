package server

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openfms/nmea-device/db/clickhouse"
	"github.com/openfms/nmea-device/parser"
	"github.com/openfms/nmea-device/processor"
	"go.uber.org/zap"
)

func (ts *NMEAServer) HandleConnection(conn net.Conn) {
	defer ts.wg.Done()
	session := uuid.NewString()
	log := ts.log.With(
		zap.String("session", session),
		zap.String("ip", conn.RemoteAddr().String()),
	)
	// the processor owns the source, which closes conn
	if err := ts.Serve(ts.ctx, session, processor.NewScannerSource(conn), log); err != nil {
		log.Error("session failed", zap.Error(err))
	}
	log.Info("connection closed")
}

// Serve decodes src until it runs dry, fails or ctx is done. Decoded
// messages are published and stored under session.
func (ts *NMEAServer) Serve(ctx context.Context, session string, src processor.LineReader, log *zap.Logger) error {
	proc := processor.New(src, log, processor.Options{
		SuppressRawLineForDecoded: !ts.opts.RawLines,
		EnableEvents:              true,
		OwnsSource:                true,
	})
	proc.OnMessage(func(msg parser.Message) {
		ts.handleMessage(ctx, session, msg, log)
	})
	proc.OnRawLine(func(raw processor.RawLine) {
		ts.handleRawLine(ctx, session, raw, log)
	})
	proc.OnError(func(e processor.ReceiveError) {
		switch e.Kind {
		case processor.LineInvalid:
			log.Warn("invalid sentence", zap.Error(e.Err))
		case processor.ReadFailed:
			log.Error("read failed", zap.Error(e.Err))
		}
	})
	err := proc.Run(ctx)
	if cErr := proc.Close(); cErr != nil {
		log.Debug("close source failed", zap.Error(cErr))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (ts *NMEAServer) acceptTalker(msg parser.Message) bool {
	if len(ts.opts.Talkers) == 0 {
		return true
	}
	code := strings.ToUpper(msg.Type())
	for _, t := range ts.opts.Talkers {
		if strings.HasPrefix(code, strings.ToUpper(t)) {
			return true
		}
	}
	return false
}

func (ts *NMEAServer) handleMessage(ctx context.Context, session string, msg parser.Message, log *zap.Logger) {
	if !ts.acceptTalker(msg) {
		return
	}
	log.Info("new sentence",
		zap.String("Type", msg.Type()),
		zap.Stringer("Kind", msg.Kind()),
		zap.Bool("Valid", msg.Valid()),
		zap.String("Text", msg.String()),
	)
	if ts.publisher != nil {
		if err := ts.publisher.Publish(ctx, session, msg); err != nil {
			log.Error("publish sentence failed", zap.Error(err))
		}
	}
	if ts.nmeaDB == nil {
		return
	}
	if fix, ok := clickhouse.FixFromMessage(session, msg, time.Now()); ok {
		if err := ts.nmeaDB.SaveFixes(ctx, []*clickhouse.FixColumns{fix}); err != nil {
			log.Error("failed to save fix", zap.Error(err))
		}
	}
}

func (ts *NMEAServer) handleRawLine(ctx context.Context, session string, raw processor.RawLine, log *zap.Logger) {
	log.Debug("raw line",
		zap.String("Text", raw.Text),
		zap.Bool("LineValid", raw.LineValid),
		zap.Bool("ChecksumValid", raw.ChecksumValid),
	)
	if ts.nmeaDB == nil || raw.Text == "" {
		return
	}
	if err := ts.nmeaDB.SaveRawSentence(ctx, session, raw.Text, raw.ChecksumValid); err != nil {
		log.Error("save raw data failed", zap.Error(err))
	}
}
