package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/openfms/nmea-device/bus"
	nmeadb "github.com/openfms/nmea-device/db/clickhouse"
	"github.com/openfms/nmea-device/envconfig"
	"github.com/openfms/nmea-device/live"
	"github.com/openfms/nmea-device/parser"
	"github.com/openfms/nmea-device/processor"
	"github.com/openfms/nmea-device/serialport"
	"github.com/openfms/nmea-device/server"
	"github.com/openfms/nmea-device/simulator"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	HostAddress    string
	PortNumber     uint
	NatsAddr       string
	MQTTBroker     string
	MQTTClientID   string
	PayloadFormat  string
	NMEADBURL      string
	LiveAddr       string
	RawLines       bool
	TalkerPrefixes cli.StringSlice

	SerialDevice string
	BaudRate     int
	SerialRTS    bool

	SimulatorHostAddr string
	ReplayFile        string
	ReplayInterval    time.Duration
	ReplayLoop        bool
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("create new logger failed:%v\n", err)
	}
	defer logger.Sync()
	cfg, err := envconfig.ReadServiceEnv()
	if err != nil {
		logger.Fatal("read environment failed", zap.Error(err))
	}

	sinkFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "nats",
			Usage:       "nats address, empty disables publishing to nats",
			Value:       cfg.NatsConn,
			Destination: &NatsAddr,
		},
		&cli.StringFlag{
			Name:        "mqtt",
			Usage:       "mqtt broker url, empty disables publishing to mqtt",
			Value:       cfg.MQTTBroker,
			Destination: &MQTTBroker,
		},
		&cli.StringFlag{
			Name:        "mqtt-client-id",
			Usage:       "mqtt client id",
			Value:       cfg.MQTTClientID,
			DefaultText: "nmea-device",
			Destination: &MQTTClientID,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "published payload format, json or proto",
			Value:       cfg.Format,
			DefaultText: "json",
			Destination: &PayloadFormat,
		},
		&cli.StringFlag{
			Name:        "nmeadb",
			Usage:       "nmea clickhouse url, empty disables storage",
			Value:       cfg.ClickHouseDB,
			Destination: &NMEADBURL,
		},
		&cli.StringFlag{
			Name:        "live",
			Usage:       "listen address of the websocket live feed, empty disables it",
			Value:       cfg.LiveAddr,
			Destination: &LiveAddr,
		},
		&cli.BoolFlag{
			Name:        "raw",
			Usage:       "store and log every received line, not only undecodable ones",
			Value:       cfg.RawLines,
			Destination: &RawLines,
		},
		&cli.StringSliceFlag{
			Name:        "talker",
			Usage:       "only publish sentences from these talker prefixes (GP, GN, ...)",
			Value:       cli.NewStringSlice(cfg.Talkers...),
			Destination: &TalkerPrefixes,
		},
	}

	app := &cli.App{
		Name:  "nmeasrv",
		Usage: "nmea 0183 receiver gateway",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "accepts nmea streams over tcp",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:        "host",
						Usage:       "host address",
						Value:       cfg.Host,
						DefaultText: "0.0.0.0",
						Destination: &HostAddress,
					},
					&cli.UintFlag{
						Name:        "port",
						Usage:       "server port number",
						Value:       cfg.Port,
						DefaultText: "5000",
						Aliases:     []string{"p"},
						Destination: &PortNumber,
					},
				}, sinkFlags...),
				Action: func(ctx *cli.Context) error {
					publisher, db, cleanup, err := openSinks(logger)
					if err != nil {
						return err
					}
					defer cleanup()

					listenAddr := net.JoinHostPort(HostAddress, fmt.Sprintf("%d", PortNumber))
					s := server.NewServer(listenAddr, logger, publisher, db, serverOptions())
					if err := s.Listen(); err != nil {
						return err
					}
					go s.Start()

					sigs := make(chan os.Signal, 1)
					signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
					<-sigs
					s.Stop()
					return nil
				},
			},
			{
				Name:  "serial",
				Usage: "reads nmea from a receiver on a serial port",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:        "device",
						Usage:       "serial device, e.g. /dev/ttyUSB0",
						Value:       cfg.SerialDevice,
						Aliases:     []string{"d"},
						Destination: &SerialDevice,
					},
					&cli.IntFlag{
						Name:        "baud",
						Usage:       "baud rate",
						Value:       cfg.BaudRate,
						DefaultText: "4800",
						Destination: &BaudRate,
					},
					&cli.BoolFlag{
						Name:        "rts",
						Usage:       "raise RTS after opening the port",
						Destination: &SerialRTS,
					},
				}, sinkFlags...),
				Action: func(ctx *cli.Context) error {
					if SerialDevice == "" {
						return errors.New("a serial device is required")
					}
					port, err := serialport.Open(SerialDevice, serialport.PortOptions{BaudRate: BaudRate, RTS: SerialRTS})
					if err != nil {
						return err
					}
					publisher, db, cleanup, err := openSinks(logger)
					if err != nil {
						port.Close()
						return err
					}
					defer cleanup()

					runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					session := uuid.NewString()
					serialLog := logger.With(zap.String("session", session), zap.String("device", SerialDevice))
					serialLog.Info("serial port opened", zap.Int("baud", BaudRate))
					s := server.NewServer("", logger, publisher, db, serverOptions())
					return s.Serve(runCtx, session, processor.NewScannerSource(port), serialLog)
				},
			},
			{
				Name:  "ports",
				Usage: "lists serial ports",
				Action: func(ctx *cli.Context) error {
					ports, err := serialport.Ports()
					if err != nil {
						return err
					}
					for _, p := range ports {
						fmt.Println(p)
					}
					return nil
				},
			},
			{
				Name:      "decode",
				Usage:     "decodes a capture file, or stdin, to json lines",
				ArgsUsage: "[file]",
				Action: func(ctx *cli.Context) error {
					var in io.Reader = os.Stdin
					if ctx.Args().Len() > 0 {
						f, err := os.Open(ctx.Args().First())
						if err != nil {
							return err
						}
						defer f.Close()
						in = f
					}
					return decode(ctx.Context, in, ctx.App.Writer, logger)
				},
			},
			{
				Name:  "simulator",
				Usage: "starts nmea receiver simulator",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "host",
						Usage:       "simulator host address",
						Destination: &SimulatorHostAddr,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        "file",
						Usage:       "capture to replay, random fixes are sent when empty",
						Destination: &ReplayFile,
					},
					&cli.DurationFlag{
						Name:        "interval",
						Usage:       "delay between sentences",
						Value:       time.Second,
						DefaultText: "1s",
						Destination: &ReplayInterval,
					},
					&cli.BoolFlag{
						Name:        "loop",
						Usage:       "start the capture over when it ends",
						Value:       true,
						Destination: &ReplayLoop,
					},
				},
				Action: func(ctx *cli.Context) error {
					nmeaSimulator := simulator.NewTrackerDevice(SimulatorHostAddr, logger)
					if e := nmeaSimulator.Connect(); e != nil {
						return e
					}
					defer nmeaSimulator.Stop()

					runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					var err error
					if ReplayFile == "" {
						err = nmeaSimulator.SendRandomFixes(runCtx, ReplayInterval)
					} else {
						err = replayFile(runCtx, nmeaSimulator)
					}
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				},
			},
		},
	}

	if e := app.Run(os.Args); e != nil {
		logger.Error("failed to run app", zap.Error(e))
	}
}

func serverOptions() server.Options {
	return server.Options{
		RawLines: RawLines,
		Talkers:  TalkerPrefixes.Value(),
	}
}

// openSinks connects every configured output. The returned publisher is nil
// when no broker or live feed is configured.
func openSinks(logger *zap.Logger) (bus.Publisher, nmeadb.NMEADBConn, func(), error) {
	var (
		fanout  bus.Fanout
		db      nmeadb.NMEADBConn
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	format, err := bus.ParseFormat(PayloadFormat)
	if err != nil {
		return nil, nil, nil, err
	}
	if NatsAddr != "" {
		natsCon, err := nats.Connect(NatsAddr)
		if err != nil {
			return nil, nil, nil, err
		}
		closers = append(closers, natsCon.Close)
		fanout = append(fanout, bus.NewNatsPublisher(natsCon, format))
	}
	if MQTTBroker != "" {
		client, err := bus.ConnectMQTT(MQTTBroker, MQTTClientID)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		closers = append(closers, func() { client.Disconnect(250) })
		fanout = append(fanout, bus.NewMQTTPublisher(client, 0, format))
	}
	if LiveAddr != "" {
		hub := live.NewHub(logger)
		httpServer := &http.Server{Addr: LiveAddr, Handler: hub, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("live feed stopped", zap.Error(err))
			}
		}()
		closers = append(closers, func() {
			hub.Close()
			httpServer.Close()
		})
		fanout = append(fanout, hub)
	}
	if NMEADBURL != "" {
		nmeaClickhouseDB, err := nmeadb.ConnectNMEADB(NMEADBURL)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		if err := nmeaClickhouseDB.Migrate(context.Background()); err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		closers = append(closers, func() { nmeaClickhouseDB.GetConn().Close() })
		db = nmeaClickhouseDB
	}
	if len(fanout) == 0 {
		return nil, db, cleanup, nil
	}
	return fanout, db, cleanup, nil
}

// decode writes one json envelope per decoded sentence and logs the rest.
func decode(ctx context.Context, in io.Reader, out io.Writer, logger *zap.Logger) error {
	enc := json.NewEncoder(out)
	proc := processor.New(processor.NewScannerSource(in), logger, processor.DefaultOptions())
	proc.OnMessage(func(msg parser.Message) {
		if err := enc.Encode(bus.NewEnvelope("", msg)); err != nil {
			logger.Error("write envelope failed", zap.Error(err))
		}
	})
	proc.OnRawLine(func(raw processor.RawLine) {
		logger.Warn("line skipped", zap.String("line", raw.Text), zap.Bool("checksum_valid", raw.ChecksumValid))
	})
	proc.OnError(func(e processor.ReceiveError) {
		if e.Kind != processor.NoData {
			logger.Warn("decode failed", zap.Stringer("kind", e.Kind), zap.Error(e.Err))
		}
	})
	return proc.Run(ctx)
}

func replayFile(ctx context.Context, device *simulator.TrackerDevice) error {
	f, err := os.Open(ReplayFile)
	if err != nil {
		return err
	}
	defer f.Close()
	lines, err := simulator.ReadLines(f)
	if err != nil {
		return err
	}
	return device.Replay(ctx, lines, ReplayInterval, ReplayLoop)
}
