package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"gps-time/internal/clock"
	"gps-time/internal/config"
	"gps-time/internal/gps"
	"gps-time/internal/replay"
)

type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }
func (u usageError) Unwrap() error { return u.err }

// app holds the collaborators the command wires together, so tests can swap
// the serial port and the clock.
type app struct {
	open   func(path string, baud int) (io.ReadCloser, error)
	setter func(cfg config.Config, out io.Writer) clock.Setter
	stdout io.Writer
}

func defaultApp() *app {
	return &app{
		open: gps.OpenSerial,
		setter: func(cfg config.Config, out io.Writer) clock.Setter {
			if cfg.Clock.DryRun {
				return clock.DryRun{Log: log.New(out, "", 0)}
			}
			return clock.System{}
		},
		stdout: os.Stdout,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		configPath string
		device     string
		baud       int
		verbose    bool
		local      bool
		dryRun     bool
		recordPath string
		replayPath string
		speed      float64
	)

	cmd := &cobra.Command{
		Use:           "gps-time",
		Short:         "Set the system clock from a serial GPS receiver",
		Long:          "Reads NMEA from a serial GPS, waits for a valid GPRMC sentence and sets the system clock from it, then exits.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return fmt.Errorf("config load failed: %w", err)
				}
			}

			flags := cmd.Flags()
			if flags.Changed("line") {
				cfg.GPS.Device = device
			}
			if flags.Changed("speed") {
				cfg.GPS.Baud = baud
			}
			if flags.Changed("verbose") {
				cfg.Verbose = verbose
			}
			if flags.Changed("local") {
				cfg.Clock.Timezone = "utc"
				if local {
					cfg.Clock.Timezone = "local"
				}
			}
			if flags.Changed("dry-run") {
				cfg.Clock.DryRun = dryRun
			}
			if flags.Changed("record") {
				cfg.Record = config.RecordConfig{Enable: recordPath != "", Path: recordPath}
			}
			if flags.Changed("replay") {
				cfg.Replay.Enable = replayPath != ""
				cfg.Replay.Path = replayPath
			}
			if flags.Changed("replay-speed") {
				cfg.Replay.Speed = speed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.run(cmd.Context(), cfg)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "Path to YAML config")
	f.StringVarP(&device, "line", "l", config.DefaultDevice, "GPS serial device")
	f.IntVarP(&baud, "speed", "s", config.DefaultBaud, "GPS serial bit rate")
	f.BoolVarP(&verbose, "verbose", "v", false, "Narrate every sentence and stage")
	f.BoolVar(&local, "local", false, "Interpret RMC date/time in the host's local zone instead of UTC")
	f.BoolVar(&dryRun, "dry-run", false, "Decode the time but do not set the clock")
	f.StringVar(&recordPath, "record", "", "Capture raw serial input to this file")
	f.StringVar(&replayPath, "replay", "", "Read a capture file instead of the serial device")
	f.Float64Var(&speed, "replay-speed", 1, "Replay speed multiplier")
	return cmd
}

func (a *app) run(ctx context.Context, cfg config.Config) error {
	out := log.New(a.stdout, "", 0)
	if cfg.Verbose {
		out.Printf("GPS device: %s, speed: %d.", cfg.GPS.Device, cfg.GPS.Baud)
	}

	src, err := a.openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()
	// Closing the port unblocks a pending read on SIGINT/SIGTERM.
	stop := context.AfterFunc(ctx, func() { _ = src.Close() })
	defer stop()

	var in io.Reader = src
	if cfg.Record.Enable {
		w, err := replay.CreateWriter(cfg.Record.Path)
		if err != nil {
			return fmt.Errorf("record create failed path=%s: %w", cfg.Record.Path, err)
		}
		defer func() {
			if err := w.Close(); err != nil {
				log.Printf("record close failed path=%s: %v", cfg.Record.Path, err)
			}
		}()
		in = &replay.Recorder{R: src, W: w}
	}

	if cfg.Verbose {
		out.Printf("Serial I/O parameters set, waiting for GPRMC.")
	}

	svc := gps.New(gps.Config{
		Device:   cfg.GPS.Device,
		Baud:     cfg.GPS.Baud,
		Location: cfg.Location(),
		DryRun:   cfg.Clock.DryRun,
		Verbose:  cfg.Verbose,
		Log:      out,
	}, a.setter(cfg, a.stdout))

	if _, err := svc.Run(ctx, in); err != nil {
		st := svc.Stats()
		log.Printf("gps stopped sentences=%d accepted=%d overflows=%d wrong_type=%d malformed=%d bad_checksum=%d field_count=%d",
			st.Sentences, st.Accepted, st.Overflows, st.WrongType, st.Malformed, st.BadSum, st.FieldCount)
		return err
	}
	return nil
}

func (a *app) openSource(cfg config.Config) (io.ReadCloser, error) {
	if cfg.Replay.Enable {
		st, err := replay.Open(cfg.Replay.Path, cfg.Replay.Speed, nil)
		if err != nil {
			return nil, fmt.Errorf("replay open failed path=%s: %w", cfg.Replay.Path, err)
		}
		log.Printf("gps replay path=%s speed=%g", cfg.Replay.Path, cfg.Replay.Speed)
		return io.NopCloser(st), nil
	}
	port, err := a.open(cfg.GPS.Device, cfg.GPS.Baud)
	if err != nil {
		return nil, fmt.Errorf("gps open failed device=%s baud=%d: %w", cfg.GPS.Device, cfg.GPS.Baud, err)
	}
	return port, nil
}
