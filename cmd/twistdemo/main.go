// twistdemo binds a handful of demo parameters to the first connected
// Twister and mirrors every change to the log, so knob turns and presses
// can be watched live.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dikkadev/prettyslog"

	"github.com/glowbeam/twistctl"
	"github.com/glowbeam/twistctl/config"
	"github.com/glowbeam/twistctl/param"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", "", "config file path (empty: user config dir)")
	tick := flag.Duration("tick", 16*time.Millisecond, "update poll interval")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(prettyslog.NewPrettyslogHandler("twistctl",
		prettyslog.WithLevel(level),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config failed", "err", err)
		os.Exit(1)
	}

	var opts []twistctl.Option
	opts = append(opts, twistctl.WithLogger(logger))
	if cfg.DeviceName != "" {
		opts = append(opts, twistctl.WithDeviceName(cfg.DeviceName))
	}

	tw := twistctl.New(opts...)
	tw.Setup()
	defer tw.Close()

	// A small mixed group: floats and ints land on rotary rings, bools on
	// switches. The remaining slots are forced off.
	cutoff := param.NewFloat("cutoff", 0.5, 0, 1)
	resonance := param.NewFloat("resonance", 0.2, 0, 1)
	transpose := param.NewInt("transpose", 0, -24, 24)
	mute := param.NewBool("mute", false)

	logValue := func(name string) func(float64) {
		return func(v float64) { logger.Info("param changed", "param", name, "value", v) }
	}
	cutoff.OnChange(logValue("cutoff"))
	resonance.OnChange(logValue("resonance"))
	transpose.OnChange(func(v int) { logger.Info("param changed", "param", "transpose", "value", v) })
	mute.OnChange(func(v bool) { logger.Info("param changed", "param", "mute", "value", v) })

	tw.SetParams(param.NewGroup(cutoff, resonance, transpose, mute))

	tw.ApplyStyle(cfg)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()

	logger.Info("running, ctrl-c to quit", "tick", *tick)
	for {
		select {
		case <-ticker.C:
			tw.Update()
		case <-sig:
			logger.Info("shutting down")
			return
		}
	}
}
