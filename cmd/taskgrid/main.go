package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaptersix/taskgrid/common/clock"
	"github.com/chaptersix/taskgrid/common/config"
	"github.com/chaptersix/taskgrid/common/log"
	"github.com/chaptersix/taskgrid/common/metrics"
	"github.com/chaptersix/taskgrid/service/scheduler"
	"github.com/chaptersix/taskgrid/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(arguments []string) error {
	flags := flag.NewFlagSet("taskgrid", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to YAML config, defaults apply when empty")
	if err := flags.Parse(arguments); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := log.NewDefaultLogger()

	s := scheduler.NewScheduler(
		cfg,
		store.NewMemoryStore(),
		clock.NewRealTimeSource(),
		scheduler.NewLoggingAbortReporter(logger),
		nil,
		logger,
		metrics.NoopMetricsHandler,
	)
	s.Start()
	defer s.Stop()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	<-signalCh
	return nil
}
