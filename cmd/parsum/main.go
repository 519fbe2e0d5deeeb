// Command parsum sums task amounts from a file using a pool of workers.
//
//	parsum [-unit duration] [-log-level level] [-log-format console|json] <infile> <num_threads>
//
// Each input line is "p <n>" (simulate n time units of work, then add n to
// the aggregate) or "w <n>" (simulate n time units of work only). The result
// line "<sum> <odd> <min> <max>" is printed to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jzx17/parsum/internal/config"
	"github.com/jzx17/parsum/internal/logging"
	"github.com/jzx17/parsum/pkg/input"
	"github.com/jzx17/parsum/pkg/worker"
)

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	fin, err := os.Open(cfg.InputPath)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: Could not open %s\n", cfg.InputPath)
		return 1
	}
	defer fin.Close()

	pool, err := worker.NewWorkerPool(&worker.WorkerPoolConfig{
		PoolSize: cfg.Workers,
		TimeUnit: cfg.TimeUnit,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	if err := pool.Start(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	n, err := input.ReadAll(fin, pool.Submit)
	if err != nil {
		// In-flight tasks are abandoned; the process is about to exit.
		logger.Error("reading input failed", zap.String("file", cfg.InputPath), zap.Int("submitted", n), zap.Error(err))
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	logger.Debug("input exhausted", zap.Int("submitted", n))

	if err := pool.ShutdownAndWait(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, pool.Snapshot())
	return 0
}
