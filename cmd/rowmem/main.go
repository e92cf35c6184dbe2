// Package main prints the memory footprint of every row layout rowmem knows.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/rowmem"
)

const (
	numRecords  = 10000
	numColumns  = 20
	valueLength = 10
	poolSize    = 100000
)

func main() {
	probeName := flag.String("probe", "heap", "memory probe: heap or rss")
	noWait := flag.Bool("nowait", false, "exit without waiting for Enter")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *probeName); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	if !*noWait {
		fmt.Println("Press Enter to exit.")
		_, _ = bufio.NewReader(os.Stdin).ReadByte() //nolint:errcheck // any input, or EOF, ends the wait
	}
}

func run(logger *slog.Logger, probeName string) error {
	probe, err := rowmem.NewProbe(probeName)
	if err != nil {
		return err
	}

	suite, err := rowmem.New(
		rowmem.WithConfig(rowmem.Config{
			Rows:        numRecords,
			Columns:     numColumns,
			ValueLength: valueLength,
			PoolSize:    poolSize,
		}),
		rowmem.WithProbe(probe),
		rowmem.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	_, err = suite.Run()
	return err
}
