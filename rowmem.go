// Package rowmem measures the memory footprint of different in-memory layouts
// for tabular string data.
//
// Each Shape materializes the same synthetic dataset (rows of fixed-width text
// values) in its own layout. A Suite builds the shapes one at a time, forces a
// full collection, and reports the live heap while only that shape is
// reachable.
package rowmem

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"time"
)

// Suite runs shapes in order and reports their memory.
type Suite struct {
	cfg      Config
	probe    Probe
	reporter *Reporter
	logger   *slog.Logger
	shapes   []Shape
}

// Result is the measurement of one shape.
type Result struct {
	Shape       string
	Items       int
	Sample      Sample
	Theoretical uint64 // raw payload at the shape's encoding width
	BuildTime   time.Duration
}

// New creates a Suite.
//
// Example:
//
//	suite, err := rowmem.New(
//	    rowmem.WithConfig(rowmem.Config{Rows: 1000, Columns: 5, ValueLength: 8, PoolSize: 4096}),
//	    rowmem.WithShapes("ListListString", "SimilarStringsInterned"),
//	)
//	if err != nil {
//	    return err
//	}
//	results, err := suite.Run()
func New(opts ...Option) (*Suite, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.dataset.Validate(); err != nil {
		return nil, err
	}
	if cfg.probe == nil {
		cfg.probe = NewHeapProbe()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	shapes := Shapes()
	if len(cfg.shapes) > 0 {
		for _, name := range cfg.shapes {
			if _, err := Lookup(name); err != nil {
				return nil, err
			}
		}
		shapes = slices.DeleteFunc(shapes, func(s Shape) bool {
			return !slices.Contains(cfg.shapes, s.Name)
		})
	}

	return &Suite{
		cfg:      cfg.dataset,
		probe:    cfg.probe,
		reporter: NewReporter(cfg.out, cfg.format),
		logger:   cfg.logger,
		shapes:   shapes,
	}, nil
}

// Shapes returns the shapes the suite will run, in order.
func (s *Suite) Shapes() []Shape {
	return slices.Clone(s.shapes)
}

// Run measures a baseline, every shape, and a final collection.
// It stops at the first build or probe error.
func (s *Suite) Run() ([]Result, error) {
	s.reporter.Theoretical(s.cfg.TheoreticalBytes(1))
	if err := s.baseline("Before starting test"); err != nil {
		return nil, err
	}
	s.reporter.Separator()

	results := make([]Result, 0, len(s.shapes))
	for _, shape := range s.shapes {
		res, err := s.RunShape(shape)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		s.reporter.Separator()
	}

	s.reporter.Line("Finished")
	if err := s.baseline("After final collection"); err != nil {
		return results, err
	}
	return results, s.reporter.Err()
}

func (s *Suite) baseline(label string) error {
	sample, err := s.probe.Measure()
	if err != nil {
		return fmt.Errorf("probe %s: %w", s.probe.Name(), err)
	}
	s.reporter.Report(label, 0, sample.Bytes)
	return nil
}

// RunShape builds one shape, measures it while it is the only live dataset,
// and releases it.
func (s *Suite) RunShape(shape Shape) (Result, error) {
	s.logger.Debug("building shape", "shape", shape.Name, "rows", s.cfg.Rows, "columns", s.cfg.Columns)

	start := time.Now()
	table, err := shape.Build(s.cfg)
	if err != nil {
		return Result{}, fmt.Errorf("build %s: %w", shape.Name, err)
	}
	built := time.Since(start)

	sample, err := s.probe.Measure()
	if err != nil {
		return Result{}, fmt.Errorf("probe %s: %w", s.probe.Name(), err)
	}

	// Len runs after the probe: some tables allocate while counting.
	items := table.Len()
	runtime.KeepAlive(table)
	if c, ok := table.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.logger.Warn("close shape", "shape", shape.Name, "error", err)
		}
	}

	s.reporter.ReportShape(shape.Name, items, sample.Bytes)
	s.logger.Debug("shape measured",
		"shape", shape.Name,
		"items", items,
		"bytes", sample.Bytes,
		"objects", sample.Objects,
		"build", built)

	return Result{
		Shape:       shape.Name,
		Items:       items,
		Sample:      sample,
		Theoretical: s.cfg.TheoreticalBytes(shape.Width),
		BuildTime:   built,
	}, nil
}
