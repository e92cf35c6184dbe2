// Package main measures a single rowmem shape in a fresh process.
//
// Running one shape per process keeps earlier shapes' heap growth and
// fragmentation out of the measurement.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/codeGROOVE-dev/rowmem"
)

func main() {
	def := rowmem.DefaultConfig()
	shape := flag.String("shape", "ListListString", "shape to measure")
	rows := flag.Int("rows", def.Rows, "rows")
	columns := flag.Int("columns", def.Columns, "columns")
	valueLength := flag.Int("valueLength", def.ValueLength, "characters per value")
	list := flag.Bool("list", false, "print shape names and exit")
	flag.Parse()

	if *list {
		for _, s := range rowmem.Shapes() {
			fmt.Println(s.Name)
		}
		return
	}

	cfg := def
	cfg.Rows, cfg.Columns, cfg.ValueLength = *rows, *columns, *valueLength

	suite, err := rowmem.New(
		rowmem.WithConfig(cfg),
		rowmem.WithShapes(*shape),
		rowmem.WithFormat(rowmem.FormatJSON),
	)
	if err != nil {
		slog.Error("setup failed", "shape", *shape, "error", err)
		os.Exit(1)
	}

	s, err := rowmem.Lookup(*shape)
	if err != nil {
		slog.Error("lookup failed", "shape", *shape, "error", err)
		os.Exit(1)
	}
	if _, err := suite.RunShape(s); err != nil {
		slog.Error("measure failed", "shape", *shape, "error", err)
		os.Exit(1)
	}
}
