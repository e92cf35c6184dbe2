package rowmem

import (
	"io"
	"log/slog"
	"os"
)

// config holds Suite settings.
type config struct {
	dataset Config
	probe   Probe
	out     io.Writer
	logger  *slog.Logger
	shapes  []string
	format  Format
}

func defaultConfig() *config {
	return &config{
		dataset: DefaultConfig(),
		out:     os.Stdout,
		format:  FormatText,
	}
}

// Option configures a Suite.
type Option func(*config)

// WithConfig sets the dataset dimensions. Default is DefaultConfig().
func WithConfig(c Config) Option {
	return func(cfg *config) {
		cfg.dataset = c
	}
}

// WithProbe sets the memory probe. Default is NewHeapProbe().
func WithProbe(p Probe) Option {
	return func(cfg *config) {
		cfg.probe = p
	}
}

// WithOutput sets where measurements are printed. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		cfg.out = w
	}
}

// WithLogger sets the logger for progress events. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithShapes restricts the run to the named shapes, in registry order.
// By default every shape runs.
func WithShapes(names ...string) Option {
	return func(cfg *config) {
		cfg.shapes = names
	}
}

// WithFormat sets the output format. Default is FormatText.
func WithFormat(f Format) Option {
	return func(cfg *config) {
		cfg.format = f
	}
}
