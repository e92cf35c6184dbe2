package rowmem

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a Config cannot describe a dataset.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes the synthetic dataset every shape is built from.
type Config struct {
	Rows        int
	Columns     int
	ValueLength int

	// PoolSize is the number of precomputed characters backing the Generator.
	PoolSize int

	// Seed makes generated values reproducible. 0 picks a random seed.
	Seed uint64
}

// DefaultConfig returns 10000 rows of 20 columns holding 10-character values.
func DefaultConfig() Config {
	return Config{
		Rows:        10000,
		Columns:     20,
		ValueLength: 10,
		PoolSize:    100000,
	}
}

// Validate reports whether c can be materialized.
func (c Config) Validate() error {
	switch {
	case c.Rows < 0:
		return fmt.Errorf("%w: rows = %d", ErrInvalidConfig, c.Rows)
	case c.Columns < 0:
		return fmt.Errorf("%w: columns = %d", ErrInvalidConfig, c.Columns)
	case c.ValueLength < 0:
		return fmt.Errorf("%w: value length = %d", ErrInvalidConfig, c.ValueLength)
	case c.PoolSize <= 0:
		return fmt.Errorf("%w: pool size = %d", ErrInvalidConfig, c.PoolSize)
	}
	return nil
}

// Cells returns Rows*Columns.
func (c Config) Cells() int {
	return c.Rows * c.Columns
}

// TheoreticalBytes is the raw payload of the dataset when every character
// takes width bytes. It ignores all container and header overhead.
func (c Config) TheoreticalBytes(width int) uint64 {
	//nolint:gosec // G115: validated non-negative
	return uint64(c.Rows) * uint64(c.Columns) * uint64(c.ValueLength) * uint64(width)
}
