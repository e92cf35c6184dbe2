package rowmem

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"empty dataset", Config{PoolSize: 1}, false},
		{"negative rows", Config{Rows: -1, PoolSize: 1}, true},
		{"negative columns", Config{Columns: -1, PoolSize: 1}, true},
		{"negative length", Config{ValueLength: -1, PoolSize: 1}, true},
		{"no pool", Config{Rows: 1, Columns: 1, ValueLength: 1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v; wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v; want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_TheoreticalBytes(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TheoreticalBytes(1); got != 2_000_000 {
		t.Errorf("TheoreticalBytes(1) = %d; want 2000000", got)
	}
	if got := cfg.TheoreticalBytes(2); got != 4_000_000 {
		t.Errorf("TheoreticalBytes(2) = %d; want 4000000", got)
	}
	if got := cfg.Cells(); got != 200_000 {
		t.Errorf("Cells() = %d; want 200000", got)
	}
}
