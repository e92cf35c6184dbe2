package rowmem

import (
	"testing"
)

// Memory numbers belong to cmd/rowmem and cmd/memshape, which run with a
// quiet heap. These benchmarks track build cost only.
// Use `go test -bench=Build -benchmem` to compare shapes.

func BenchmarkBuild(b *testing.B) {
	cfg := Config{Rows: 1000, Columns: 20, ValueLength: 10, PoolSize: 100000, Seed: 1}

	for _, s := range Shapes() {
		b.Run(s.Name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(cfg.TheoreticalBytes(s.Width))) //nolint:gosec // G115: small config
			for range b.N {
				table, err := s.Build(cfg)
				if err != nil {
					b.Fatalf("Build: %v", err)
				}
				if c, ok := table.(interface{ Close() error }); ok {
					_ = c.Close() //nolint:errcheck // benchmark
				}
			}
		})
	}
}

func BenchmarkGenerator_Get(b *testing.B) {
	gen := NewGenerator(100000, 1)
	b.ReportAllocs()
	for range b.N {
		_ = gen.Get(10)
	}
}

func BenchmarkPool_Intern(b *testing.B) {
	keys := make([]string, 20)
	for i := range keys {
		keys[i] = fieldKey(i)
	}
	pool := NewPool()
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		_ = pool.Intern(keys[i%len(keys)])
	}
}
