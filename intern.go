package rowmem

import (
	"math/bits"
	"strings"
	"sync/atomic"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v4"
)

// wyhash constants for fast string hashing.
const (
	wyp0 = 0xa0761d6478bd642f
	wyp1 = 0xe7037ed1a0b428db
)

// hashString hashes a string using wyhash.
func hashString(s string) uint64 {
	n := len(s)
	if n == 0 {
		return 0
	}

	p := unsafe.Pointer(unsafe.StringData(s))
	var a, b uint64

	if n <= 8 {
		if n >= 4 {
			a = uint64(*(*uint32)(p))
			b = uint64(*(*uint32)(unsafe.Add(p, n-4)))
		} else {
			a = uint64(*(*byte)(p))<<16 | uint64(*(*byte)(unsafe.Add(p, n>>1)))<<8 | uint64(*(*byte)(unsafe.Add(p, n-1)))
			b = 0
		}
	} else {
		a = *(*uint64)(p)
		b = *(*uint64)(unsafe.Add(p, n-8))
	}

	// wymix
	//nolint:gosec // G115: length is non-negative
	hi, lo := bits.Mul64(a^wyp0, b^uint64(n)^wyp1)
	return hi ^ lo
}

// Pool is a content-addressed string pool.
//
// Strings are bucketed by wyhash of their content. A bucket holds every
// distinct string that hashed to it, so collisions never merge different
// content. The pool owns the strings it hands out: they stay reachable until
// the pool is Reset or dropped.
//
// Pool is safe for concurrent use.
type Pool struct {
	entries *xsync.Map[uint64, []string]

	unique atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
	saved  atomic.Int64
}

// PoolStats summarizes pool usage.
type PoolStats struct {
	Unique     int64 // distinct strings held
	Hits       int64 // Intern calls answered from the pool
	Misses     int64 // Intern calls that added a string
	SavedBytes int64 // payload bytes not allocated thanks to hits
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{entries: xsync.NewMap[uint64, []string]()}
}

// Intern returns the pooled string equal to s, adding a private copy of s
// on first sight.
func (p *Pool) Intern(s string) string {
	return p.intern(s)
}

// InternBytes is Intern for byte slices. b is copied on a miss and never
// retained.
func (p *Pool) InternBytes(b []byte) string {
	return p.intern(unsafe.String(unsafe.SliceData(b), len(b)))
}

func (p *Pool) intern(s string) string {
	var out string
	hit := false
	p.entries.Compute(hashString(s), func(bucket []string, _ bool) ([]string, xsync.ComputeOp) {
		for _, v := range bucket {
			if v == s {
				out = v
				hit = true
				return bucket, xsync.CancelOp
			}
		}
		out = strings.Clone(s)
		return append(bucket, out), xsync.UpdateOp
	})

	if hit {
		p.hits.Add(1)
		p.saved.Add(int64(len(s)))
	} else {
		p.misses.Add(1)
		p.unique.Add(1)
	}
	return out
}

// Len returns the number of distinct strings in the pool.
func (p *Pool) Len() int {
	return int(p.unique.Load())
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Unique:     p.unique.Load(),
		Hits:       p.hits.Load(),
		Misses:     p.misses.Load(),
		SavedBytes: p.saved.Load(),
	}
}

// Reset drops every pooled string and zeroes the counters.
func (p *Pool) Reset() {
	p.entries.Clear()
	p.unique.Store(0)
	p.hits.Store(0)
	p.misses.Store(0)
	p.saved.Store(0)
}
