package rowmem

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/prometheus/procfs"
)

// defaultSettle is the pause between the two forced collections.
const defaultSettle = 100 * time.Millisecond

// Sample is one memory measurement.
type Sample struct {
	Bytes   uint64
	Objects uint64 // live heap objects; 0 when the probe cannot tell
	// Precise is false when Bytes includes memory the Go heap does not own,
	// such as runtime overhead and pages not yet returned to the OS.
	Precise bool
}

// Probe measures memory after forcing a full collection.
type Probe interface {
	Name() string
	Measure() (Sample, error)
}

// collect forces a full collection, waits for finalizers and sweeping to
// settle, collects again and returns freed pages to the OS.
func collect(settle time.Duration) {
	runtime.GC()
	time.Sleep(settle)
	runtime.GC()
	debug.FreeOSMemory()
}

// HeapProbe reports the live Go heap from runtime.MemStats.
type HeapProbe struct {
	Settle time.Duration
}

// NewHeapProbe returns a HeapProbe with the default settle time.
func NewHeapProbe() *HeapProbe {
	return &HeapProbe{Settle: defaultSettle}
}

func (*HeapProbe) Name() string { return "heap" }

func (p *HeapProbe) Measure() (Sample, error) {
	collect(p.Settle)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return Sample{Bytes: mem.HeapAlloc, Objects: mem.HeapObjects, Precise: true}, nil
}

// RSSProbe reports the process resident set size from /proc.
//
// It is coarser than HeapProbe: RSS counts goroutine stacks, runtime
// metadata, and heap pages the scavenger has not released yet, so the
// difference between two shapes is only accurate to a few pages.
type RSSProbe struct {
	Settle time.Duration
	fs     procfs.FS
}

// NewRSSProbe opens the default procfs mount.
func NewRSSProbe() (*RSSProbe, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("procfs: %w", err)
	}
	return &RSSProbe{Settle: defaultSettle, fs: fs}, nil
}

func (*RSSProbe) Name() string { return "rss" }

func (p *RSSProbe) Measure() (Sample, error) {
	collect(p.Settle)

	proc, err := p.fs.Self()
	if err != nil {
		return Sample{}, fmt.Errorf("procfs self: %w", err)
	}
	stat, err := proc.Stat()
	if err != nil {
		return Sample{}, fmt.Errorf("procfs stat: %w", err)
	}
	//nolint:gosec // G115: resident memory is never negative
	return Sample{Bytes: uint64(stat.ResidentMemory())}, nil
}

// NewProbe returns the probe called name ("heap" or "rss").
func NewProbe(name string) (Probe, error) {
	switch name {
	case "heap", "":
		return NewHeapProbe(), nil
	case "rss":
		p, err := NewRSSProbe()
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown probe %q", name)
	}
}
