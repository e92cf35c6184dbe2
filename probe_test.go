package rowmem

import (
	"runtime"
	"testing"
)

var probeSink []byte

func TestHeapProbe_SeesLiveAllocation(t *testing.T) {
	p := &HeapProbe{}
	if p.Name() != "heap" {
		t.Errorf("Name() = %q; want heap", p.Name())
	}

	const size = 8 << 20
	probeSink = make([]byte, size)
	sample, err := p.Measure()
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if sample.Bytes < size {
		t.Errorf("Bytes = %d; want at least %d while %d bytes are live", sample.Bytes, size, size)
	}
	if !sample.Precise {
		t.Error("heap samples should be precise")
	}
	if sample.Objects == 0 {
		t.Error("Objects = 0; want live objects counted")
	}
	probeSink = nil
}

func TestRSSProbe(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("procfs is only available on linux")
	}
	p, err := NewRSSProbe()
	if err != nil {
		t.Skipf("procfs unavailable: %v", err)
	}
	p.Settle = 0

	sample, err := p.Measure()
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if sample.Bytes == 0 {
		t.Error("Bytes = 0; want resident set size")
	}
	if sample.Precise {
		t.Error("rss samples should not be precise")
	}
}

func TestNewProbe(t *testing.T) {
	for _, name := range []string{"", "heap"} {
		p, err := NewProbe(name)
		if err != nil {
			t.Fatalf("NewProbe(%q): %v", name, err)
		}
		if p.Name() != "heap" {
			t.Errorf("NewProbe(%q).Name() = %q; want heap", name, p.Name())
		}
	}
	if _, err := NewProbe("vmstat"); err == nil {
		t.Error("NewProbe(vmstat) should fail")
	}
}
