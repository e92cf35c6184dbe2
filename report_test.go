package rowmem

import (
	"bytes"
	"errors"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0.0Mb / 0.0Kb / 0 bytes"},
		{1024, "0.0Mb / 1.0Kb / 1,024 bytes"},
		{2_000_000, "1.9Mb / 1,953.1Kb / 2,000,000 bytes"},
		{3 << 20, "3.0Mb / 3,072.0Kb / 3,145,728 bytes"},
	}
	for _, tc := range tests {
		if got := FormatSize(tc.bytes); got != tc.want {
			t.Errorf("FormatSize(%d) = %q; want %q", tc.bytes, got, tc.want)
		}
	}
}

func TestReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText)

	r.Theoretical(DefaultConfig().TheoreticalBytes(1))
	r.Separator()
	r.ReportShape("ListListString", 10000, 1024)
	r.Line("Finished")

	want := "Theoretical data size: 1.9Mb / 1,953.1Kb / 2,000,000 bytes\n" +
		"------------------------\n" +
		"ListListString After GC. 0.0Mb / 1.0Kb / 1,024 bytes\n" +
		"Finished\n"
	if got := buf.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v; want nil", err)
	}
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON)

	r.Theoretical(100)
	r.Separator()
	r.ReportShape("FreeCache", 3, 4096)

	want := `{"name":"FreeCache","items":3,"bytes":4096}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

type failWriter struct{ n int }

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errWrite
}

func TestReporter_StickyError(t *testing.T) {
	w := &failWriter{}
	r := NewReporter(w, FormatText)

	r.Line("one")
	r.Line("two")
	r.Report("three", 0, 0)

	if !errors.Is(r.Err(), errWrite) {
		t.Errorf("Err() = %v; want errWrite", r.Err())
	}
	if w.n != 1 {
		t.Errorf("writes attempted = %d; want 1", w.n)
	}
}
