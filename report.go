package rowmem

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Format selects how a Reporter writes measurements.
type Format int

const (
	// FormatText writes one human-readable line per measurement.
	FormatText Format = iota
	// FormatJSON writes one JSON object per measurement and nothing else.
	FormatJSON
)

const separator = "------------------------"

// FormatSize renders bytes as "<MB>Mb / <KB>Kb / <bytes> bytes" using
// 1024-based units, one decimal and thousands separators.
func FormatSize(bytes uint64) string {
	f := float64(bytes)
	return fmt.Sprintf("%sMb / %sKb / %s bytes",
		humanize.FormatFloat("#,###.#", f/1024/1024),
		humanize.FormatFloat("#,###.#", f/1024),
		humanize.Comma(int64(bytes))) //nolint:gosec // G115: heap sizes fit in int64
}

// Reporter writes measurements to an io.Writer.
// The first write error is kept and returned by Err; later writes are
// skipped.
type Reporter struct {
	w      io.Writer
	format Format
	err    error
}

// NewReporter returns a Reporter writing format to w.
func NewReporter(w io.Writer, format Format) *Reporter {
	return &Reporter{w: w, format: format}
}

// Err returns the first write error, if any.
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Theoretical writes the raw payload size of the dataset.
func (r *Reporter) Theoretical(bytes uint64) {
	if r.format != FormatText {
		return
	}
	r.printf("Theoretical data size: %s\n", FormatSize(bytes))
}

// Separator writes the divider between shapes.
func (r *Reporter) Separator() {
	r.Line(separator)
}

// Line writes s verbatim in text mode.
func (r *Reporter) Line(s string) {
	if r.format != FormatText {
		return
	}
	r.printf("%s\n", s)
}

type jsonRecord struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
	Bytes uint64 `json:"bytes"`
}

// Report writes one measurement.
func (r *Reporter) Report(label string, items int, bytes uint64) {
	if r.format == FormatJSON {
		b, err := json.Marshal(jsonRecord{Name: label, Items: items, Bytes: bytes})
		if err != nil {
			r.err = err
			return
		}
		r.printf("%s\n", b)
		return
	}
	r.printf("%s. %s\n", label, FormatSize(bytes))
}

// ReportShape writes the measurement of a built shape. Text output labels it
// "<name> After GC"; JSON output uses the bare name.
func (r *Reporter) ReportShape(name string, items int, bytes uint64) {
	if r.format == FormatText {
		name += " After GC"
	}
	r.Report(name, items, bytes)
}
