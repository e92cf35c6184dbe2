package rowmem

import (
	"fmt"
	"unicode/utf16"

	"github.com/codeGROOVE-dev/rowmem/pkg/compress"
)

// BytesTable stores values as byte slices.
type BytesTable [][][]byte

func (t BytesTable) Len() int { return len(t) }

func (t BytesTable) Record(i int) []string {
	out := make([]string, len(t[i]))
	for c, v := range t[i] {
		out[c] = string(v)
	}
	return out
}

// BuildListListBytes stores every value as its own byte slice.
func BuildListListBytes(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	records := make(BytesTable, cfg.Rows)
	for r := range records {
		row := make([][]byte, cfg.Columns)
		for c := range row {
			row[c] = gen.GetBytes(cfg.ValueLength)
		}
		records[r] = row
	}
	return records, nil
}

// UTF16Table stores values as UTF-16 code units, two bytes per character.
type UTF16Table [][][]uint16

func (t UTF16Table) Len() int { return len(t) }

func (t UTF16Table) Record(i int) []string {
	out := make([]string, len(t[i]))
	for c, v := range t[i] {
		out[c] = string(utf16.Decode(v))
	}
	return out
}

// BuildListListUTF16 stores every value as UTF-16.
func BuildListListUTF16(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	records := make(UTF16Table, cfg.Rows)
	for r := range records {
		row := make([][]uint16, cfg.Columns)
		for c := range row {
			row[c] = utf16.Encode([]rune(gen.Get(cfg.ValueLength)))
		}
		records[r] = row
	}
	return records, nil
}

// CompressedTable stores each row as one compressed block of its values
// concatenated. Values are fixed width, so no separators are needed.
type CompressedTable struct {
	rows     [][]byte
	newCodec func() compress.Compressor
	codec    compress.Compressor // created by the first Record call
	columns  int
	width    int
}

func (t *CompressedTable) Len() int { return len(t.rows) }

// Record decodes row i. It returns nil if the block is corrupt.
func (t *CompressedTable) Record(i int) []string {
	if t.codec == nil {
		t.codec = t.newCodec()
	}
	raw, err := t.codec.Decode(t.rows[i])
	if err != nil {
		return nil
	}
	return splitRow(raw, t.columns, t.width)
}

// splitRow cuts a fixed-width row back into its values.
// It returns nil if raw has the wrong length.
func splitRow(raw []byte, columns, width int) []string {
	if len(raw) != columns*width {
		return nil
	}
	out := make([]string, columns)
	for c := range out {
		out[c] = string(raw[c*width : (c+1)*width])
	}
	return out
}

// BuildCompressedS2 compresses every row with S2.
func BuildCompressedS2(cfg Config) (Table, error) {
	return buildCompressed(cfg, compress.S2)
}

// BuildCompressedZstd compresses every row with zstd at its fastest level.
func BuildCompressedZstd(cfg Config) (Table, error) {
	return buildCompressed(cfg, func() compress.Compressor { return compress.Zstd(1) })
}

// BuildCompressedLZ4 compresses every row with LZ4.
func BuildCompressedLZ4(cfg Config) (Table, error) {
	return buildCompressed(cfg, compress.LZ4)
}

// buildCompressed encodes with a codec from newCodec and drops it, so
// encoder state is not counted as part of the table.
func buildCompressed(cfg Config, newCodec func() compress.Compressor) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	codec := newCodec()
	buf := make([]byte, cfg.Columns*cfg.ValueLength)
	t := &CompressedTable{
		rows:     make([][]byte, cfg.Rows),
		newCodec: newCodec,
		columns:  cfg.Columns,
		width:    cfg.ValueLength,
	}
	for r := range t.rows {
		for c := range cfg.Columns {
			gen.fill(buf[c*cfg.ValueLength : (c+1)*cfg.ValueLength])
		}
		enc, err := codec.Encode(buf)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
		// Encoders may return a view of a larger scratch buffer.
		t.rows[r] = append(make([]byte, 0, len(enc)), enc...)
	}
	return t, nil
}
