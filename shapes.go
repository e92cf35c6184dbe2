package rowmem

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownShape is returned by Lookup for names not in the registry.
var ErrUnknownShape = errors.New("unknown shape")

// Table is the read-only view every shape exposes.
// Record may allocate; it is meant for verification, not for measurement.
type Table interface {
	Len() int
	Record(i int) []string
}

// Shape is one candidate in-memory layout of the dataset.
type Shape struct {
	Name string
	// Width is the number of bytes per character used for the shape's
	// theoretical payload.
	Width int
	Build func(cfg Config) (Table, error)
}

// Shapes returns the registry in run order.
func Shapes() []Shape {
	return []Shape{
		{Name: "ListListString", Width: 1, Build: BuildListListString},
		{Name: "ListListObject", Width: 1, Build: BuildListListObject},
		{Name: "ListArrayString", Width: 1, Build: BuildListArrayString},
		{Name: "FlatArrayString", Width: 1, Build: BuildFlatArrayString},
		{Name: "ListDictStringString", Width: 1, Build: BuildListDictStringString},
		{Name: "ListDictInternedKeys", Width: 1, Build: BuildListDictInternedKeys},
		{Name: "ListListBytes", Width: 1, Build: BuildListListBytes},
		{Name: "ListListUTF16", Width: 2, Build: BuildListListUTF16},
		{Name: "SimilarStrings", Width: 1, Build: BuildSimilarStrings},
		{Name: "SimilarStringsInterned", Width: 1, Build: BuildSimilarStringsInterned},
		{Name: "CompressedRows/s2", Width: 1, Build: BuildCompressedS2},
		{Name: "CompressedRows/zstd", Width: 1, Build: BuildCompressedZstd},
		{Name: "CompressedRows/lz4", Width: 1, Build: BuildCompressedLZ4},
		{Name: "LRUCache", Width: 1, Build: BuildLRUCache},
		{Name: "OtterCache", Width: 1, Build: BuildOtterCache},
		{Name: "RistrettoCache", Width: 1, Build: BuildRistrettoCache},
		{Name: "TinyLFUCache", Width: 1, Build: BuildTinyLFUCache},
		{Name: "FreeCache", Width: 1, Build: BuildFreeCache},
	}
}

// Lookup returns the registered shape called name.
func Lookup(name string) (Shape, error) {
	for _, s := range Shapes() {
		if s.Name == name {
			return s, nil
		}
	}
	return Shape{}, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// newGenerator validates cfg and returns the generator a builder draws from.
func newGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewGenerator(cfg.PoolSize, cfg.Seed), nil
}

// NestedTable is a slice of rows, each a slice of values.
type NestedTable [][]string

func (t NestedTable) Len() int { return len(t) }

func (t NestedTable) Record(i int) []string { return t[i] }

// BuildListListString grows every row with append, so rows carry the
// slack left by slice growth.
func BuildListListString(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	var records NestedTable
	for range cfg.Rows {
		var row []string
		for range cfg.Columns {
			row = append(row, gen.Get(cfg.ValueLength))
		}
		records = append(records, row)
	}
	return records, nil
}

// BuildListArrayString allocates every row at its exact length.
func BuildListArrayString(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	records := make(NestedTable, cfg.Rows)
	for r := range records {
		row := make([]string, cfg.Columns)
		for c := range row {
			row[c] = gen.Get(cfg.ValueLength)
		}
		records[r] = row
	}
	return records, nil
}

// BoxedTable stores every value behind an interface.
type BoxedTable [][]any

func (t BoxedTable) Len() int { return len(t) }

func (t BoxedTable) Record(i int) []string {
	out := make([]string, len(t[i]))
	for c, v := range t[i] {
		out[c], _ = v.(string) //nolint:errcheck // builders only store strings
	}
	return out
}

// BuildListListObject is BuildListListString with boxed values.
func BuildListListObject(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	var records BoxedTable
	for range cfg.Rows {
		var row []any
		for range cfg.Columns {
			row = append(row, gen.Get(cfg.ValueLength))
		}
		records = append(records, row)
	}
	return records, nil
}

// FlatTable holds every value in one row-major slice.
type FlatTable struct {
	cells   []string
	rows    int
	columns int
}

func (t *FlatTable) Len() int { return t.rows }

func (t *FlatTable) Record(i int) []string {
	return t.cells[i*t.columns : (i+1)*t.columns : (i+1)*t.columns]
}

// BuildFlatArrayString stores the dataset in a single slice with one header
// for all rows.
func BuildFlatArrayString(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	cells := make([]string, cfg.Cells())
	for i := range cells {
		cells[i] = gen.Get(cfg.ValueLength)
	}
	return &FlatTable{cells: cells, rows: cfg.Rows, columns: cfg.Columns}, nil
}

// MapTable stores each row as a map from column name to value.
type MapTable struct {
	rows []map[string]string
	keys []string
}

func (t *MapTable) Len() int { return len(t.rows) }

func (t *MapTable) Record(i int) []string {
	out := make([]string, len(t.keys))
	for c, k := range t.keys {
		out[c] = t.rows[i][k]
	}
	return out
}

func fieldKey(c int) string {
	return "Field" + strconv.Itoa(c)
}

// BuildListDictStringString builds a fresh set of column-name keys for
// every row.
func BuildListDictStringString(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	t := &MapTable{keys: make([]string, cfg.Columns)}
	for c := range t.keys {
		t.keys[c] = fieldKey(c)
	}
	for range cfg.Rows {
		row := make(map[string]string)
		for c := range cfg.Columns {
			row[fieldKey(c)] = gen.Get(cfg.ValueLength)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// BuildListDictInternedKeys is BuildListDictStringString with every key
// taken from an intern pool, so all rows share one allocation per column
// name.
func BuildListDictInternedKeys(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	pool := NewPool()
	t := &MapTable{keys: make([]string, cfg.Columns)}
	for c := range t.keys {
		t.keys[c] = pool.Intern(fieldKey(c))
	}
	for range cfg.Rows {
		row := make(map[string]string)
		for c := range cfg.Columns {
			row[pool.Intern(fieldKey(c))] = gen.Get(cfg.ValueLength)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// similarValue writes col as a decimal zero-padded to length, keeping the
// last length digits when col is wider.
func similarValue(dst []byte, col int) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte('0' + col%10)
		col /= 10
	}
}

// BuildSimilarStrings fills every row with the same per-column labels, each
// one a separate allocation.
func BuildSimilarStrings(cfg Config) (Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, cfg.ValueLength)
	records := make(NestedTable, cfg.Rows)
	for r := range records {
		row := make([]string, cfg.Columns)
		for c := range row {
			similarValue(buf, c)
			row[c] = string(buf)
		}
		records[r] = row
	}
	return records, nil
}

// BuildSimilarStringsInterned is BuildSimilarStrings with values taken from
// an intern pool.
func BuildSimilarStringsInterned(cfg Config) (Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pool := NewPool()
	buf := make([]byte, cfg.ValueLength)
	records := make(NestedTable, cfg.Rows)
	for r := range records {
		row := make([]string, cfg.Columns)
		for c := range row {
			similarValue(buf, c)
			row[c] = pool.InternBytes(buf)
		}
		records[r] = row
	}
	return records, nil
}
