package rowmem

import (
	"fmt"
	"strconv"

	"github.com/coocood/freecache"
	"github.com/dgraph-io/ristretto"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/maypok86/otter/v2"
	"github.com/vmihailenco/go-tinylfu"
)

const (
	// cacheHeadroom sizes every cache above the row count so eviction and
	// admission policies never have to choose a victim.
	cacheHeadroom = 2

	// admitPasses bounds how often rows dropped by a cache are written again.
	admitPasses = 3

	// freecacheMinSize is the smallest size freecache accepts.
	freecacheMinSize = 512 * 1024

	// freecacheEntryOverhead is freecache's per-entry header plus an int64 key.
	freecacheEntryOverhead = 24 + 8
)

// CacheTable is a dataset held in a cache keyed by row index.
type CacheTable struct {
	rows  int
	get   func(i int) ([]string, bool)
	close func()
}

// Len counts the rows the cache still holds.
func (t *CacheTable) Len() int {
	n := 0
	for i := range t.rows {
		if _, ok := t.get(i); ok {
			n++
		}
	}
	return n
}

func (t *CacheTable) Record(i int) []string {
	row, _ := t.get(i)
	return row
}

// Close stops any background work the cache runs.
func (t *CacheTable) Close() error {
	if t.close != nil {
		t.close()
	}
	return nil
}

func cacheCapacity(rows int) int {
	return max(1, rows*cacheHeadroom)
}

// genRows draws cfg.Rows exact-length rows.
func genRows(gen *Generator, cfg Config) [][]string {
	rows := make([][]string, cfg.Rows)
	for r := range rows {
		row := make([]string, cfg.Columns)
		for c := range row {
			row[c] = gen.Get(cfg.ValueLength)
		}
		rows[r] = row
	}
	return rows
}

// admit writes rows until the cache reports all of them present.
// flush, if set, waits for buffered writes to land.
func admit(name string, rows [][]string, set func(int, []string), get func(int) ([]string, bool), flush func()) error {
	pending := make([]int, len(rows))
	for i := range pending {
		pending[i] = i
	}
	for range admitPasses {
		for _, r := range pending {
			set(r, rows[r])
		}
		if flush != nil {
			flush()
		}
		missing := pending[:0]
		for _, r := range pending {
			if _, ok := get(r); !ok {
				missing = append(missing, r)
			}
		}
		pending = missing
		if len(pending) == 0 {
			return nil
		}
	}
	return fmt.Errorf("%s: %d of %d rows not admitted", name, len(pending), len(rows))
}

// BuildLRUCache stores rows in a hashicorp LRU.
func BuildLRUCache(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	c, err := lru.New[int, []string](cacheCapacity(cfg.Rows))
	if err != nil {
		return nil, fmt.Errorf("lru: %w", err)
	}
	for r, row := range genRows(gen, cfg) {
		c.Add(r, row)
	}
	return &CacheTable{rows: cfg.Rows, get: c.Peek}, nil
}

// BuildOtterCache stores rows in an otter cache.
func BuildOtterCache(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	c := otter.Must(&otter.Options[int, []string]{MaximumSize: cacheCapacity(cfg.Rows)})
	set := func(r int, row []string) { c.Set(r, row) }
	if err := admit("otter", genRows(gen, cfg), set, c.GetIfPresent, nil); err != nil {
		return nil, err
	}
	return &CacheTable{rows: cfg.Rows, get: c.GetIfPresent}, nil
}

// BuildRistrettoCache stores rows in a ristretto cache, one cost unit per row.
func BuildRistrettoCache(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	capacity := cacheCapacity(cfg.Rows)
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        int64(capacity * 10),
		MaxCost:            int64(capacity),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto: %w", err)
	}
	get := func(r int) ([]string, bool) {
		v, ok := c.Get(r)
		if !ok {
			return nil, false
		}
		row, ok := v.([]string)
		return row, ok
	}
	set := func(r int, row []string) { c.Set(r, row, 1) }
	if err := admit("ristretto", genRows(gen, cfg), set, get, c.Wait); err != nil {
		c.Close()
		return nil, err
	}
	return &CacheTable{rows: cfg.Rows, get: get, close: c.Close}, nil
}

// BuildTinyLFUCache stores rows in a TinyLFU cache keyed by the decimal row
// index.
func BuildTinyLFUCache(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	capacity := cacheCapacity(cfg.Rows)
	c := tinylfu.NewSync(capacity, capacity*10)
	get := func(r int) ([]string, bool) {
		v, ok := c.Get(strconv.Itoa(r))
		if !ok {
			return nil, false
		}
		row, ok := v.([]string)
		return row, ok
	}
	set := func(r int, row []string) {
		c.Set(&tinylfu.Item{Key: strconv.Itoa(r), Value: row})
	}
	if err := admit("tinylfu", genRows(gen, cfg), set, get, nil); err != nil {
		return nil, err
	}
	return &CacheTable{rows: cfg.Rows, get: get}, nil
}

// BuildFreeCache stores fixed-width encoded rows in freecache's segmented
// ring buffers, which hold no Go pointers.
func BuildFreeCache(cfg Config) (Table, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	rowBytes := cfg.Columns * cfg.ValueLength
	entry := rowBytes + freecacheEntryOverhead
	// Values must stay under 1/1024 of the cache size to be stored at all.
	size := max(freecacheMinSize, entry*cacheCapacity(cfg.Rows)*2, entry*2048)
	c := freecache.NewCache(size)

	buf := make([]byte, rowBytes)
	for r := range cfg.Rows {
		for col := range cfg.Columns {
			gen.fill(buf[col*cfg.ValueLength : (col+1)*cfg.ValueLength])
		}
		if err := c.SetInt(int64(r), buf, 0); err != nil {
			return nil, fmt.Errorf("freecache row %d: %w", r, err)
		}
	}
	if n := c.EntryCount(); n != int64(cfg.Rows) {
		return nil, fmt.Errorf("freecache: %d of %d rows stored", n, cfg.Rows)
	}

	get := func(r int) ([]string, bool) {
		raw, err := c.GetInt(int64(r))
		if err != nil {
			return nil, false
		}
		return splitRow(raw, cfg.Columns, cfg.ValueLength), true
	}
	return &CacheTable{rows: cfg.Rows, get: get}, nil
}
