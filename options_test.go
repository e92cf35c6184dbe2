package rowmem

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
)

func TestDefaultConfig_Options(t *testing.T) {
	cfg := defaultConfig()

	if cfg.dataset != DefaultConfig() {
		t.Errorf("dataset = %+v; want %+v", cfg.dataset, DefaultConfig())
	}
	if cfg.out != os.Stdout {
		t.Error("out should default to os.Stdout")
	}
	if cfg.format != FormatText {
		t.Errorf("format = %v; want FormatText", cfg.format)
	}
	if cfg.probe != nil || cfg.logger != nil || cfg.shapes != nil {
		t.Error("probe, logger and shapes should be unset until New fills them")
	}
}

func TestOptions_Apply(t *testing.T) {
	var out bytes.Buffer
	probe := &fakeProbe{}
	logger := slog.New(slog.NewTextHandler(&out, nil))
	dataset := Config{Rows: 1, Columns: 2, ValueLength: 3, PoolSize: 4, Seed: 5}

	cfg := defaultConfig()
	for _, opt := range []Option{
		WithConfig(dataset),
		WithProbe(probe),
		WithOutput(&out),
		WithLogger(logger),
		WithShapes("FreeCache"),
		WithFormat(FormatJSON),
	} {
		opt(cfg)
	}

	if cfg.dataset != dataset {
		t.Errorf("dataset = %+v; want %+v", cfg.dataset, dataset)
	}
	if cfg.probe != probe {
		t.Error("WithProbe not applied")
	}
	if cfg.out != &out {
		t.Error("WithOutput not applied")
	}
	if cfg.logger != logger {
		t.Error("WithLogger not applied")
	}
	if len(cfg.shapes) != 1 || cfg.shapes[0] != "FreeCache" {
		t.Errorf("shapes = %v; want [FreeCache]", cfg.shapes)
	}
	if cfg.format != FormatJSON {
		t.Errorf("format = %v; want FormatJSON", cfg.format)
	}
}

func TestNew_Defaults(t *testing.T) {
	suite, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if suite.cfg != DefaultConfig() {
		t.Errorf("cfg = %+v; want DefaultConfig()", suite.cfg)
	}
	if _, ok := suite.probe.(*HeapProbe); !ok {
		t.Errorf("probe = %T; want *HeapProbe", suite.probe)
	}
	if suite.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
}
