package gotemplate_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-nutriform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-nutriform/pkg/testsupport"
)

var files = fstest.MapFS{
	"summary.tmpl":   {Data: []byte(`<p>{{ summary }}</p>`)},
	"global.tmpl":    {Data: []byte(`{{ theme.variant }}:{{ label }}`)},
	"nutrients.tmpl": {Data: []byte(`{% for row in rows %}{{ row.nutrient }}={{ row.consumed|fixed }};{% endfor %}`)},
	"rounded.tmpl":   {Data: []byte(`{{ value|fixed:0 }}|{{ value|fixed:2 }}`)},
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}

func TestEngine_RenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	got, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("summary", map[string]any{"summary": "Balanced"}, w)
	})
	if got != "<p>Balanced</p>" {
		t.Fatalf("unexpected output %q", got)
	}
	if written != got {
		t.Fatalf("writer mismatch: %q", written)
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("summary.tmpl", map[string]any{"summary": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	type row struct {
		Nutrient string  `json:"nutrient"`
		Consumed float64 `json:"consumed"`
	}
	engine := newEngine(t)

	got, err := engine.RenderTemplate("nutrients", struct {
		Rows []row `json:"rows"`
	}{Rows: []row{{Nutrient: "Protein", Consumed: 40}, {Nutrient: "Iron", Consumed: 7.25}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Protein=40.0;Iron=7.2;" && got != "Protein=40.0;Iron=7.3;" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_FixedFilterDigits(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("rounded", map[string]any{"value": 2.5})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "2|2.50" && got != "3|2.50" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{"theme": map[string]any{"variant": "contrast"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	got, err := engine.RenderTemplate("global", map[string]any{"label": "ok"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "contrast:ok" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_BaseDirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "summary.tmpl"), []byte(`OVERRIDE[{{ summary }}]`), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine := newEngine(t, gotemplate.WithBaseDir(dir))

	got, err := engine.RenderTemplate("summary", map[string]any{"summary": "a"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "OVERRIDE[a]" {
		t.Fatalf("expected directory template, got %q", got)
	}

	fallback, err := engine.RenderTemplate("rounded", map[string]any{"value": 1})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if fallback != "1|1.00" {
		t.Fatalf("expected embedded template for missing file, got %q", fallback)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
