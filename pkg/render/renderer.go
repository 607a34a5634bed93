package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-nutriform/pkg/model"
	"github.com/goliatone/go-nutriform/pkg/render/template"
	"github.com/goliatone/go-nutriform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-nutriform/pkg/view"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template names used by the renderer.
const (
	TemplateComparison      = "comparison"
	TemplateRecommendations = "recommendations"
	TemplateReport          = "report"
	TemplatePage            = "page"
)

// Templates returns the embedded template files.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("render: embedded templates: %v", err))
	}
	return sub
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func textPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPalette sets the badge palette.
func WithPalette(palette Palette) Option {
	return func(r *Renderer) {
		r.palette = palette
		r.paletteSet = true
	}
}

// WithTemplateDir loads templates from dir, falling back to the embedded
// ones for any file the directory lacks.
func WithTemplateDir(dir string) Option {
	return func(r *Renderer) {
		r.templateDir = strings.TrimSpace(dir)
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer writes analysis results to a view.Surface.
type Renderer struct {
	engine      template.TemplateRenderer
	palette     Palette
	paletteSet  bool
	templateDir string
	logger      *zap.Logger
}

// New builds a Renderer backed by the embedded templates. The palette's theme
// name and variant are visible to every template as theme.name and
// theme.variant.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if !r.paletteSet {
		r.palette = DefaultPalette()
	}

	engineOpts := []gotemplate.Option{gotemplate.WithFS(Templates())}
	if r.templateDir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(r.templateDir))
	}
	engine, err := gotemplate.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("render: template engine: %w", err)
	}
	err = engine.GlobalContext(map[string]any{
		"theme": map[string]any{
			"name":    r.palette.Name(),
			"variant": r.palette.Variant(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: template globals: %w", err)
	}
	r.engine = engine

	if r.templateDir != "" {
		r.logger.Debug("template directory overrides embedded templates", zap.String("dir", r.templateDir))
	}
	return r, nil
}

// Palette returns the palette in use.
func (r *Renderer) Palette() Palette { return r.palette }

// RenderSuccess writes the summary, the comparison cards and the
// recommendation list. Both fragments are rendered before anything is written
// so a template failure leaves the surface untouched.
func (r *Renderer) RenderSuccess(surface view.Surface, result model.AnalysisResult) error {
	if surface == nil {
		return errors.New("render: surface is nil")
	}

	comparison, err := r.engine.RenderTemplate(TemplateComparison, map[string]any{
		"cards": sanitizeCards(Cards(result, r.palette)),
	})
	if err != nil {
		return fmt.Errorf("render: comparison: %w", err)
	}
	recommendations, err := r.engine.RenderTemplate(TemplateRecommendations, map[string]any{
		"recommendations": sanitizeAll(result.Recommendations),
	})
	if err != nil {
		return fmt.Errorf("render: recommendations: %w", err)
	}

	surface.SetText(view.RegionSummary, result.Summary)
	surface.SetHTML(view.RegionComparison, comparison)
	surface.SetHTML(view.RegionRecommendations, recommendations)

	r.logger.Debug("rendered analysis result",
		zap.Int("nutrients", len(result.Comparison)),
		zap.Int("recommendations", len(result.Recommendations)),
	)
	return nil
}

// RenderError replaces the error text with message.
func (r *Renderer) RenderError(surface view.Surface, message string) {
	if surface == nil {
		return
	}
	surface.SetText(view.RegionErrorText, message)
}

// Report renders result as plain text for terminals.
func (r *Renderer) Report(result model.AnalysisResult) (string, error) {
	recommendations := result.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	out, err := r.engine.RenderTemplate(TemplateReport, map[string]any{
		"summary":         result.Summary,
		"cards":           Cards(result, r.palette),
		"recommendations": recommendations,
	})
	if err != nil {
		return "", fmt.Errorf("render: report: %w", err)
	}
	return out, nil
}

func sanitize(raw string) string {
	return textPolicy().Sanitize(raw)
}

func sanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, sanitize(value))
	}
	return out
}

func sanitizeCards(cards []Card) []Card {
	for i := range cards {
		cards[i].Nutrient = sanitize(cards[i].Nutrient)
		cards[i].Status = sanitize(cards[i].Status)
		cards[i].Class = sanitize(cards[i].Class)
	}
	return cards
}
