// Package nutriform wires the nutrition analysis form together: the food
// list, the preference controls, the analysis client, the result renderer
// and the orchestrator driving them.
package nutriform

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-nutriform/pkg/client"
	"github.com/goliatone/go-nutriform/pkg/contract"
	"github.com/goliatone/go-nutriform/pkg/foodlist"
	"github.com/goliatone/go-nutriform/pkg/formschema"
	"github.com/goliatone/go-nutriform/pkg/orchestrator"
	"github.com/goliatone/go-nutriform/pkg/render"
	"github.com/goliatone/go-nutriform/pkg/tui"
	"github.com/goliatone/go-nutriform/pkg/view"
	theme "github.com/goliatone/go-theme"
)

// Outcome aliases orchestrator.Outcome for callers of App.Submit.
type Outcome = orchestrator.Outcome

// Option configures an App.
type Option func(*settings)

type settings struct {
	path             string
	timeout          time.Duration
	httpClient       *http.Client
	validateContract bool
	manifest         *theme.Manifest
	variant          string
	templateDir      string
	form             *formschema.Form
	logger           *zap.Logger
}

// WithPath overrides the analyze path.
func WithPath(path string) Option {
	return func(s *settings) { s.path = path }
}

// WithTimeout bounds each analysis call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) { s.timeout = timeout }
}

// WithHTTPClient replaces the HTTP client used for the service.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(s *settings) { s.httpClient = httpClient }
}

// WithContractValidation toggles checking requests and responses against
// the embedded OpenAPI document. It is on by default.
func WithContractValidation(enabled bool) Option {
	return func(s *settings) { s.validateContract = enabled }
}

// WithTheme selects the badge palette manifest and variant. A nil manifest
// keeps the default.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return func(s *settings) {
		if manifest != nil {
			s.manifest = manifest
		}
		s.variant = variant
	}
}

// WithTemplateDir loads templates from dir, falling back to the embedded ones
// for any file it lacks.
func WithTemplateDir(dir string) Option {
	return func(s *settings) { s.templateDir = dir }
}

// WithForm replaces the embedded form definition.
func WithForm(form *formschema.Form) Option {
	return func(s *settings) {
		if form != nil {
			s.form = form
		}
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// App is one form instance.
type App struct {
	List         *foodlist.Manager
	Document     *view.Document
	Client       *client.Client
	Renderer     *render.Renderer
	Orchestrator *orchestrator.Orchestrator
	Form         *formschema.Form

	logger *zap.Logger
}

// New builds an App talking to the analysis service at baseURL.
func New(baseURL string, options ...Option) (*App, error) {
	s := settings{
		validateContract: true,
		manifest:         render.DefaultManifest(),
		logger:           zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&s)
	}

	if s.form == nil {
		form, err := formschema.Default()
		if err != nil {
			return nil, err
		}
		s.form = form
	}

	palette, err := render.NewPalette(s.manifest, s.variant)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(
		render.WithPalette(palette),
		render.WithTemplateDir(s.templateDir),
		render.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}

	clientOpts := []client.Option{
		client.WithPath(s.path),
		client.WithTimeout(s.timeout),
		client.WithHTTPClient(s.httpClient),
		client.WithLogger(s.logger),
	}
	if s.validateContract {
		ct, err := contract.Default()
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, client.WithContract(ct))
	}
	analysis, err := client.New(baseURL, clientOpts...)
	if err != nil {
		return nil, err
	}

	app := &App{
		List:     foodlist.New(),
		Document: view.NewDocument(),
		Client:   analysis,
		Renderer: renderer,
		Form:     s.form,
		logger:   s.logger,
	}
	app.Orchestrator, err = orchestrator.New(
		orchestrator.WithEntries(app.List),
		orchestrator.WithControls(app.Document),
		orchestrator.WithSurface(app.Document),
		orchestrator.WithAnalyzer(analysis),
		orchestrator.WithRenderer(renderer),
		orchestrator.WithLogger(s.logger),
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Submit collects, validates and submits the form.
func (a *App) Submit(ctx context.Context) (Outcome, error) {
	return a.Orchestrator.Submit(ctx)
}

// Reset hides results and errors and shows the placeholder.
func (a *App) Reset() error {
	return a.Orchestrator.Reset()
}

// Session returns a terminal session over this form.
func (a *App) Session(options ...tui.Option) (*tui.Session, error) {
	base := []tui.Option{tui.WithForm(a.Form), tui.WithLogger(a.logger)}
	return tui.NewSession(a.List, a.Document, a.Orchestrator, a.Renderer, append(base, options...)...)
}

// Page renders the current state of the form as an HTML document.
func (a *App) Page() (string, error) {
	return a.Renderer.Page(a.PageData())
}

// PageData projects the form definition, the food list and the document
// snapshot into render.PageData.
func (a *App) PageData() render.PageData {
	data := render.PageData{
		Title:           a.Form.Title,
		FoodPlaceholder: a.Form.FoodItems.Placeholder,
		AddLabel:        a.Form.FoodItems.AddLabel,
		Snapshot:        a.Document.Snapshot(),
	}

	controls := a.List.Controls()
	enabled := make(map[foodlist.EntryID]bool, len(controls))
	for _, control := range controls {
		enabled[control.Entry] = control.Enabled
	}
	for _, entry := range a.List.Entries() {
		data.Entries = append(data.Entries, render.PageEntry{
			ID:            strconv.FormatUint(uint64(entry.ID), 10),
			Value:         entry.Value,
			RemoveEnabled: enabled[entry.ID],
		})
	}

	for _, field := range a.Form.Fields {
		pageField := render.PageField{
			Control:     field.Control,
			Label:       field.Label,
			Type:        field.Type,
			Placeholder: field.Placeholder,
			Required:    field.Required,
		}
		for _, option := range field.Options {
			pageField.Options = append(pageField.Options, render.PageOption{
				Value: option.Value,
				Label: option.Label,
			})
		}
		data.Fields = append(data.Fields, pageField)
	}
	return data
}
