package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	nutriform "github.com/goliatone/go-nutriform"
	"github.com/goliatone/go-nutriform/internal/config"
	"github.com/goliatone/go-nutriform/internal/logging"
	"github.com/goliatone/go-nutriform/pkg/formschema"
	"github.com/goliatone/go-nutriform/pkg/tui"
)

func main() {
	envFile := flag.String("env", "", "env file to load (defaults to .env when present)")
	endpoint := flag.String("endpoint", "", "analysis service base URL (overrides NUTRIFORM_ENDPOINT)")
	formPath := flag.String("form", "", "form definition file (overrides NUTRIFORM_FORM_SCHEMA)")
	templateDir := flag.String("templates", "", "template directory overriding the embedded templates (overrides NUTRIFORM_TEMPLATE_DIR)")
	htmlOut := flag.String("html", "", "write an HTML snapshot of the form here after the session")
	flag.Parse()

	cfg, err := loadConfig(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *endpoint != "" {
		cfg.Service.Endpoint = *endpoint
	}
	if *formPath != "" {
		cfg.Form.SchemaPath = *formPath
	}
	if *templateDir != "" {
		cfg.Theme.TemplateDir = *templateDir
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid flags: %v", err)
		}
	}

	logger, closeLog, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, *htmlOut, logger)
	stop()

	code := 0
	switch {
	case errors.Is(err, tui.ErrAborted):
		fmt.Println("Aborted.")
	case err != nil:
		logger.Error("session failed", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	closeLog()
	os.Exit(code)
}

func loadConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		return config.LoadFile(envFile)
	}
	return config.Load()
}

func run(ctx context.Context, cfg *config.Config, htmlOut string, logger *zap.Logger) error {
	options := []nutriform.Option{
		nutriform.WithPath(cfg.Service.AnalyzePath),
		nutriform.WithTimeout(cfg.Service.Timeout),
		nutriform.WithContractValidation(cfg.Service.ValidateContract),
		nutriform.WithTheme(nil, cfg.Theme.Variant),
		nutriform.WithTemplateDir(cfg.Theme.TemplateDir),
		nutriform.WithLogger(logger),
	}
	if cfg.Form.SchemaPath != "" {
		form, err := formschema.LoadFile(cfg.Form.SchemaPath)
		if err != nil {
			return err
		}
		options = append(options, nutriform.WithForm(form))
	}

	app, err := nutriform.New(cfg.Service.Endpoint, options...)
	if err != nil {
		return err
	}
	logger.Info("form ready",
		zap.String("endpoint", app.Client.URL()),
		zap.String("variant", app.Renderer.Palette().Variant()),
	)

	session, err := app.Session()
	if err != nil {
		return err
	}
	if err := session.Run(ctx); err != nil {
		return err
	}

	if htmlOut == "" {
		return nil
	}
	page, err := app.Page()
	if err != nil {
		return err
	}
	if err := os.WriteFile(htmlOut, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", htmlOut, err)
	}
	fmt.Printf("Form written to %s\n", htmlOut)
	return nil
}
