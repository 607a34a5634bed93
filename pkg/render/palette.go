package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-nutriform/pkg/model"
)

// Badge color tokens read from a theme manifest.
const (
	TokenStatusLow     = "status.low"
	TokenStatusOK      = "status.ok"
	TokenStatusHigh    = "status.high"
	TokenStatusDefault = "status.default"
)

// DefaultManifest is the built-in palette. The "contrast" variant swaps the
// warning and neutral colors for darker ones.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "nutriform",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenStatusLow:     "danger",
			TokenStatusOK:      "success",
			TokenStatusHigh:    "warning",
			TokenStatusDefault: "secondary",
		},
		Variants: map[string]theme.Variant{
			"contrast": {
				Tokens: map[string]string{
					TokenStatusHigh:    "dark",
					TokenStatusDefault: "light",
				},
			},
		},
	}
}

// Palette maps a comparison status to a badge color.
type Palette struct {
	name    string
	variant string
	tokens  map[string]string
}

// DefaultPalette returns the base variant of DefaultManifest.
func DefaultPalette() Palette {
	palette, _ := NewPalette(DefaultManifest(), "")
	return palette
}

// NewPalette merges the manifest tokens with the named variant's overrides.
// A nil manifest falls back to DefaultManifest; an unknown variant is an
// error.
func NewPalette(manifest *theme.Manifest, variant string) (Palette, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}

	variant = strings.TrimSpace(variant)
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return Palette{}, fmt.Errorf("render: theme %q has no variant %q", manifest.Name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}
	if tokens[TokenStatusDefault] == "" {
		tokens[TokenStatusDefault] = "secondary"
	}

	return Palette{name: manifest.Name, variant: variant, tokens: tokens}, nil
}

// Color returns the badge color for status. Matching is case-insensitive and
// anything other than low, ok or high gets the neutral color.
func (p Palette) Color(status model.Status) string {
	token := TokenStatusDefault
	switch status.Normalize() {
	case model.StatusLow:
		token = TokenStatusLow
	case model.StatusOK:
		token = TokenStatusOK
	case model.StatusHigh:
		token = TokenStatusHigh
	}
	if color := p.tokens[token]; color != "" {
		return color
	}
	return p.tokens[TokenStatusDefault]
}

// Variant is the variant the palette was built with, empty for the base.
func (p Palette) Variant() string { return p.variant }

// Name is the theme name of the manifest the palette came from.
func (p Palette) Name() string { return p.name }
