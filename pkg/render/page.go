package render

import (
	"fmt"
	"html"

	"github.com/goliatone/go-nutriform/pkg/view"
)

// PageOption is one choice of a select field.
type PageOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// PageField is a preference control as it appears on the page. Value and
// option selection are filled from the snapshot.
type PageField struct {
	Control     view.Control `json:"control"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Options     []PageOption `json:"options"`
}

// PageEntry is a food-item input and the state of its remove control.
type PageEntry struct {
	ID            string `json:"id"`
	Value         string `json:"value"`
	RemoveEnabled bool   `json:"remove_enabled"`
}

// PageData is everything Page needs to draw the document.
type PageData struct {
	Title           string
	FoodPlaceholder string
	AddLabel        string
	Entries         []PageEntry
	Fields          []PageField
	Snapshot        view.Snapshot
}

type pageRegion struct {
	Hidden bool   `json:"hidden"`
	Body   string `json:"body"`
}

type pageRegions struct {
	Loading         pageRegion `json:"loading"`
	Error           pageRegion `json:"error"`
	ErrorText       pageRegion `json:"error_text"`
	NoResults       pageRegion `json:"no_results"`
	Results         pageRegion `json:"results"`
	Summary         pageRegion `json:"summary"`
	Comparison      pageRegion `json:"comparison"`
	Recommendations pageRegion `json:"recommendations"`
}

type pageView struct {
	Title           string      `json:"title"`
	FoodPlaceholder string      `json:"food_placeholder"`
	AddLabel        string      `json:"add_label"`
	Entries         []PageEntry `json:"entries"`
	Fields          []PageField `json:"fields"`
	SubmitEnabled   bool        `json:"submit_enabled"`
	Regions         pageRegions `json:"regions"`
}

// Page renders the whole document as HTML with region visibility expressed
// through the d-none class.
func (r *Renderer) Page(data PageData) (string, error) {
	snap := data.Snapshot
	title := data.Title
	if title == "" {
		title = "Nutrition Analysis"
	}
	addLabel := data.AddLabel
	if addLabel == "" {
		addLabel = "Add food item"
	}

	fields := make([]PageField, 0, len(data.Fields))
	for _, field := range data.Fields {
		field.Value = snap.Values[field.Control]
		options := make([]PageOption, 0, len(field.Options))
		for _, option := range field.Options {
			option.Selected = option.Value != "" && option.Value == field.Value
			options = append(options, option)
		}
		field.Options = options
		if field.Type == "" {
			field.Type = "text"
		}
		fields = append(fields, field)
	}

	entries := data.Entries
	if entries == nil {
		entries = []PageEntry{}
	}

	out, err := r.engine.RenderTemplate(TemplatePage, pageView{
		Title:           title,
		FoodPlaceholder: data.FoodPlaceholder,
		AddLabel:        addLabel,
		Entries:         entries,
		Fields:          fields,
		SubmitEnabled:   !snap.Disabled[view.ControlSubmit],
		Regions: pageRegions{
			Loading:         region(snap, view.RegionLoading),
			Error:           region(snap, view.RegionError),
			ErrorText:       region(snap, view.RegionErrorText),
			NoResults:       region(snap, view.RegionNoResults),
			Results:         region(snap, view.RegionResults),
			Summary:         region(snap, view.RegionSummary),
			Comparison:      region(snap, view.RegionComparison),
			Recommendations: region(snap, view.RegionRecommendations),
		},
	})
	if err != nil {
		return "", fmt.Errorf("render: page: %w", err)
	}
	return out, nil
}

func region(snap view.Snapshot, name view.Region) pageRegion {
	content := snap.Content[name]
	body := content.HTML
	if !content.IsHTML {
		body = html.EscapeString(content.Text)
	}
	return pageRegion{Hidden: !snap.IsVisible(name), Body: body}
}
