package view

import (
	"sync"
)

// Content is what a region currently displays. Exactly one of Text or HTML is
// meaningful, depending on which setter wrote it last.
type Content struct {
	Text   string
	HTML   string
	IsHTML bool
}

// Snapshot is a point-in-time copy of a Document.
type Snapshot struct {
	Visible  map[Region]bool
	Content  map[Region]Content
	Values   map[Control]string
	Disabled map[Control]bool
}

// IsVisible reports the visibility of region in the snapshot.
func (s Snapshot) IsVisible(region Region) bool {
	return s.Visible[region]
}

// Document is an in-memory page. It starts the way the markup does: the "no
// results yet" placeholder visible, every other toggled region hidden.
type Document struct {
	mu       sync.RWMutex
	visible  map[Region]bool
	content  map[Region]Content
	values   map[Control]string
	disabled map[Control]bool
}

var (
	_ Surface  = (*Document)(nil)
	_ Controls = (*Document)(nil)
)

// NewDocument returns a Document in its initial page state.
func NewDocument() *Document {
	return &Document{
		visible: map[Region]bool{
			RegionLoading:   false,
			RegionResults:   false,
			RegionNoResults: true,
			RegionError:     false,
		},
		content:  make(map[Region]Content),
		values:   make(map[Control]string),
		disabled: make(map[Control]bool),
	}
}

func (d *Document) SetVisible(region Region, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible[region] = visible
}

func (d *Document) SetText(region Region, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content[region] = Content{Text: text}
}

func (d *Document) SetHTML(region Region, html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.content[region] = Content{HTML: html, IsHTML: true}
}

func (d *Document) SetEnabled(control Control, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if enabled {
		delete(d.disabled, control)
		return
	}
	d.disabled[control] = true
}

// Value implements Controls.
func (d *Document) Value(control Control) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.values[control]
}

// SetValue records user input for a control.
func (d *Document) SetValue(control Control, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.values[control] = value
}

// Visible reports whether region is currently shown.
func (d *Document) Visible(region Region) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.visible[region]
}

// Content returns what region currently holds.
func (d *Document) Content(region Region) Content {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.content[region]
}

// Enabled reports whether control accepts input.
func (d *Document) Enabled(control Control) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.disabled[control]
}

// Snapshot copies the document state.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := Snapshot{
		Visible:  make(map[Region]bool, len(d.visible)),
		Content:  make(map[Region]Content, len(d.content)),
		Values:   make(map[Control]string, len(d.values)),
		Disabled: make(map[Control]bool, len(d.disabled)),
	}
	for k, v := range d.visible {
		snap.Visible[k] = v
	}
	for k, v := range d.content {
		snap.Content[k] = v
	}
	for k, v := range d.values {
		snap.Values[k] = v
	}
	for k, v := range d.disabled {
		snap.Disabled[k] = v
	}
	return snap
}
