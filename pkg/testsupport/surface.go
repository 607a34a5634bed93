// Package testsupport holds fakes and helpers shared by package tests.
package testsupport

import (
	"sync"

	"github.com/goliatone/go-nutriform/pkg/view"
)

// Write kinds recorded by RecordingSurface.
const (
	WriteVisible = "visible"
	WriteText    = "text"
	WriteHTML    = "html"
	WriteEnabled = "enabled"
)

// Write is one call made against a surface.
type Write struct {
	Kind   string
	Target string
	Value  any
}

// RecordingSurface is a view.Document that also records every write in
// order.
type RecordingSurface struct {
	*view.Document

	mu     sync.Mutex
	writes []Write
}

// NewRecordingSurface returns a recorder over a fresh document.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{Document: view.NewDocument()}
}

func (s *RecordingSurface) SetVisible(region view.Region, visible bool) {
	s.record(WriteVisible, string(region), visible)
	s.Document.SetVisible(region, visible)
}

func (s *RecordingSurface) SetText(region view.Region, text string) {
	s.record(WriteText, string(region), text)
	s.Document.SetText(region, text)
}

func (s *RecordingSurface) SetHTML(region view.Region, html string) {
	s.record(WriteHTML, string(region), html)
	s.Document.SetHTML(region, html)
}

func (s *RecordingSurface) SetEnabled(control view.Control, enabled bool) {
	s.record(WriteEnabled, string(control), enabled)
	s.Document.SetEnabled(control, enabled)
}

// Writes returns a copy of the recorded writes.
func (s *RecordingSurface) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Write(nil), s.writes...)
}

// EverShown reports whether region was ever made visible.
func (s *RecordingSurface) EverShown(region view.Region) bool {
	for _, w := range s.Writes() {
		if w.Kind == WriteVisible && w.Target == string(region) && w.Value == true {
			return true
		}
	}
	return false
}

// Forget clears the recorded writes, keeping the document state.
func (s *RecordingSurface) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = nil
}

func (s *RecordingSurface) record(kind, target string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, Write{Kind: kind, Target: target, Value: value})
}
