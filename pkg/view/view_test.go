package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordedWrite struct {
	Kind   string
	Target string
	Value  any
}

type recorder struct {
	writes []recordedWrite
}

func (r *recorder) SetVisible(region Region, visible bool) {
	r.writes = append(r.writes, recordedWrite{Kind: "visible", Target: string(region), Value: visible})
}

func (r *recorder) SetText(region Region, text string) {
	r.writes = append(r.writes, recordedWrite{Kind: "text", Target: string(region), Value: text})
}

func (r *recorder) SetHTML(region Region, html string) {
	r.writes = append(r.writes, recordedWrite{Kind: "html", Target: string(region), Value: html})
}

func (r *recorder) SetEnabled(control Control, enabled bool) {
	r.writes = append(r.writes, recordedWrite{Kind: "enabled", Target: string(control), Value: enabled})
}

func TestNewDocument_InitialVisibility(t *testing.T) {
	doc := NewDocument()

	if !doc.Visible(RegionNoResults) {
		t.Fatalf("expected no-results placeholder visible")
	}
	for _, region := range []Region{RegionLoading, RegionResults, RegionError} {
		if doc.Visible(region) {
			t.Fatalf("expected %s hidden", region)
		}
	}
	if !doc.Enabled(ControlSubmit) {
		t.Fatalf("expected submit enabled")
	}
}

func TestDocument_SettersOverwrite(t *testing.T) {
	doc := NewDocument()
	doc.SetHTML(RegionComparison, "<div>old</div>")
	doc.SetHTML(RegionComparison, "<div>new</div>")
	doc.SetText(RegionErrorText, "first")
	doc.SetText(RegionErrorText, "second")

	if got := doc.Content(RegionComparison); got.HTML != "<div>new</div>" || !got.IsHTML {
		t.Fatalf("unexpected comparison content: %#v", got)
	}
	if got := doc.Content(RegionErrorText); got.Text != "second" || got.IsHTML {
		t.Fatalf("unexpected error text: %#v", got)
	}
}

func TestDocument_SnapshotIsACopy(t *testing.T) {
	doc := NewDocument()
	doc.SetValue(ControlAge, "30")
	doc.SetEnabled(ControlSubmit, false)

	snap := doc.Snapshot()
	doc.SetValue(ControlAge, "31")
	doc.SetEnabled(ControlSubmit, true)

	if snap.Values[ControlAge] != "30" {
		t.Fatalf("snapshot value changed: %q", snap.Values[ControlAge])
	}
	if !snap.Disabled[ControlSubmit] {
		t.Fatalf("snapshot lost disabled submit")
	}
	if !snap.IsVisible(RegionNoResults) {
		t.Fatalf("snapshot lost visibility")
	}
}

func TestFrame_CoalescesWritesPerTarget(t *testing.T) {
	frame := NewFrame()
	frame.SetVisible(RegionResults, false)
	frame.SetVisible(RegionLoading, true)
	frame.SetEnabled(ControlSubmit, false)
	frame.SetText(RegionErrorText, "Please enter a valid age.")
	frame.SetVisible(RegionLoading, false)
	frame.SetEnabled(ControlSubmit, true)
	frame.SetVisible(RegionError, true)

	if frame.Len() != 5 {
		t.Fatalf("expected 5 distinct writes, got %d", frame.Len())
	}

	rec := &recorder{}
	frame.Commit(rec)

	want := []recordedWrite{
		{Kind: "visible", Target: "results", Value: false},
		{Kind: "visible", Target: "loading", Value: false},
		{Kind: "enabled", Target: "submit", Value: true},
		{Kind: "text", Target: "error-text", Value: "Please enter a valid age."},
		{Kind: "visible", Target: "error-message", Value: true},
	}
	if diff := cmp.Diff(want, rec.writes); diff != "" {
		t.Fatalf("committed writes mismatch (-want +got):\n%s", diff)
	}

	if frame.Len() != 0 {
		t.Fatalf("expected frame reset after commit")
	}
}

func TestFrame_CommitNilTargetResets(t *testing.T) {
	frame := NewFrame()
	frame.SetHTML(RegionRecommendations, "<li>x</li>")
	frame.Commit(nil)
	if frame.Len() != 0 {
		t.Fatalf("expected frame reset")
	}
}
