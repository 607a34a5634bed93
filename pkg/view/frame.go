package view

// Frame buffers surface writes made during one synchronous step and applies
// them with Commit. Writes to the same region or control coalesce: only the
// last one reaches the target, so a region shown and hidden again inside a
// frame is never shown on the target.
type Frame struct {
	visible map[Region]bool
	content map[Region]Content
	enabled map[Control]bool
	order   []frameKey
	seen    map[frameKey]struct{}
}

type frameKind int

const (
	frameVisibility frameKind = iota
	frameContent
	frameEnabled
)

type frameKey struct {
	kind    frameKind
	region  Region
	control Control
}

var _ Surface = (*Frame)(nil)

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{
		visible: make(map[Region]bool),
		content: make(map[Region]Content),
		enabled: make(map[Control]bool),
		seen:    make(map[frameKey]struct{}),
	}
}

func (f *Frame) SetVisible(region Region, visible bool) {
	f.track(frameKey{kind: frameVisibility, region: region})
	f.visible[region] = visible
}

func (f *Frame) SetText(region Region, text string) {
	f.track(frameKey{kind: frameContent, region: region})
	f.content[region] = Content{Text: text}
}

func (f *Frame) SetHTML(region Region, html string) {
	f.track(frameKey{kind: frameContent, region: region})
	f.content[region] = Content{HTML: html, IsHTML: true}
}

func (f *Frame) SetEnabled(control Control, enabled bool) {
	f.track(frameKey{kind: frameEnabled, control: control})
	f.enabled[control] = enabled
}

// Len reports how many distinct writes the frame holds.
func (f *Frame) Len() int {
	return len(f.order)
}

// Commit applies the coalesced writes to target in first-write order and
// resets the frame.
func (f *Frame) Commit(target Surface) {
	if target == nil {
		f.reset()
		return
	}
	for _, key := range f.order {
		switch key.kind {
		case frameVisibility:
			target.SetVisible(key.region, f.visible[key.region])
		case frameContent:
			content := f.content[key.region]
			if content.IsHTML {
				target.SetHTML(key.region, content.HTML)
			} else {
				target.SetText(key.region, content.Text)
			}
		case frameEnabled:
			target.SetEnabled(key.control, f.enabled[key.control])
		}
	}
	f.reset()
}

func (f *Frame) track(key frameKey) {
	if _, ok := f.seen[key]; ok {
		return
	}
	f.seen[key] = struct{}{}
	f.order = append(f.order, key)
}

func (f *Frame) reset() {
	f.visible = make(map[Region]bool)
	f.content = make(map[Region]Content)
	f.enabled = make(map[Control]bool)
	f.seen = make(map[frameKey]struct{})
	f.order = nil
}
