// Package foodlist maintains the editable, ordered set of food-item entries.
// The set never drops below one entry: removal is refused while a single entry
// remains and that entry's remove control stays disabled.
//
// Remove controls are bound per entry identity. Refresh reconciles bindings
// with the current entries instead of rebuilding them, so running it any
// number of times leaves exactly one handler per control.
package foodlist

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrUnknownEntry is returned when an EntryID does not name a live entry.
var ErrUnknownEntry = errors.New("foodlist: unknown entry")

// EntryID identifies an entry for its whole lifetime. IDs are never reused.
type EntryID uint64

// Entry is a read-only view of one food-item slot.
type Entry struct {
	ID    EntryID
	Value string
}

// RemoveControl is the derived state of an entry's remove control.
type RemoveControl struct {
	Entry   EntryID
	Enabled bool
}

type binding struct {
	handler func() bool
	enabled bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithInitialEntries seeds the manager with n empty entries (minimum one).
func WithInitialEntries(n int) Option {
	return func(m *Manager) {
		m.initial = n
	}
}

// WithLogger attaches a logger for structural changes.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager owns the food-item entries and their remove-control bindings.
type Manager struct {
	mu       sync.RWMutex
	entries  []Entry
	bindings map[EntryID]*binding
	nextID   EntryID
	initial  int
	logger   *zap.Logger
}

// New constructs a Manager holding at least one empty entry.
func New(options ...Option) *Manager {
	m := &Manager{
		bindings: make(map[EntryID]*binding),
		initial:  1,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.initial < 1 {
		m.initial = 1
	}

	m.mu.Lock()
	for i := 0; i < m.initial; i++ {
		m.appendLocked()
	}
	m.refreshLocked()
	m.mu.Unlock()
	return m
}

// Add appends a new empty entry and refreshes the remove controls.
func (m *Manager) Add() EntryID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.appendLocked()
	m.refreshLocked()
	m.logger.Debug("food item added", zap.Uint64("entry", uint64(id)), zap.Int("count", len(m.entries)))
	return id
}

// Remove deletes the entry when more than one entry exists. It reports
// whether anything was removed.
func (m *Manager) Remove(id EntryID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) <= 1 {
		m.logger.Debug("food item removal refused", zap.Uint64("entry", uint64(id)))
		return false
	}
	idx := m.indexLocked(id)
	if idx < 0 {
		return false
	}
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	m.refreshLocked()
	m.logger.Debug("food item removed", zap.Uint64("entry", uint64(id)), zap.Int("count", len(m.entries)))
	return true
}

// Refresh re-derives every remove control's enabled state and reconciles the
// activation bindings with the live entries.
func (m *Manager) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshLocked()
}

// Activate triggers the remove control of id, the way a click would. Disabled
// or unknown controls do nothing.
func (m *Manager) Activate(id EntryID) bool {
	m.mu.RLock()
	b, ok := m.bindings[id]
	var handler func() bool
	if ok && b.enabled {
		handler = b.handler
	}
	m.mu.RUnlock()

	if handler == nil {
		return false
	}
	return handler()
}

// SetValue replaces the text of an entry.
func (m *Manager) SetValue(id EntryID, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownEntry, id)
	}
	m.entries[idx].Value = value
	return nil
}

// Values returns the raw entry texts in order.
func (m *Manager) Values() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.entries))
	for i, entry := range m.entries {
		out[i] = entry.Value
	}
	return out
}

// Entries returns a copy of the entries in order.
func (m *Manager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Entry(nil), m.entries...)
}

// Len reports the number of entries.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Controls returns the remove-control state for every entry in order.
func (m *Manager) Controls() []RemoveControl {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]RemoveControl, 0, len(m.entries))
	for _, entry := range m.entries {
		enabled := false
		if b, ok := m.bindings[entry.ID]; ok {
			enabled = b.enabled
		}
		out = append(out, RemoveControl{Entry: entry.ID, Enabled: enabled})
	}
	return out
}

// HandlerCount reports how many activation handlers are bound to the remove
// control of id.
func (m *Manager) HandlerCount(id EntryID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if b, ok := m.bindings[id]; ok && b.handler != nil {
		return 1
	}
	return 0
}

func (m *Manager) appendLocked() EntryID {
	m.nextID++
	id := m.nextID
	m.entries = append(m.entries, Entry{ID: id})
	return id
}

func (m *Manager) indexLocked(id EntryID) int {
	for i, entry := range m.entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) refreshLocked() {
	enabled := len(m.entries) > 1
	live := make(map[EntryID]struct{}, len(m.entries))

	for _, entry := range m.entries {
		live[entry.ID] = struct{}{}
		b, ok := m.bindings[entry.ID]
		if !ok {
			id := entry.ID
			b = &binding{handler: func() bool { return m.Remove(id) }}
			m.bindings[id] = b
		}
		b.enabled = enabled
	}

	for id := range m.bindings {
		if _, ok := live[id]; !ok {
			delete(m.bindings, id)
		}
	}
}
