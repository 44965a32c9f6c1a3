/*
File : spicy/scope/manager.go
*/
package scope

import "github.com/spicylang/spicy/objects"

// Manager tracks the current frame for the tree-walk evaluator. The
// evaluator pushes a frame per block, swaps the current frame around
// call boundaries, and uses the depth-indexed accessors for references
// the resolver annotated.
type Manager struct {
	global  *Scope
	current *Scope
}

// NewManager creates a manager whose current frame is a fresh global
// frame.
func NewManager() *Manager {
	global := NewScope(nil)
	return &Manager{
		global:  global,
		current: global,
	}
}

// Define binds a name in the current frame.
func (m *Manager) Define(name string, value objects.SpicyObject) {
	m.current.Define(name, value)
}

// DefineGlobal binds a name in the global frame regardless of the
// current frame. Built-ins are installed this way.
func (m *Manager) DefineGlobal(name string, value objects.SpicyObject) {
	m.global.Define(name, value)
}

// Assign overwrites the nearest binding reachable from the current
// frame (ErrUndefined if none).
func (m *Manager) Assign(name string, value objects.SpicyObject) error {
	return m.current.Assign(name, value)
}

// AssignAt overwrites the binding in the frame distance hops up from
// the current frame.
func (m *Manager) AssignAt(distance int, name string, value objects.SpicyObject) error {
	return m.Ancestor(distance).Assign(name, value)
}

// AssignGlobal overwrites a binding in the global frame (ErrUndefined
// if the name was never defined there).
func (m *Manager) AssignGlobal(name string, value objects.SpicyObject) error {
	return m.global.Assign(name, value)
}

// Get reads the nearest binding reachable from the current frame.
func (m *Manager) Get(name string) (objects.SpicyObject, error) {
	return m.current.Get(name)
}

// GetAt reads the binding in the frame distance hops up from the
// current frame. Used for references the resolver annotated.
func (m *Manager) GetAt(distance int, name string) (objects.SpicyObject, error) {
	return m.Ancestor(distance).Get(name)
}

// GetGlobal reads a binding from the global frame.
func (m *Manager) GetGlobal(name string) (objects.SpicyObject, error) {
	return m.global.Get(name)
}

// Ancestor returns the frame distance hops up the parent chain from
// the current frame.
func (m *Manager) Ancestor(distance int) *Scope {
	env := m.current
	for i := 0; i < distance; i++ {
		env = env.Parent
	}
	return env
}

// Current returns the current frame.
func (m *Manager) Current() *Scope {
	return m.current
}

// SetCurrent replaces the current frame; callers save the previous one
// and restore it on every exit path.
func (m *Manager) SetCurrent(env *Scope) {
	m.current = env
}

// CreateNew pushes a fresh child of the current frame and makes it
// current.
func (m *Manager) CreateNew() {
	m.current = NewScope(m.current)
}

// DiscardUntil unwinds the current frame up the parent chain until it
// reaches target (or the global frame), releasing frames whose
// lifetime ended with the call that created them.
func (m *Manager) DiscardUntil(target *Scope) {
	for !m.current.IsGlobal() && m.current != target {
		m.current = m.current.Parent
	}
}
