// Package sequence holds the overlay's enabled flag and the ordered list of
// triggered display actions.
package sequence

// Reserved action names.
const (
	ToggleAction = "Toggle Overlay"
	ClearAction  = "Clear Sequence"
)

// State is a snapshot of the machine. Items is never shared with the machine.
type State struct {
	Enabled bool
	Items   []string
}

func (s State) Clone() State {
	return State{Enabled: s.Enabled, Items: append([]string(nil), s.Items...)}
}

// Empty reports whether nothing is in the sequence.
func (s State) Empty() bool { return len(s.Items) == 0 }

// Machine is owned by the UI goroutine and is not safe for concurrent use.
type Machine struct {
	state   State
	display map[string]string
	notify  func(State)
	onClear func(cleared []string)
}

// New returns an enabled machine with an empty sequence. display maps
// display-bound action names to their text; notify receives a snapshot
// after every Apply.
func New(display map[string]string, notify func(State)) *Machine {
	m := &Machine{state: State{Enabled: true}, notify: notify}
	m.SetDisplay(display)
	return m
}

// OnClear registers fn to receive the items removed by a clear.
func (m *Machine) OnClear(fn func(cleared []string)) { m.onClear = fn }

// SetDisplay replaces the display-bound action set. The sequence is kept.
func (m *Machine) SetDisplay(display map[string]string) {
	m.display = make(map[string]string, len(display))
	for k, v := range display {
		m.display[k] = v
	}
}

// Apply runs one action through the transition table and returns the
// resulting state.
func (m *Machine) Apply(action string) State {
	_, bound := m.display[action]
	switch {
	case action == ToggleAction:
		m.state.Enabled = !m.state.Enabled
	case !m.state.Enabled:
	case bound:
		m.state.Items = append(m.state.Items, action)
	case action == ClearAction:
		cleared := m.state.Items
		m.state.Items = nil
		if m.onClear != nil && len(cleared) > 0 {
			m.onClear(cleared)
		}
	}
	s := m.state.Clone()
	if m.notify != nil {
		m.notify(s)
	}
	return s
}

// Toggle flips the enabled flag through the same path as the toggle action.
func (m *Machine) Toggle() State { return m.Apply(ToggleAction) }

// State returns a snapshot of the current state.
func (m *Machine) State() State { return m.state.Clone() }
