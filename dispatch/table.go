// Package dispatch maps triggered combos to action names and hands them from
// the key listener goroutine to the UI goroutine in trigger order.
package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"maven/combo"
)

// AmbiguousBindingError reports actions configured onto the same combo.
type AmbiguousBindingError struct {
	Combo   combo.Combo
	Actions []string
}

func (e *AmbiguousBindingError) Error() string {
	return fmt.Sprintf("ambiguous binding %s: %s", e.Combo, strings.Join(e.Actions, ", "))
}

// Table is an immutable combo -> action mapping.
type Table struct {
	actions map[combo.Combo]string
	combos  []combo.Combo
}

// Build parses hotkeys (action name -> combo spec). Empty specs leave the
// action unbound.
func Build(hotkeys map[string]string) (*Table, error) {
	names := make([]string, 0, len(hotkeys))
	for name := range hotkeys {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &Table{actions: make(map[combo.Combo]string, len(hotkeys))}
	for _, name := range names {
		spec := strings.TrimSpace(hotkeys[name])
		if spec == "" {
			continue
		}
		c, err := combo.Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("hotkey for %q: %w", name, err)
		}
		if prev, ok := t.actions[c]; ok {
			return nil, &AmbiguousBindingError{Combo: c, Actions: []string{prev, name}}
		}
		t.actions[c] = name
		t.combos = append(t.combos, c)
	}
	sort.Slice(t.combos, func(i, j int) bool { return t.combos[i].String() < t.combos[j].String() })
	return t, nil
}

// Resolve returns the action bound to c.
func (t *Table) Resolve(c combo.Combo) (string, bool) {
	name, ok := t.actions[c]
	return name, ok
}

// Combos returns every bound combo in canonical order.
func (t *Table) Combos() []combo.Combo {
	return append([]combo.Combo(nil), t.combos...)
}

// Len returns the number of bindings.
func (t *Table) Len() int { return len(t.combos) }

// Bindings returns action -> canonical combo for status display.
func (t *Table) Bindings() map[string]string {
	out := make(map[string]string, len(t.actions))
	for c, name := range t.actions {
		out[name] = c.String()
	}
	return out
}
