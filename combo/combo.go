// Package combo normalizes modifier+key chords into canonical, order-independent
// combo strings such as "ctrl+shift+f1".
package combo

import (
	"errors"
	"fmt"
	"strings"
)

// Modifier is a bitset of the modifier keys held with a key.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModMeta
)

// canonical order of modifier tokens in a combo string
var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModAlt, "alt"},
	{ModCtrl, "ctrl"},
	{ModShift, "shift"},
}

// ErrInvalidKey is returned for key names the parser cannot normalize.
var ErrInvalidKey = errors.New("invalid key")

// Combo is one modifier+key chord. The zero value is not a valid combo;
// construct with Normalize or Parse.
type Combo struct {
	mods Modifier
	key  string
}

// Mods returns the modifier set (never includes ModMeta).
func (c Combo) Mods() Modifier { return c.mods }

// Key returns the non-modifier key token.
func (c Combo) Key() string { return c.key }

// IsZero reports whether c was never set.
func (c Combo) IsZero() bool { return c.key == "" }

// String returns the canonical combo key, e.g. "alt+ctrl+f1".
func (c Combo) String() string {
	if c.key == "" {
		return ""
	}
	var b strings.Builder
	for _, m := range modifierOrder {
		if c.mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(c.key)
	return b.String()
}

// Keys returns the logical keys that make up the chord: modifiers in
// canonical order followed by the key.
func (c Combo) Keys() []string {
	keys := make([]string, 0, 4)
	for _, m := range modifierOrder {
		if c.mods&m.mod != 0 {
			keys = append(keys, m.name)
		}
	}
	return append(keys, c.key)
}

// Normalize builds the combo for a key reported by the OS together with the
// modifiers active at that moment. Meta is dropped. Modifier keys themselves
// and unknown keys return ErrInvalidKey.
func Normalize(key string, mods Modifier) (Combo, error) {
	name, ok := canonicalKey(key)
	if !ok {
		return Combo{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return Combo{mods: mods &^ ModMeta, key: name}, nil
}

// Parse parses a configured combo such as "Ctrl+Shift+F1". Token order and
// case do not matter.
func Parse(spec string) (Combo, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Combo{}, fmt.Errorf("hotkey spec is empty")
	}

	var (
		mods Modifier
		key  string
	)
	for _, token := range strings.Split(raw, "+") {
		name := strings.ToLower(strings.TrimSpace(token))
		if name == "" {
			return Combo{}, fmt.Errorf("empty token in hotkey %q", raw)
		}
		if mod, ok := modifierKeys[name]; ok {
			if mod == ModMeta {
				return Combo{}, fmt.Errorf("modifier %q is not supported in hotkey %q", token, raw)
			}
			mods |= mod
			continue
		}
		k, ok := canonicalKey(name)
		if !ok {
			return Combo{}, fmt.Errorf("%w: unknown key %q in hotkey %q", ErrInvalidKey, token, raw)
		}
		if key != "" && key != k {
			return Combo{}, fmt.Errorf("hotkey %q has more than one key", raw)
		}
		key = k
	}
	if key == "" {
		return Combo{}, fmt.Errorf("hotkey %q has no key", raw)
	}
	return Combo{mods: mods, key: key}, nil
}

// MustParse is Parse for package-level tables and tests.
func MustParse(spec string) Combo {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// IsModifierKey reports whether key names a modifier (either side).
func IsModifierKey(key string) bool {
	_, ok := modifierKeys[strings.ToLower(key)]
	return ok
}

// ModifierOf returns the modifier bit for a modifier key name.
func ModifierOf(key string) (Modifier, bool) {
	m, ok := modifierKeys[strings.ToLower(key)]
	return m, ok
}

// Known reports whether key is a key the parser understands, modifiers included.
func Known(key string) bool {
	if IsModifierKey(key) {
		return true
	}
	_, ok := canonicalKey(key)
	return ok
}

// LogicalKey folds a key name to the token used in chords: "rctrl" -> "ctrl",
// "Return" -> "enter". Meta keys fold to "meta".
func LogicalKey(key string) (string, bool) {
	if m, ok := ModifierOf(key); ok {
		switch m {
		case ModCtrl:
			return "ctrl", true
		case ModShift:
			return "shift", true
		case ModAlt:
			return "alt", true
		default:
			return "meta", true
		}
	}
	return canonicalKey(key)
}

func canonicalKey(key string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(key))
	if alias, ok := keyAliases[name]; ok {
		name = alias
	}
	if _, ok := keyNames[name]; !ok {
		return "", false
	}
	return name, true
}
