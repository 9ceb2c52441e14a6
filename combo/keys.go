package combo

import "fmt"

// modifierKeys maps every spelling of a modifier key (including left/right
// variants reported by the OS) to its modifier bit.
var modifierKeys = map[string]Modifier{
	"ctrl":       ModCtrl,
	"control":    ModCtrl,
	"lctrl":      ModCtrl,
	"rctrl":      ModCtrl,
	"leftctrl":   ModCtrl,
	"rightctrl":  ModCtrl,
	"shift":      ModShift,
	"lshift":     ModShift,
	"rshift":     ModShift,
	"leftshift":  ModShift,
	"rightshift": ModShift,
	"alt":        ModAlt,
	"lalt":       ModAlt,
	"ralt":       ModAlt,
	"leftalt":    ModAlt,
	"rightalt":   ModAlt,
	"altgr":      ModAlt,
	"option":     ModAlt,
	"meta":       ModMeta,
	"lmeta":      ModMeta,
	"rmeta":      ModMeta,
	"leftmeta":   ModMeta,
	"rightmeta":  ModMeta,
	"win":        ModMeta,
	"super":      ModMeta,
	"cmd":        ModMeta,
}

var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
	"del":    "delete",
	"ins":    "insert",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
	"`":      "grave",
	"-":      "minus",
	"=":      "equal",
	",":      "comma",
	".":      "dot",
	"/":      "slash",
	";":      "semicolon",
	"'":      "apostrophe",
	"[":      "leftbrace",
	"]":      "rightbrace",
	"\\":     "backslash",
}

var keyNames = map[string]struct{}{}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyNames[string(c)] = struct{}{}
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = struct{}{}
		keyNames["kp"+string(c)] = struct{}{}
	}
	for i := 1; i <= 24; i++ {
		keyNames[fmt.Sprintf("f%d", i)] = struct{}{}
	}
	for _, k := range []string{
		"space", "enter", "esc", "tab", "backspace", "delete", "insert",
		"home", "end", "pageup", "pagedown", "up", "down", "left", "right",
		"capslock", "print", "pause", "scrolllock",
		"minus", "equal", "comma", "dot", "slash", "semicolon", "apostrophe",
		"grave", "leftbrace", "rightbrace", "backslash",
		"kpplus", "kpminus", "kpasterisk", "kpslash", "kpdot", "kpenter",
	} {
		keyNames[k] = struct{}{}
	}
}
