//go:build linux

package hotkey

import "github.com/holoplot/go-evdev"

// keyNames maps evdev key codes to the names understood by package combo.
var keyNames = map[evdev.EvCode]string{
	evdev.KEY_A:          "a",
	evdev.KEY_B:          "b",
	evdev.KEY_C:          "c",
	evdev.KEY_D:          "d",
	evdev.KEY_E:          "e",
	evdev.KEY_F:          "f",
	evdev.KEY_G:          "g",
	evdev.KEY_H:          "h",
	evdev.KEY_I:          "i",
	evdev.KEY_J:          "j",
	evdev.KEY_K:          "k",
	evdev.KEY_L:          "l",
	evdev.KEY_M:          "m",
	evdev.KEY_N:          "n",
	evdev.KEY_O:          "o",
	evdev.KEY_P:          "p",
	evdev.KEY_Q:          "q",
	evdev.KEY_R:          "r",
	evdev.KEY_S:          "s",
	evdev.KEY_T:          "t",
	evdev.KEY_U:          "u",
	evdev.KEY_V:          "v",
	evdev.KEY_W:          "w",
	evdev.KEY_X:          "x",
	evdev.KEY_Y:          "y",
	evdev.KEY_Z:          "z",
	evdev.KEY_0:          "0",
	evdev.KEY_1:          "1",
	evdev.KEY_2:          "2",
	evdev.KEY_3:          "3",
	evdev.KEY_4:          "4",
	evdev.KEY_5:          "5",
	evdev.KEY_6:          "6",
	evdev.KEY_7:          "7",
	evdev.KEY_8:          "8",
	evdev.KEY_9:          "9",
	evdev.KEY_F1:         "f1",
	evdev.KEY_F2:         "f2",
	evdev.KEY_F3:         "f3",
	evdev.KEY_F4:         "f4",
	evdev.KEY_F5:         "f5",
	evdev.KEY_F6:         "f6",
	evdev.KEY_F7:         "f7",
	evdev.KEY_F8:         "f8",
	evdev.KEY_F9:         "f9",
	evdev.KEY_F10:        "f10",
	evdev.KEY_F11:        "f11",
	evdev.KEY_F12:        "f12",
	evdev.KEY_F13:        "f13",
	evdev.KEY_F14:        "f14",
	evdev.KEY_F15:        "f15",
	evdev.KEY_F16:        "f16",
	evdev.KEY_F17:        "f17",
	evdev.KEY_F18:        "f18",
	evdev.KEY_F19:        "f19",
	evdev.KEY_F20:        "f20",
	evdev.KEY_F21:        "f21",
	evdev.KEY_F22:        "f22",
	evdev.KEY_F23:        "f23",
	evdev.KEY_F24:        "f24",
	evdev.KEY_KP0:        "kp0",
	evdev.KEY_KP1:        "kp1",
	evdev.KEY_KP2:        "kp2",
	evdev.KEY_KP3:        "kp3",
	evdev.KEY_KP4:        "kp4",
	evdev.KEY_KP5:        "kp5",
	evdev.KEY_KP6:        "kp6",
	evdev.KEY_KP7:        "kp7",
	evdev.KEY_KP8:        "kp8",
	evdev.KEY_KP9:        "kp9",
	evdev.KEY_ESC:        "esc",
	evdev.KEY_MINUS:      "minus",
	evdev.KEY_EQUAL:      "equal",
	evdev.KEY_BACKSPACE:  "backspace",
	evdev.KEY_TAB:        "tab",
	evdev.KEY_LEFTBRACE:  "leftbrace",
	evdev.KEY_RIGHTBRACE: "rightbrace",
	evdev.KEY_ENTER:      "enter",
	evdev.KEY_SEMICOLON:  "semicolon",
	evdev.KEY_APOSTROPHE: "apostrophe",
	evdev.KEY_GRAVE:      "grave",
	evdev.KEY_BACKSLASH:  "backslash",
	evdev.KEY_COMMA:      "comma",
	evdev.KEY_DOT:        "dot",
	evdev.KEY_SLASH:      "slash",
	evdev.KEY_SPACE:      "space",
	evdev.KEY_CAPSLOCK:   "capslock",
	evdev.KEY_SCROLLLOCK: "scrolllock",
	evdev.KEY_KPASTERISK: "kpasterisk",
	evdev.KEY_KPMINUS:    "kpminus",
	evdev.KEY_KPPLUS:     "kpplus",
	evdev.KEY_KPDOT:      "kpdot",
	evdev.KEY_KPENTER:    "kpenter",
	evdev.KEY_KPSLASH:    "kpslash",
	evdev.KEY_HOME:       "home",
	evdev.KEY_END:        "end",
	evdev.KEY_PAGEUP:     "pageup",
	evdev.KEY_PAGEDOWN:   "pagedown",
	evdev.KEY_UP:         "up",
	evdev.KEY_DOWN:       "down",
	evdev.KEY_LEFT:       "left",
	evdev.KEY_RIGHT:      "right",
	evdev.KEY_INSERT:     "insert",
	evdev.KEY_DELETE:     "delete",
	evdev.KEY_PAUSE:      "pause",
	evdev.KEY_SYSRQ:      "print",
	evdev.KEY_LEFTCTRL:   "leftctrl",
	evdev.KEY_RIGHTCTRL:  "rightctrl",
	evdev.KEY_LEFTSHIFT:  "leftshift",
	evdev.KEY_RIGHTSHIFT: "rightshift",
	evdev.KEY_LEFTALT:    "leftalt",
	evdev.KEY_RIGHTALT:   "rightalt",
	evdev.KEY_LEFTMETA:   "leftmeta",
	evdev.KEY_RIGHTMETA:  "rightmeta",
}
