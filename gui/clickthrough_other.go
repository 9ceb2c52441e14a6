//go:build gui && !windows

package gui

// clickThrough is a no-op: GLFW 3.3 exposes no mouse passthrough and the
// splash window already skips the taskbar on these platforms.
func clickThrough(string) error { return nil }
