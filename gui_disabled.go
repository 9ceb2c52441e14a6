//go:build !gui

package main

// Stubs for non-GUI builds (these are never used since guiMode is false)
func guiAttach() Display { return headlessDisplay{} }
func guiBind(*Engine)    {}
func guiQuit()           {}

func initGUI() {
	panic("maven: built without GUI support (rebuild with -tags gui)")
}
