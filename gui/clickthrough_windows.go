//go:build gui && windows

package gui

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	gwlExStyle = ^uintptr(19) // GWL_EXSTYLE (-20)

	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020
	wsExToolWindow  = 0x00000080
	wsExNoActivate  = 0x08000000
)

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	procFindWindow    = user32.NewProc("FindWindowW")
	procGetWindowLong = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLong = user32.NewProc("SetWindowLongPtrW")
)

// clickThrough lets mouse input pass through the window titled title and
// keeps it out of the taskbar and the focus order.
func clickThrough(title string) error {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	hwnd, _, _ := procFindWindow.Call(0, uintptr(unsafe.Pointer(name)))
	if hwnd == 0 {
		return fmt.Errorf("window %q not found", title)
	}
	style, _, _ := procGetWindowLong.Call(hwnd, gwlExStyle)
	style |= wsExLayered | wsExTransparent | wsExToolWindow | wsExNoActivate
	if ret, _, err := procSetWindowLong.Call(hwnd, gwlExStyle, style); ret == 0 && err != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetWindowLongPtrW: %w", err)
	}
	return nil
}
