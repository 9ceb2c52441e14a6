// Package clipboard copies the rendered sequence to the system clipboard.
package clipboard

import (
	"fmt"

	cb "github.com/atotto/clipboard"
)

func Copy(text string) error {
	if cb.Unsupported {
		return fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	return cb.WriteAll(text)
}

// Read returns the current clipboard text.
func Read() (string, error) {
	return cb.ReadAll()
}

// Verify writes a marker string and reads it back, restoring the previous
// contents.
func Verify() (string, error) {
	if cb.Unsupported {
		return "", fmt.Errorf("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	prev, _ := Read()
	const marker = "maven clipboard check"
	if err := Copy(marker); err != nil {
		return "", err
	}
	got, err := Read()
	if prev != "" {
		Copy(prev)
	}
	if err != nil {
		return "", err
	}
	if got != marker {
		return "", fmt.Errorf("clipboard read back %q", got)
	}
	return "clipboard read/write OK", nil
}
