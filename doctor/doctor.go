package doctor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"maven/clipboard"
	"maven/combo"
	"maven/config"
	"maven/dispatch"
	"maven/hotkey"
)

const pressTimeout = 10 * time.Second

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(configPath string) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("maven doctor - interactive system diagnostics")
	fmt.Println("==============================================")

	allPass := true

	if !checkKeyboard() {
		allPass = false
	}
	table, ok := checkConfig(configPath)
	if !ok {
		allPass = false
	}
	if allPass && !checkHotkeys(table) {
		allPass = false
	}
	if !checkClipboard() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkKeyboard() bool {
	fmt.Println()
	fmt.Println("[1/4] Keyboard access")

	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", msg)
	return true
}

func checkConfig(path string) (*dispatch.Table, bool) {
	fmt.Println()
	fmt.Println("[2/4] Configuration")
	fmt.Printf("  file: %s\n", path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Println("  (not found, using defaults)")
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return nil, false
	}
	table, err := dispatch.Build(cfg.Hotkeys)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return nil, false
	}
	if table.Len() == 0 {
		fmt.Println("  FAIL: no hotkeys bound")
		return nil, false
	}
	fmt.Printf("  PASS: %d hotkeys bound\n", table.Len())
	return table, true
}

func checkHotkeys(table *dispatch.Table) bool {
	fmt.Println()
	fmt.Println("[3/4] Hotkey detection")

	fired := make(chan combo.Combo, 16)
	mon := hotkey.NewMonitor(hotkey.New(), func(c combo.Combo) {
		select {
		case fired <- c:
		default:
		}
	})
	if err := mon.Arm(table.Combos()); err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	defer mon.Stop()

	// Keep key presses from echoing into the terminal.
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if old, err := term.MakeRaw(fd); err == nil {
			defer term.Restore(fd, old)
		}
	}

	pass := true
	for _, c := range table.Combos() {
		action, _ := table.Resolve(c)
		fmt.Printf("  Press %s (%s)...\r\n", c, action)
		select {
		case got := <-fired:
			if got != c {
				fmt.Printf("  FAIL: got %s\r\n", got)
				pass = false
				continue
			}
			fmt.Printf("  PASS: %s detected\r\n", c)
		case <-time.After(pressTimeout):
			fmt.Printf("  FAIL: timeout waiting for %s\r\n", c)
			pass = false
		}
	}
	return pass
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[4/4] Clipboard")

	type cbResult struct {
		msg string
		err error
	}
	ch := make(chan cbResult, 1)
	go func() {
		msg, err := clipboard.Verify()
		ch <- cbResult{msg, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Printf("  FAIL: %v\n", res.err)
			return false
		}
		fmt.Printf("  PASS: %s\n", res.msg)
		return true
	case <-time.After(3 * time.Second):
		fmt.Println("  FAIL: clipboard timed out (clipboard tool hung - compositor not accessible?)")
		return false
	}
}
