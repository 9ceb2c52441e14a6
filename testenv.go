package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"maven/combo"
	"maven/config"
	"maven/hotkey"
	"maven/log"
	"maven/overlay"
)

const waitFramesTimeout = 5 * time.Second

// testDisplay prints every frame and status change to out, one line each.
type testDisplay struct {
	overlay.FixedMeasurer

	mu      sync.Mutex
	out     io.Writer
	frames  int
	changed chan struct{}
}

func newTestDisplay(out io.Writer) *testDisplay {
	return &testDisplay{out: out, changed: make(chan struct{}, 1)}
}

func (d *testDisplay) Show(f overlay.Frame) {
	d.emit(fmt.Sprintf("FRAME %d %d %d %d %s", f.Left, f.Top, f.Width, f.Height, f.Text()))
}

func (d *testDisplay) Hide() { d.emit("HIDDEN") }

func (d *testDisplay) ScreenWidth() int { return tuiScreenWidth }

func (d *testDisplay) Status(s Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "STATUS armed=%t enabled=%t err=%q\n", s.Armed, s.Enabled, s.Err)
}

func (d *testDisplay) emit(line string) {
	d.mu.Lock()
	fmt.Fprintln(d.out, line)
	d.frames++
	d.mu.Unlock()
	select {
	case d.changed <- struct{}{}:
	default:
	}
}

func (d *testDisplay) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// waitFrames blocks until at least n frames (shows and hides) were printed.
func (d *testDisplay) waitFrames(n int) bool {
	deadline := time.After(waitFramesTimeout)
	for d.count() < n {
		select {
		case <-d.changed:
		case <-deadline:
			return false
		}
	}
	return true
}

// runTestMode drives the engine from stdin commands over a fake keyboard:
//
//	DOWN key | UP key | PRESS combo | TOGGLE | COPY | RELOAD | LOST
//	SLEEP ms | WAIT_FRAMES n | QUIT
func runTestMode(cfgPath string, cfg config.Config) {
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	fk := hotkey.NewFake()
	disp := newTestDisplay(os.Stdout)
	engine := NewEngine(fk, disp, cfgPath, cfg)
	log.SessionStart(cfgPath, "test", len(cfg.Hotkeys))
	if err := engine.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		engine.Run(ctx)
		close(done)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "":
		case "DOWN":
			fk.SimDown(arg)
		case "UP":
			fk.SimUp(arg)
		case "PRESS":
			c, err := combo.Parse(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad combo %q: %v\n", arg, err)
				continue
			}
			fk.SimChord(c)
			fk.ReleaseChord(c)
		case "TOGGLE":
			engine.Toggle()
		case "COPY":
			engine.Copy()
		case "RELOAD":
			engine.RequestReload()
		case "LOST":
			fk.SimLost(fmt.Errorf("simulated device loss"))
		case "SLEEP":
			if ms, err := strconv.Atoi(arg); err == nil {
				time.Sleep(time.Duration(ms) * time.Millisecond)
			}
		case "WAIT_FRAMES":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad frame count %q\n", arg)
				continue
			}
			if !disp.waitFrames(n) {
				fmt.Fprintf(os.Stderr, "timed out waiting for %d frames\n", n)
			}
		case "QUIT":
			cancel()
			<-done
			engine.Stop()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		}
	}
	cancel()
	<-done
	engine.Stop()
}
