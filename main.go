package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"maven/beep"
	"maven/config"
	"maven/doctor"
	"maven/hotkey"
	"maven/log"
	"maven/shutdown"
)

var version = "dev"

// guiMode is set by initGUI before run starts.
var guiMode bool

var (
	activeEngine *Engine
	shutdownOnce sync.Once
	crashMu      sync.Mutex
	crashFile    *os.File
)

// initCrashLog routes fatal runtime errors into the default log directory.
// run re-points it once -logpath is known.
func initCrashLog() {
	dir, err := log.ResolveDir("")
	if err != nil {
		return
	}
	setCrashOutput(dir)
}

func setCrashOutput(dir string) {
	crashMu.Lock()
	defer crashMu.Unlock()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "crash_log.txt"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(f, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(f, debug.CrashOptions{})
	if crashFile != nil {
		crashFile.Close()
	}
	crashFile = f
}

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		if activeEngine != nil {
			activeEngine.Stop()
		}
		log.Close()
		guiQuit()
		if tuiProgram != nil {
			tuiProgram.Quit()
		}
		os.Exit(0)
	})
}

func run() {
	configFlag := flag.String("config", "", "config file path (default: $MAVEN_CONFIG or the OS config dir)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	flag.Bool("gui", false, "Run with overlay window and tray icon (requires -tags gui)")
	beepFlag := flag.Bool("beep", false, "Play sound cues for sequence changes, overlay toggles and errors")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	saveDefaultsFlag := flag.Bool("save-defaults", false, "Write the default configuration to the config path and exit")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	if *logPathFlag != "" {
		setCrashOutput(logPath)
	}

	if *versionFlag {
		fmt.Printf("maven %s\n", version)
		os.Exit(0)
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *saveDefaultsFlag {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", cfgPath)
		os.Exit(0)
	}

	if *doctorFlag {
		os.Exit(doctor.Run(cfgPath))
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *testFlag {
		runTestMode(cfgPath, cfg)
		return
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	if *beepFlag {
		beep.Enable()
		go beep.Init()
	}

	var display Display
	view := "headless"
	switch {
	case guiMode:
		display = guiAttach()
		view = "gui"
	case *tuiFlag:
		display = tuiDisplay{}
		view = "tui"
	default:
		display = headlessDisplay{}
	}

	engine := NewEngine(hotkey.New(), display, cfgPath, cfg)
	activeEngine = engine
	log.SessionStart(cfgPath, view, len(cfg.Hotkeys))

	if view == "tui" {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(engine)
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown()
		}()

		<-tuiReady
	}
	if guiMode {
		guiBind(engine)
	}

	if err := engine.Start(); err != nil {
		log.Errorf("engine start: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.Watch(ctx, cfgPath, engine.RequestReload); err != nil {
		log.Warnf("config watch disabled: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		gracefulShutdown()
	}()

	engine.Run(ctx)
}
