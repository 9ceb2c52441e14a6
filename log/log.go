package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog      zerolog.Logger
	diagFile     *os.File
	sequenceFile *os.File
	logMu        sync.Mutex
	logReady     bool
	pid          int
	dir          string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		if !filepath.IsAbs(flagPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, flagPath), nil
		}
		return flagPath, nil
	}

	// Priority 2: MAVEN_LOG_PATH environment variable
	envPath := os.Getenv("MAVEN_LOG_PATH")
	if envPath != "" {
		if !filepath.IsAbs(envPath) {
			wd, err := os.Getwd()
			if err != nil {
				return "", err
			}
			return filepath.Join(wd, envPath), nil
		}
		return envPath, nil
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	sequencePath := filepath.Join(dir, "sequence_log.txt")
	sequenceFile, err = os.OpenFile(sequencePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	level := zerolog.InfoLevel
	if os.Getenv("MAVEN_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	diagLog = zerolog.New(consoleWriter).Level(level).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if sequenceFile != nil {
		sequenceFile.Close()
		sequenceFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...any) {
	if logReady {
		diagLog.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

// Sequence appends a finished sequence to sequence_log.txt.
func Sequence(text string) {
	if !logReady {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	if sequenceFile == nil {
		return
	}
	line := fmt.Sprintf("%s\t[%d]\t%s\n", time.Now().Format("2006-01-02 15:04:05"), pid, text)
	sequenceFile.WriteString(line)
}

func Trigger(combo, action string) {
	if !logReady {
		return
	}
	diagLog.Debug().
		Str("combo", combo).
		Str("action", action).
		Msg("trigger")
}

func Armed(hotkeys int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("hotkeys", hotkeys).
		Msg("monitor_armed")
}

func MonitorUnavailable(err error) {
	if !logReady {
		return
	}
	diagLog.Error().
		Err(err).
		Msg("monitor_unavailable")
}

func ConfigReloaded(path string, hotkeys int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("path", path).
		Int("hotkeys", hotkeys).
		Msg("config_reloaded")
}

func SessionStart(configPath, view string, hotkeys int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("config", configPath).
		Str("view", view).
		Int("hotkeys", hotkeys).
		Msg("session_start")
}

func SessionEnd(triggers int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("triggers", triggers).
		Msg("session_end")
}
