package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wrqqqr/todoList/internal/utils"
)

const (
	// CrashLogDir is the crash log directory relative to the data directory.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs kept on disk.
	MaxCrashLogs = 10

	crashPrefix = "crash_"
	crashSuffix = ".log"

	maxLastInput = 500
)

// crashContext is what the last moments before a panic looked like.
type crashContext struct {
	mu        sync.RWMutex
	basePath  string
	version   string
	command   string
	lastInput string
}

var crashCtx = &crashContext{}

// SetBasePath sets the directory crash logs are written under.
func SetBasePath(path string) {
	crashCtx.mu.Lock()
	defer crashCtx.mu.Unlock()
	crashCtx.basePath = path
}

// SetVersion records the application version.
func SetVersion(version string) {
	crashCtx.mu.Lock()
	defer crashCtx.mu.Unlock()
	crashCtx.version = version
}

// SetCommand records the command line being executed.
func SetCommand(cmd string) {
	crashCtx.mu.Lock()
	defer crashCtx.mu.Unlock()
	crashCtx.command = cmd
}

// SetLastInput records the most recent user input (arguments or a board keystroke).
func SetLastInput(input string) {
	crashCtx.mu.Lock()
	defer crashCtx.mu.Unlock()
	crashCtx.lastInput = utils.Truncate(strings.TrimSpace(input), maxLastInput)
}

// CrashLog is a single crash report.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	LastInput  string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic recovers a panic, writes a crash log and exits with status 1.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	crash := newCrashLog(r)
	path, err := writeCrashLog(crash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] could not write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] panic: %v\n%s\n", r, crash.StackTrace)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\ntodolist crashed: %v\n", r)
	fmt.Fprintf(os.Stderr, "Your tasks on disk are untouched. Crash log: %s\n", path)
	os.Exit(1)
}

func newCrashLog(panicValue any) CrashLog {
	crashCtx.mu.RLock()
	defer crashCtx.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    crashCtx.version,
		Command:    crashCtx.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  crashCtx.lastInput,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

// writeCrashLog prunes old logs and writes crash, returning its path.
func writeCrashLog(crash CrashLog) (string, error) {
	dir := crashLogDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	// Leave room for the log about to be written.
	if err := pruneCrashLogs(dir, MaxCrashLogs-1); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] failed to prune crash logs: %v\n", err)
	}

	path := crashLogPath(crash.Timestamp)
	if err := os.WriteFile(path, []byte(formatCrashLog(crash)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashLogDir() string {
	crashCtx.mu.RLock()
	basePath := crashCtx.basePath
	crashCtx.mu.RUnlock()

	if basePath == "" {
		basePath = ".todolist"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func crashLogPath(t time.Time) string {
	return filepath.Join(crashLogDir(), crashPrefix+t.Format("20060102_150405")+crashSuffix)
}

func formatCrashLog(crash CrashLog) string {
	rule := strings.Repeat("-", 72)
	var sb strings.Builder

	fmt.Fprintf(&sb, "todolist crash report\n%s\n", rule)
	fmt.Fprintf(&sb, "time:     %s\n", crash.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "version:  %s\n", crash.Version)
	fmt.Fprintf(&sb, "command:  %s\n", crash.Command)
	fmt.Fprintf(&sb, "runtime:  %s %s/%s\n", crash.GoVersion, crash.OS, crash.Arch)
	if crash.LastInput != "" {
		fmt.Fprintf(&sb, "input:    %s\n", crash.LastInput)
	}
	fmt.Fprintf(&sb, "%s\npanic: %s\n%s\n%s", rule, crash.PanicValue, rule, crash.StackTrace)
	return sb.String()
}

// pruneCrashLogs removes the oldest crash logs until at most keep remain.
func pruneCrashLogs(dir string, keep int) error {
	logs, err := listCrashLogNames(dir)
	if err != nil || len(logs) <= keep {
		return err
	}

	for _, name := range logs[:len(logs)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", name, err)
		}
	}
	return nil
}

// listCrashLogNames returns crash log file names, oldest first.
func listCrashLogNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), crashPrefix) && strings.HasSuffix(e.Name(), crashSuffix) {
			names = append(names, e.Name())
		}
	}
	// Timestamped names sort chronologically.
	slices.Sort(names)
	return names, nil
}

// ListCrashLogs returns the paths of all crash logs, oldest first.
func ListCrashLogs() ([]string, error) {
	dir := crashLogDir()
	names, err := listCrashLogNames(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}
