package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCrash_SetContext(t *testing.T) {
	crashCtx = &crashContext{}

	SetBasePath("/tmp/test-todolist")
	SetVersion("1.0.0-test")
	SetCommand("todolist move abc --to completed")
	SetLastInput("  key: m  ")

	crashCtx.mu.RLock()
	defer crashCtx.mu.RUnlock()

	if crashCtx.basePath != "/tmp/test-todolist" {
		t.Errorf("basePath = %q", crashCtx.basePath)
	}
	if crashCtx.version != "1.0.0-test" {
		t.Errorf("version = %q", crashCtx.version)
	}
	if crashCtx.command != "todolist move abc --to completed" {
		t.Errorf("command = %q", crashCtx.command)
	}
	if crashCtx.lastInput != "key: m" {
		t.Errorf("lastInput = %q, want trimmed", crashCtx.lastInput)
	}
}

func TestCrash_LastInputTruncation(t *testing.T) {
	crashCtx = &crashContext{}
	SetLastInput(strings.Repeat("a", 800))

	crashCtx.mu.RLock()
	defer crashCtx.mu.RUnlock()
	if len(crashCtx.lastInput) != maxLastInput {
		t.Errorf("expected truncation to %d, got length %d", maxLastInput, len(crashCtx.lastInput))
	}
	if !strings.HasSuffix(crashCtx.lastInput, "...") {
		t.Error("expected truncation marker")
	}
}

func TestCrash_NewCrashLog(t *testing.T) {
	crashCtx = &crashContext{version: "1.0.0", command: "board", lastInput: "x"}

	crash := newCrashLog("index out of range")

	if crash.PanicValue != "index out of range" {
		t.Errorf("PanicValue = %q", crash.PanicValue)
	}
	if crash.Version != "1.0.0" || crash.Command != "board" || crash.LastInput != "x" {
		t.Errorf("context not captured: %+v", crash)
	}
	if crash.StackTrace == "" || crash.GoVersion == "" {
		t.Error("expected stack trace and go version")
	}
}

func TestCrash_Format(t *testing.T) {
	out := formatCrashLog(CrashLog{
		Timestamp:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Version:    "1.0.0",
		Command:    "add",
		PanicValue: "boom",
		StackTrace: "goroutine 1 [running]:",
		LastInput:  "buy milk",
		GoVersion:  "go1.24.6",
		OS:         "linux",
		Arch:       "amd64",
	})

	for _, want := range []string{
		"todolist crash report",
		"time:     2025-01-01T12:00:00Z",
		"command:  add",
		"runtime:  go1.24.6 linux/amd64",
		"input:    buy milk",
		"panic: boom",
		"goroutine 1 [running]:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted log missing %q", want)
		}
	}

	if strings.Contains(formatCrashLog(CrashLog{}), "input:") {
		t.Error("empty input should be omitted")
	}
}

func TestCrash_WriteAndList(t *testing.T) {
	base := filepath.Join(t.TempDir(), ".todolist")
	crashCtx = &crashContext{basePath: base}

	path, err := writeCrashLog(CrashLog{Timestamp: time.Now(), PanicValue: "test panic"})
	if err != nil {
		t.Fatalf("writeCrashLog: %v", err)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs: %v", err)
	}
	if len(logs) != 1 || logs[0] != path {
		t.Fatalf("logs = %v, want [%s]", logs, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(content), "test panic") {
		t.Error("crash log should contain the panic value")
	}
}

func TestCrash_KeepsAtMostMax(t *testing.T) {
	base := t.TempDir()
	crashCtx = &crashContext{basePath: base}
	dir := filepath.Join(base, CrashLogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	for i := range MaxCrashLogs + 5 {
		name := fmt.Sprintf("crash_20240101_1200%02d.log", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Unrelated files survive pruning.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := writeCrashLog(CrashLog{Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}); err != nil {
		t.Fatalf("writeCrashLog: %v", err)
	}

	logs, _ := ListCrashLogs()
	if len(logs) != MaxCrashLogs {
		t.Fatalf("got %d crash logs, want %d", len(logs), MaxCrashLogs)
	}
	if filepath.Base(logs[0]) != "crash_20240101_120006.log" {
		t.Errorf("oldest surviving log = %s", filepath.Base(logs[0]))
	}
	if filepath.Base(logs[len(logs)-1]) != "crash_20250601_000000.log" {
		t.Errorf("newest log = %s", filepath.Base(logs[len(logs)-1]))
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("non-crash files must not be removed")
	}
}

func TestCrash_DefaultBasePath(t *testing.T) {
	crashCtx = &crashContext{}
	if got := crashLogDir(); got != filepath.Join(".todolist", CrashLogDir) {
		t.Errorf("crashLogDir() = %q", got)
	}
}
