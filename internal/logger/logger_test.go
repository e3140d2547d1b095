package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersAreNoopsBeforeInit(t *testing.T) {
	Close()
	Debug("ignored", "k", 1)
	Warn("ignored")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tedit.log")
	if err := Init(path, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Debug("hello", "row", 3)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log = %q, want it to contain %q", data, "hello")
	}
}

func TestPathEnv(t *testing.T) {
	t.Setenv("TEDIT_LOG_FILE", "/tmp/x.log")
	got, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got != "/tmp/x.log" {
		t.Fatalf("Path = %q, want %q", got, "/tmp/x.log")
	}

	t.Setenv("TEDIT_LOG_FILE", "")
	t.Setenv("TEDIT_CONFIG_HOME", "/tmp/cfg")
	got, err = Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got != "/tmp/cfg/tedit.log" {
		t.Fatalf("Path = %q, want %q", got, "/tmp/cfg/tedit.log")
	}
}
