package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesJSONLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cleanup, err := Setup(Config{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	L().Debug("cross.completed", "id", "abc")
	if Path() != filepath.Join(dir, "punnettlab.log") {
		t.Fatalf("unexpected path: %s", Path())
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if Path() != "" {
		t.Fatal("expected path reset after cleanup")
	}

	data, err := os.ReadFile(filepath.Join(dir, "punnettlab.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{`"msg":"logger.initialized"`, `"msg":"cross.completed"`, `"id":"abc"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s in log:\n%s", want, data)
		}
	}
}

func TestSetupWithoutDirDiscards(t *testing.T) {
	cleanup, err := Setup(Config{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer cleanup()
	if Path() != "" {
		t.Fatalf("expected no log path, got %s", Path())
	}
	L().Info("ignored")
}
