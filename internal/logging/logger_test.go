package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/vidsqueeze/internal/config"
)

func newTestLogger(t *testing.T, verbose bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.Verbose = verbose
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	l.out, l.errOut = &out, &errOut
	return l, &out, &errOut
}

func TestNewLogger_NoFile(t *testing.T) {
	l, out, _ := newTestLogger(t, false)
	defer l.Close()
	l.Info("test message")
	if !strings.Contains(out.String(), "[INFO] test message") {
		t.Errorf("stdout = %q", out.String())
	}
	if l.RunID() == "" {
		t.Error("RunID() is empty")
	}
}

func TestLogger_ErrorGoesToStderr(t *testing.T) {
	l, out, errOut := newTestLogger(t, false)
	l.Error("boom %d", 7)
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want empty", out.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] boom 7") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestLogger_Debug(t *testing.T) {
	quiet, out, _ := newTestLogger(t, false)
	quiet.Debug("hidden")
	if out.Len() != 0 {
		t.Errorf("non-verbose Debug wrote %q", out.String())
	}

	loud, out, _ := newTestLogger(t, true)
	loud.Debug("shown")
	if !strings.Contains(out.String(), "[DEBUG] shown") {
		t.Errorf("verbose Debug wrote %q", out.String())
	}
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "vidsqueeze.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.out, l.errOut = &bytes.Buffer{}, &bytes.Buffer{}
	l.Info("to file")
	l.Warn("careful")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)
	for _, want := range []string{"run " + l.RunID(), "[INFO] to file", "[WARN] careful"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q:\n%s", want, content)
		}
	}
}

func TestNewLogger_RunIDsDiffer(t *testing.T) {
	a, _, _ := newTestLogger(t, false)
	b, _, _ := newTestLogger(t, false)
	if a.RunID() == b.RunID() {
		t.Errorf("two loggers share run ID %q", a.RunID())
	}
}
