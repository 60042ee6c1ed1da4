package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNew(t *testing.T) {
	l := New("debug", "json")
	if l.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("formatter = %T", l.Formatter)
	}

	l = New("nonsense", "text")
	if l.GetLevel() != logrus.InfoLevel {
		t.Errorf("fallback level = %v", l.GetLevel())
	}
}

func TestNewWithFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	day := time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC)

	l, f, err := NewWithFile("info", "text", dir, day)
	if err != nil {
		t.Fatalf("NewWithFile() error = %v", err)
	}
	l.Info("hello from the bot")
	f.Close()

	b, err := os.ReadFile(filepath.Join(dir, "20-07-2024.log"))
	if err != nil {
		t.Fatalf("daily file missing: %v", err)
	}
	if !strings.Contains(string(b), "hello from the bot") {
		t.Errorf("log file content = %q", b)
	}

	if _, _, err := NewWithFile("info", "text", "", day); err == nil {
		t.Error("empty dir accepted")
	}
}

func TestDeleteOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC)

	files := map[string]time.Time{
		"01-05-2024.log": now.AddDate(0, 0, -80),
		"15-07-2024.log": now.AddDate(0, 0, -5),
		"old.txt":        now.AddDate(0, 0, -80),
	}
	for name, mtime := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(p, mtime, mtime); err != nil {
			t.Fatal(err)
		}
	}

	l, _ := test.NewNullLogger()
	n, err := DeleteOldLogs(l, dir, 30, now)
	if err != nil {
		t.Fatalf("DeleteOldLogs() error = %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d, want 1", n)
	}
	for name, wantExists := range map[string]bool{"01-05-2024.log": false, "15-07-2024.log": true, "old.txt": true} {
		_, err := os.Stat(filepath.Join(dir, name))
		if exists := err == nil; exists != wantExists {
			t.Errorf("%s exists = %v, want %v", name, exists, wantExists)
		}
	}

	if _, err := DeleteOldLogs(l, dir, -1, now); err == nil {
		t.Error("negative days accepted")
	}
}
