package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"finecron/internal/config"
	"finecron/pkg/logx"
	"finecron/schedule"
)

func TestCompile(t *testing.T) {
	t.Parallel()
	snap, err := Compile([]config.Schedule{
		{Name: "nightly", Expr: "2:30:00"},
		{Name: "paused", Expr: "bogus", Disabled: true},
		{Name: "monthly", Expr: "*.*.1 0:00:00"},
	})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if snap.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (disabled entries skipped)", snap.Len())
	}
	s, ok := snap.Get("nightly")
	if !ok {
		t.Fatal("nightly not found")
	}
	if s.Format.Time.Hours[0] != (schedule.Entry{Kind: schedule.Point, Begin: 2}) {
		t.Fatalf("hours = %+v, want [2]", s.Format.Time.Hours)
	}
	if _, ok := snap.Get("paused"); ok {
		t.Fatal("disabled schedule should not be in snapshot")
	}
}

func TestCompileRejectsInvalidExpression(t *testing.T) {
	t.Parallel()
	_, err := Compile([]config.Schedule{
		{Name: "ok", Expr: "10:00:00"},
		{Name: "broken", Expr: "25:00:00"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Fatalf("error %q does not name the offending schedule", err.Error())
	}
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestManagerLoadAndReload(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "finecron.yaml")
	writeConfig(t, path, "schedules:\n  - name: a\n    expr: \"10:00:00\"\n")

	m := NewManager(path, logx.Nop())
	snap, err := m.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if snap.Len() != 1 {
		t.Fatalf("Len = %d, want 1", snap.Len())
	}

	sub := m.Subscribe(1)
	defer m.Unsubscribe(sub)

	// Unchanged content: no publish.
	m.reload()
	select {
	case got := <-sub:
		t.Fatalf("unexpected publish for unchanged config: %+v", got)
	default:
	}

	writeConfig(t, path, "schedules:\n  - name: a\n    expr: \"10:00:00\"\n  - name: b\n    expr: \"3 12:00:00\"\n")
	m.reload()
	select {
	case got := <-sub:
		if got.Len() != 2 {
			t.Fatalf("published Len = %d, want 2", got.Len())
		}
	default:
		t.Fatal("expected a published snapshot")
	}
	if m.Current().Len() != 2 {
		t.Fatalf("Current().Len = %d, want 2", m.Current().Len())
	}
}

func TestManagerReloadKeepsPreviousOnError(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "finecron.yaml")
	writeConfig(t, path, "schedules:\n  - name: a\n    expr: \"10:00:00\"\n")

	m := NewManager(path, logx.Nop())
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	writeConfig(t, path, "schedules:\n  - name: a\n    expr: \"99:00:00\"\n")
	m.reload()
	if m.Current().Len() != 1 {
		t.Fatal("previous snapshot should survive a bad reload")
	}
	if _, ok := m.Current().Get("a"); !ok {
		t.Fatal("schedule a should still be present")
	}
}
