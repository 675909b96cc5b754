package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finecron/pkg/logx"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")}, logx.Nop())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStorePutGet(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Put(ctx, "nightly", "2:30:00"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	def, err := st.Get(ctx, "nightly")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if def.Expr != "2:30:00" {
		t.Fatalf("expr = %q, want 2:30:00", def.Expr)
	}
	if def.CreatedAt.IsZero() || def.UpdatedAt.IsZero() {
		t.Fatal("timestamps should be set")
	}
}

func TestStorePutRejectsInvalidExpression(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	if err := st.Put(context.Background(), "bad", "25:00:00"); err == nil {
		t.Fatal("expected error for out-of-range hour")
	}
}

func TestStorePutUpdatesKeepCreatedAt(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Put(ctx, "job", "10:00:00"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	first, err := st.Get(ctx, "job")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if err := st.Put(ctx, "job", "11:00:00"); err != nil {
		t.Fatalf("Put update error: %v", err)
	}
	second, err := st.Get(ctx, "job")
	if err != nil {
		t.Fatalf("Get after update error: %v", err)
	}
	if second.Expr != "11:00:00" {
		t.Fatalf("expr = %q, want 11:00:00", second.Expr)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed on update: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	t.Parallel()
	st := openTestStore(t)
	ctx := context.Background()

	for name, expr := range map[string]string{
		"b-second": "3 12:00:00",
		"a-first":  "*.*.1 0:00:00",
	} {
		if err := st.Put(ctx, name, expr); err != nil {
			t.Fatalf("Put(%s) error: %v", name, err)
		}
	}

	defs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "a-first" || defs[1].Name != "b-second" {
		t.Fatalf("List = %+v, want a-first then b-second", defs)
	}

	if err := st.Delete(ctx, "a-first"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := st.Delete(ctx, "a-first"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
	if _, err := st.Get(ctx, "a-first"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}
