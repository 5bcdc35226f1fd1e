package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *KVRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewKVRepository(db).(*KVRepository)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return repo
}

func TestKVRepositorySetGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := repo.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "token", "def"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := repo.Get(ctx, "token")
	if err != nil || !ok || v != "def" {
		t.Fatalf("expected def, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestKVRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	for _, k := range []string{"a", "b", "c"} {
		if err := repo.Set(ctx, k, k); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := repo.Delete(ctx, "a", "b", "absent"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete nothing: %v", err)
	}

	for k, want := range map[string]bool{"a": false, "b": false, "c": true} {
		if _, ok, err := repo.Get(ctx, k); err != nil || ok != want {
			t.Errorf("key %s: ok=%v err=%v, want ok=%v", k, ok, err, want)
		}
	}
}

func TestKVRepositoryInitIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("second init: %v", err)
	}
}

func TestOpenInMemory(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	repo := NewKVRepository(db)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := repo.Set(ctx, "refresh", "r1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, err := repo.Get(ctx, "refresh"); err != nil || !ok || v != "r1" {
		t.Fatalf("expected r1, got %q ok=%v err=%v", v, ok, err)
	}
}
