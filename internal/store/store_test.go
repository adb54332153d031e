package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil sql.DB")
	}
	if s.KV() == nil {
		t.Fatal("expected non-nil KV")
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gogaku.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is tested with a file-based DB above.
		{"busy_timeout", "5000"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	// Missing key is not an error.
	if _, ok, err := kv.Get(ctx, "user"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "user", `{"id":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "user")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if v != `{"id":1}` {
		t.Errorf("value = %q", v)
	}

	// Upsert overwrites.
	if err := kv.Set(ctx, "user", `{"id":2}`); err != nil {
		t.Fatalf("set again: %v", err)
	}
	v, _, _ = kv.Get(ctx, "user")
	if v != `{"id":2}` {
		t.Errorf("value after upsert = %q", v)
	}
}

func TestKVRemove(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	if err := kv.Set(ctx, "user", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Remove(ctx, "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "user"); ok {
		t.Error("key survived remove")
	}

	// Removing a missing key is fine.
	if err := kv.Remove(ctx, "user"); err != nil {
		t.Errorf("remove missing: %v", err)
	}
}

func TestKVMultiRemove(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	for _, k := range []string{"user", "userId", "preferences"} {
		if err := kv.Set(ctx, k, "x"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := kv.MultiRemove(ctx, []string{"user", "userId", "missing"}); err != nil {
		t.Fatalf("multi remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "user"); ok {
		t.Error("user survived multi remove")
	}
	if _, ok, _ := kv.Get(ctx, "userId"); ok {
		t.Error("userId survived multi remove")
	}
	if _, ok, _ := kv.Get(ctx, "preferences"); !ok {
		t.Error("preferences should have survived")
	}
}

func TestGetJSONCorruptValue(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	if err := kv.Set(ctx, "users", "{not json"); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []string
	ok, err := GetJSON(ctx, kv, "users", &out)
	if err != nil {
		t.Fatalf("get json: %v", err)
	}
	if ok {
		t.Error("corrupt value should read as absent")
	}
}

func TestSetGetJSON(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()
	ctx := context.Background()

	in := map[string]int{"n5": 60, "n4": 40}
	if err := SetJSON(ctx, kv, "progress", in); err != nil {
		t.Fatalf("set json: %v", err)
	}

	var out map[string]int
	ok, err := GetJSON(ctx, kv, "progress", &out)
	if err != nil || !ok {
		t.Fatalf("get json: ok=%v err=%v", ok, err)
	}
	if out["n5"] != 60 || out["n4"] != 40 {
		t.Errorf("round trip = %v", out)
	}
}
