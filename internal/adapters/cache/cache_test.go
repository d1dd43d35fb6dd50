package cache

import (
	"os"
	"path/filepath"
	"testing"

	resolvedom "trawlwatch/internal/services/resolve/domain"
)

func TestNewFile_MissingFileStartsEmpty(t *testing.T) {
	c := NewFile(filepath.Join(t.TempDir(), "nope", "cache.json"))
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
	if _, ok := c.Lookup("9999999"); ok {
		t.Fatalf("lookup on empty cache must miss")
	}
}

func TestNewFile_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := NewFile(path)
	if c.Len() != 0 {
		t.Fatalf("corrupt cache must degrade to empty, got %d entries", c.Len())
	}
}

func TestStoreAndLookupRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewFile(path)

	rec := resolvedom.Record{
		PrimaryID:   "9999999",
		ResolvedID:  "abc123",
		DisplayName: "TEST VESSEL",
		Flag:        "SEN",
		Source:      resolvedom.SourceCombined,
		Detail:      resolvedom.Detail{LengthM: 32.5, GearTypes: []string{"trawlers"}},
	}
	if err := c.Store("9999999", rec); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok := c.Lookup("9999999")
	if !ok {
		t.Fatalf("lookup missed after store")
	}
	if got.ResolvedID != "abc123" || got.Flag != "SEN" {
		t.Fatalf("roundtrip record wrong: %+v", got)
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cache.json")
	c := NewFile(path)
	if err := c.Store("9999999", resolvedom.Record{
		PrimaryID:   "9999999",
		ResolvedID:  "abc123",
		DisplayName: "TEST VESSEL",
		Source:      resolvedom.SourceBasic,
	}); err != nil {
		t.Fatalf("store: %v", err)
	}

	reopened := NewFile(path)
	got, ok := reopened.Lookup("9999999")
	if !ok {
		t.Fatalf("entry lost across reopen")
	}
	if got.Source != resolvedom.SourceBasic || got.DisplayName != "TEST VESSEL" {
		t.Fatalf("reloaded record wrong: %+v", got)
	}
}

func TestStore_ReplacesWholesale(t *testing.T) {
	c := NewFile(filepath.Join(t.TempDir(), "cache.json"))

	first := resolvedom.Record{PrimaryID: "9999999", ResolvedID: "old", Flag: "SEN", DisplayName: "OLD"}
	second := resolvedom.Record{PrimaryID: "9999999", ResolvedID: "new", DisplayName: "NEW"}
	if err := c.Store("9999999", first); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := c.Store("9999999", second); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, _ := c.Lookup("9999999")
	if got.ResolvedID != "new" {
		t.Fatalf("resolved id = %q, want replacement", got.ResolvedID)
	}
	if got.Flag != "" {
		t.Fatalf("old flag leaked through a wholesale replace: %q", got.Flag)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := NewFile(filepath.Join(t.TempDir(), "cache.json"))
	if err := c.Store("9999999", resolvedom.Record{PrimaryID: "9999999", DisplayName: "TEST VESSEL"}); err != nil {
		t.Fatalf("store: %v", err)
	}

	snap := c.Snapshot()
	delete(snap, "9999999")
	if _, ok := c.Lookup("9999999"); !ok {
		t.Fatalf("mutating the snapshot must not touch the cache")
	}
}
