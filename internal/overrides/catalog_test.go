package overrides

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeCatalogJSON(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestNewCatalogEmptyPath(t *testing.T) {
	if catalog := NewCatalog("   ", nil); catalog != nil {
		t.Fatal("expected nil catalog for blank path")
	}

	var catalog *Catalog
	if _, ok, err := catalog.Lookup("John Smith"); ok || err != nil {
		t.Fatalf("nil catalog lookup: ok=%v err=%v", ok, err)
	}
}

func TestLookupNormalizesNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	writeCatalogJSON(t, path, map[string]string{
		"Smith, John A.": "VGVhY2hlci0x",
	})

	catalog := NewCatalog(path, nil)
	for _, name := range []string{"Smith, John A.", "smith john a", "SMITH JOHN A"} {
		id, ok, err := catalog.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
		if !ok || id != "VGVhY2hlci0x" {
			t.Fatalf("Lookup(%q) = (%q, %v), want override hit", name, id, ok)
		}
	}

	if _, ok, _ := catalog.Lookup("Jane Doe"); ok {
		t.Fatal("unexpected hit for unmapped name")
	}
}

func TestLookupMissingFile(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "absent.json"), nil)
	if _, ok, err := catalog.Lookup("John Smith"); ok || err != nil {
		t.Fatalf("missing file should be empty catalog, got ok=%v err=%v", ok, err)
	}
}

func TestReloadOnModTimeChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	writeCatalogJSON(t, path, map[string]string{"John Smith": "VGVhY2hlci0x"})

	catalog := NewCatalog(path, nil)
	if _, ok, err := catalog.Lookup("John Smith"); !ok || err != nil {
		t.Fatalf("initial lookup: ok=%v err=%v", ok, err)
	}

	writeCatalogJSON(t, path, map[string]string{"Jane Doe": "VGVhY2hlci0y"})
	// Ensure the mtime moves even on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("bump mtime: %v", err)
	}

	if _, ok, _ := catalog.Lookup("John Smith"); ok {
		t.Fatal("stale entry survived reload")
	}
	if id, ok, err := catalog.Lookup("Jane Doe"); !ok || err != nil || id != "VGVhY2hlci0y" {
		t.Fatalf("reloaded lookup = (%q, %v, %v)", id, ok, err)
	}
}

func TestSetPersistsAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	catalog := NewCatalog(path, nil)

	if err := catalog.Set("Smith, John", "VGVhY2hlci0x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh catalog must see the persisted entry.
	reread := NewCatalog(path, nil)
	if id, ok, err := reread.Lookup("john smith"); !ok || err != nil || id != "VGVhY2hlci0x" {
		t.Fatalf("persisted lookup = (%q, %v, %v)", id, ok, err)
	}

	if err := catalog.Remove("John Smith"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := catalog.Remove("John Smith"); err == nil {
		t.Fatal("expected error removing absent override")
	}
	if _, ok, _ := NewCatalog(path, nil).Lookup("John Smith"); ok {
		t.Fatal("removed override still present on disk")
	}
}

func TestSetValidation(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "overrides.json"), nil)
	if err := catalog.Set("  ", "VGVhY2hlci0x"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := catalog.Set("John Smith", "  "); err == nil {
		t.Fatal("expected error for empty teacher id")
	}
}

func TestBlankEntriesSkippedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	writeCatalogJSON(t, path, map[string]string{
		"John Smith": "VGVhY2hlci0x",
		"   ":        "VGVhY2hlci0y",
		"Jane Doe":   "  ",
	})

	catalog := NewCatalog(path, nil)
	entries, err := catalog.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List returned %d entries, want 1: %v", len(entries), entries)
	}
}
