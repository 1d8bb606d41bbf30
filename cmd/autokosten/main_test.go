package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rkeulen/autokosten/internal/config"
	"github.com/rkeulen/autokosten/internal/db"
)

func TestOpenStore_FileBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "file"
	cfg.Store.Dir = t.TempDir()

	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer closeStore()

	if _, ok := store.(*db.FileStore); !ok {
		t.Errorf("expected *db.FileStore, got %T", store)
	}
}

func TestOpenStore_DefaultsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = ""
	cfg.Store.Dir = t.TempDir()

	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer closeStore()

	if _, ok := store.(*db.FileStore); !ok {
		t.Errorf("expected *db.FileStore, got %T", store)
	}
}

func TestReadPlates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plates.txt")
	if err := os.WriteFile(path, []byte("12-AB-34\n\nG-001-BB\n"), 0o644); err != nil {
		t.Fatalf("writing plates file: %v", err)
	}

	plates, err := readPlates(path)
	if err != nil {
		t.Fatalf("readPlates failed: %v", err)
	}
	if len(plates) != 2 {
		t.Fatalf("expected 2 plates, got %d: %v", len(plates), plates)
	}
	if plates[0] != "12-AB-34" || plates[1] != "G-001-BB" {
		t.Errorf("unexpected plates: %v", plates)
	}
}
