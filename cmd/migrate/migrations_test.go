package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
)

// this file lives in cmd/migrate/, so the repo root is ../..
func migrationsPath(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
	return filepath.Join(repoRoot, migrationsDir)
}

func TestMigrations_Collect(t *testing.T) {
	if _, err := goose.CollectMigrations(migrationsPath(t), 0, goose.MaxVersion); err != nil {
		t.Fatalf("expected migrations to parse, got error: %v", err)
	}
}

func TestMigrations_HaveGooseDirectives(t *testing.T) {
	dir := migrationsPath(t)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}

	sqlFiles := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		sqlFiles++

		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", e.Name(), err)
		}
		s := string(b)
		if !strings.Contains(s, "-- +goose Up") {
			t.Errorf("%s missing '-- +goose Up'", e.Name())
		}
		if !strings.Contains(s, "-- +goose Down") {
			t.Errorf("%s missing '-- +goose Down'", e.Name())
		}
	}
	if sqlFiles == 0 {
		t.Fatal("expected at least one migration file")
	}
}

// The book store upserts on (isbn, language), so the schema must carry that
// unique pair.
func TestMigrations_BooksTableHasUpsertKey(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(migrationsPath(t), "00001_create_books.sql"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	s := string(b)
	if !strings.Contains(s, "CREATE TABLE books") {
		t.Error("expected the first migration to create the books table")
	}
	if !strings.Contains(s, "UNIQUE (isbn, language)") {
		t.Error("expected a unique key on (isbn, language)")
	}
}
