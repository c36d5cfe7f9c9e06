// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package store

import (
	"context"
	"path/filepath"
	"testing"
)

func testStorage(t *testing.T, s Storage) {
	ctx := context.Background()
	defer s.Close()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("get after overwrite: %q %v %v", v, ok, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("key survived delete")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestMemoryStorage(t *testing.T) {
	testStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	testStorage(t, NewFileStorage(filepath.Join(t.TempDir(), "nested", "state.json")))
}

func TestSQLiteStorage(t *testing.T) {
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	testStorage(t, s)
}

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		location string
		want     string
	}{
		{"", "*store.MemoryStorage"},
		{"memory:", "*store.MemoryStorage"},
		{"file:" + filepath.Join(dir, "a.json"), "*store.FileStorage"},
		{"sqlite:" + filepath.Join(dir, "a"), "*store.SQLiteStorage"},
		{filepath.Join(dir, "b.db"), "*store.SQLiteStorage"},
		{filepath.Join(dir, "b.json"), "*store.FileStorage"},
	}
	for _, tt := range tests {
		s, err := OpenStorage(tt.location)
		if err != nil {
			t.Fatalf("%q: %v", tt.location, err)
		}
		if have := typeName(s); have != tt.want {
			t.Errorf("%q: have %s, want %s", tt.location, have, tt.want)
		}
		s.Close()
	}
	if _, err := OpenStorage(filepath.Join(dir, "noext")); err == nil {
		t.Error("expected error for a path without a kind")
	}
}

func typeName(s Storage) string {
	switch s.(type) {
	case *MemoryStorage:
		return "*store.MemoryStorage"
	case *FileStorage:
		return "*store.FileStorage"
	case *SQLiteStorage:
		return "*store.SQLiteStorage"
	}
	return "?"
}
