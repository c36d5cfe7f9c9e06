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

// Package store keeps the client's local game state: the set of completed
// quests and the list of minted NFTs. State is written through to a durable
// string key-value Storage on every mutation and read back at startup.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Storage is a durable string key-value store.
type Storage interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// OpenStorage opens a Storage from a location string:
//
//	""  or "memory:"    in-memory, lost on exit
//	"file:<path>"       JSON document on disk
//	"sqlite:<path>"     SQLite database
//
// A bare path selects SQLite for .db/.sqlite files and the JSON file store otherwise.
func OpenStorage(location string) (Storage, error) {
	switch {
	case location == "" || location == "memory:":
		return NewMemoryStorage(), nil
	case strings.HasPrefix(location, "file:"):
		return NewFileStorage(strings.TrimPrefix(location, "file:")), nil
	case strings.HasPrefix(location, "sqlite:"):
		return NewSQLiteStorage(strings.TrimPrefix(location, "sqlite:"))
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStorage(location)
	case "":
		return nil, fmt.Errorf("store: cannot infer storage kind from %q", location)
	}
	return NewFileStorage(location), nil
}

// MemoryStorage is a Storage held in process memory.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Close() error { return nil }
