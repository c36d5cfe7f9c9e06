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
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
)

// Storage keys. They are shared by every account using the same storage.
const (
	CompletedQuestsKey = "completedQuests"
	MintedNFTsKey      = "mintedNFTs"
)

// QuestRecord is the completion state of one quest.
type QuestRecord struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// NFTRecord describes a minted NFT, real or demo.
type NFTRecord struct {
	ID       string    `json:"id"`
	Category string    `json:"category"` // weather type name
	Rarity   string    `json:"rarity"`
	MintedAt time.Time `json:"minted_at"`
	IsReal   bool      `json:"is_real"`
	TxHash   string    `json:"tx_hash,omitempty"`
	Strategy string    `json:"strategy,omitempty"`
}

// NewNFTID returns a fresh record id.
func NewNFTID() string { return uuid.NewString() }

// Cache mirrors completed quests and minted NFTs into a Storage.
// Completed quests have set semantics; NFTs are append-only. The only
// deletion path is ClearAll.
type Cache struct {
	storage Storage

	mu        sync.RWMutex
	completed []string // insertion order
	index     map[string]struct{}
	nfts      []NFTRecord
}

// Open loads the cache from storage. Unreadable values are logged and
// treated as empty, the way a fresh browser profile would start.
func Open(ctx context.Context, storage Storage) (*Cache, error) {
	c := &Cache{storage: storage, index: make(map[string]struct{})}

	raw, ok, err := storage.Get(ctx, CompletedQuestsKey)
	if err != nil {
		return nil, fmt.Errorf("load completed quests: %w", err)
	}
	if ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			log.Warn("Discarding unreadable completed quests", "err", err)
			ids = nil
		}
		for _, id := range ids {
			if _, dup := c.index[id]; !dup {
				c.index[id] = struct{}{}
				c.completed = append(c.completed, id)
			}
		}
	}

	raw, ok, err = storage.Get(ctx, MintedNFTsKey)
	if err != nil {
		return nil, fmt.Errorf("load minted nfts: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &c.nfts); err != nil {
			log.Warn("Discarding unreadable NFT records", "err", err)
			c.nfts = nil
		}
	}
	return c, nil
}

// IsCompleted reports whether id is in the completed set.
func (c *Cache) IsCompleted(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[id]
	return ok
}

// MarkCompleted adds id to the completed set and persists it. It returns
// false if id was already present, in which case nothing is written.
func (c *Cache) MarkCompleted(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index[id]; ok {
		return false, nil
	}
	next := append(append([]string(nil), c.completed...), id)
	if err := c.put(ctx, CompletedQuestsKey, next); err != nil {
		return false, err
	}
	c.completed = next
	c.index[id] = struct{}{}
	return true, nil
}

// AppendNFT appends rec to the NFT list and persists it.
func (c *Cache) AppendNFT(ctx context.Context, rec NFTRecord) error {
	if rec.ID == "" {
		rec.ID = NewNFTID()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := append(append([]NFTRecord(nil), c.nfts...), rec)
	if err := c.put(ctx, MintedNFTsKey, next); err != nil {
		return err
	}
	c.nfts = next
	return nil
}

// ClearAll empties both the completed set and the NFT list. In-memory
// state is cleared even if the storage delete fails.
func (c *Cache) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completed = nil
	c.index = make(map[string]struct{})
	c.nfts = nil

	if err := c.storage.Delete(ctx, CompletedQuestsKey); err != nil {
		return fmt.Errorf("clear completed quests: %w", err)
	}
	if err := c.storage.Delete(ctx, MintedNFTsKey); err != nil {
		return fmt.Errorf("clear minted nfts: %w", err)
	}
	return nil
}

// CompletedQuests returns the completed quest ids in completion order.
func (c *Cache) CompletedQuests() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.completed...)
}

// Quests returns a record for every completed quest.
func (c *Cache) Quests() []QuestRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]QuestRecord, len(c.completed))
	for i, id := range c.completed {
		out[i] = QuestRecord{ID: id, Completed: true}
	}
	return out
}

// NFTs returns the minted NFT records in mint order.
func (c *Cache) NFTs() []NFTRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]NFTRecord(nil), c.nfts...)
}

func (c *Cache) put(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.storage.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
