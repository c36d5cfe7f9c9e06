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

package game

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/store"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Account      common.Address `json:"account"`
	ChainID      uint64         `json:"chainId"`
	Balance      string         `json:"balance"`      // native currency, decimal
	TokenBalance string         `json:"tokenBalance"` // WEATHER, decimal
	NFTBalance   uint64         `json:"nftBalance"`
	Connected    bool           `json:"connected"`
	Contracts    []ContractName `json:"contracts"`
	Capabilities []Capability   `json:"capabilities"`
}

// QuestStatus is a quest together with its local completion state.
type QuestStatus struct {
	Quest
	Completed bool `json:"completed"`
}

// MintResult is returned after an NFT mint, real or demo.
type MintResult struct {
	*Outcome
	NFT store.NFTRecord `json:"nft"`
}

// Rarity tiers of minted NFTs.
const (
	RarityCommon    = "Common"
	RarityRare      = "Rare"
	RarityEpic      = "Epic"
	RarityLegendary = "Legendary"
)

// rarityFor maps a roll in [0, 100) onto a tier: 60% common, 25% rare,
// 12% epic, 3% legendary.
func rarityFor(roll int) string {
	switch {
	case roll < 60:
		return RarityCommon
	case roll < 85:
		return RarityRare
	case roll < 97:
		return RarityEpic
	default:
		return RarityLegendary
	}
}
