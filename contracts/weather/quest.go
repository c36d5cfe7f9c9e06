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

package weather

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/contracts/weather/contract"
)

// QuestManager wraps the on-chain QuestManager contract.
type QuestManager struct {
	boundContract
}

// NewQuestManager binds an already-deployed QuestManager.
func NewQuestManager(addr common.Address, backend bind.ContractBackend) (*QuestManager, error) {
	b, err := newBoundContract(contract.QuestManagerABI, addr, backend)
	if err != nil {
		return nil, err
	}
	return &QuestManager{b}, nil
}

// CompleteQuest marks a quest completed for the sender and pays its reward.
func (q *QuestManager) CompleteQuest(opts *bind.TransactOpts, questID *big.Int) (*types.Transaction, error) {
	return q.contract.Transact(opts, "completeQuest", questID)
}

// ClaimReward claims the reward of an already completed quest.
func (q *QuestManager) ClaimReward(opts *bind.TransactOpts, questID *big.Int) (*types.Transaction, error) {
	return q.contract.Transact(opts, "claimReward", questID)
}

// IsQuestCompleted reports whether player has completed questID on-chain.
func (q *QuestManager) IsQuestCompleted(opts *bind.CallOpts, player common.Address, questID *big.Int) (bool, error) {
	var out []interface{}
	if err := q.contract.Call(opts, &out, "isQuestCompleted", player, questID); err != nil {
		return false, err
	}
	return out[0].(bool), nil
}
