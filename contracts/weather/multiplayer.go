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

// MultiplayerSync wraps the shared-session registry contract.
type MultiplayerSync struct {
	boundContract
}

// NewMultiplayerSync binds an already-deployed MultiplayerSync.
func NewMultiplayerSync(addr common.Address, backend bind.ContractBackend) (*MultiplayerSync, error) {
	b, err := newBoundContract(contract.MultiplayerSyncABI, addr, backend)
	if err != nil {
		return nil, err
	}
	return &MultiplayerSync{b}, nil
}

// JoinSession registers the sender as an active player.
func (m *MultiplayerSync) JoinSession(opts *bind.TransactOpts) (*types.Transaction, error) {
	return m.contract.Transact(opts, "joinSession")
}

// LeaveSession removes the sender from the active players.
func (m *MultiplayerSync) LeaveSession(opts *bind.TransactOpts) (*types.Transaction, error) {
	return m.contract.Transact(opts, "leaveSession")
}

// ActivePlayers returns the number of registered players.
func (m *MultiplayerSync) ActivePlayers(opts *bind.CallOpts) (*big.Int, error) {
	return m.callUint(opts, "activePlayers")
}
