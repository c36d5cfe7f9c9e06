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
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/contracts/weather"
)

// ContractSet holds the contracts bound for one session together with the
// capabilities resolved for them. It is built once per connect and never
// modified; a missing contract is a nil field.
type ContractSet struct {
	Oracle      *weather.Oracle
	Token       *weather.Token
	Quests      *weather.QuestManager
	NFT         *weather.NFT
	Multiplayer *weather.MultiplayerSync

	caps map[Capability]bool
}

// codeInspector is implemented by every binding in contracts/weather.
type codeInspector interface {
	Address() common.Address
	HasMethod(code []byte, method string) bool
}

// bindContracts binds every configured contract against backend and
// resolves its capabilities. Failures are logged per contract and never
// abort the set.
func bindContracts(ctx context.Context, cfg Config, backend Backend) *ContractSet {
	set := &ContractSet{caps: make(map[Capability]bool)}
	for _, name := range ContractNames {
		addr, err := cfg.ContractAddress(name)
		if err != nil {
			log.Warn("Skipping contract", "name", name, "err", err)
			continue
		}
		inspector, err := set.bind(name, addr, backend)
		if err != nil {
			log.Warn("Failed to bind contract", "name", name, "address", addr, "err", err)
			continue
		}
		set.resolve(ctx, backend, name, inspector, cfg.Capabilities(name))
	}
	return set
}

func (cs *ContractSet) bind(name ContractName, addr common.Address, backend Backend) (codeInspector, error) {
	switch name {
	case WeatherOracle:
		c, err := weather.NewOracle(addr, backend)
		if err != nil {
			return nil, err
		}
		cs.Oracle = c
		return c, nil
	case WeatherToken:
		c, err := weather.NewToken(addr, backend)
		if err != nil {
			return nil, err
		}
		cs.Token = c
		return c, nil
	case QuestManager:
		c, err := weather.NewQuestManager(addr, backend)
		if err != nil {
			return nil, err
		}
		cs.Quests = c
		return c, nil
	case WeatherNFT:
		c, err := weather.NewNFT(addr, backend)
		if err != nil {
			return nil, err
		}
		cs.NFT = c
		return c, nil
	case MultiplayerSync:
		c, err := weather.NewMultiplayerSync(addr, backend)
		if err != nil {
			return nil, err
		}
		cs.Multiplayer = c
		return c, nil
	}
	return nil, fmt.Errorf("unknown contract %s", name)
}

// resolve keeps the configured capabilities whose method selector appears in
// the deployed bytecode. If the code cannot be read the configuration is
// trusted as is.
func (cs *ContractSet) resolve(ctx context.Context, backend Backend, name ContractName, c codeInspector, caps []Capability) {
	code, err := backend.CodeAt(ctx, c.Address(), nil)
	if err != nil {
		log.Warn("Cannot read contract code, trusting configured capabilities", "name", name, "err", err)
		for _, op := range caps {
			cs.caps[op] = true
		}
		return
	}
	if len(code) == 0 {
		log.Warn("No contract code at address", "name", name, "address", c.Address())
		return
	}
	for _, op := range caps {
		if c.HasMethod(code, op.Method()) {
			cs.caps[op] = true
		} else {
			log.Debug("Contract does not dispatch method", "name", name, "method", op.Method())
		}
	}
}

// Supports reports whether op was resolved for this session.
func (cs *ContractSet) Supports(op Capability) bool {
	return cs != nil && cs.caps[op]
}

// Capabilities returns the resolved capabilities in declaration order.
func (cs *ContractSet) Capabilities() []Capability {
	var out []Capability
	for _, op := range allCapabilities {
		if cs.Supports(op) {
			out = append(out, op)
		}
	}
	return out
}

// Names returns the logical names of the bound contracts.
func (cs *ContractSet) Names() []ContractName {
	if cs == nil {
		return nil
	}
	var out []ContractName
	if cs.Oracle != nil {
		out = append(out, WeatherOracle)
	}
	if cs.Token != nil {
		out = append(out, WeatherToken)
	}
	if cs.Quests != nil {
		out = append(out, QuestManager)
	}
	if cs.NFT != nil {
		out = append(out, WeatherNFT)
	}
	if cs.Multiplayer != nil {
		out = append(out, MultiplayerSync)
	}
	return out
}

// Len returns the number of bound contracts.
func (cs *ContractSet) Len() int { return len(cs.Names()) }
