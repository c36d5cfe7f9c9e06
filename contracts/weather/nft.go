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

// NFT wraps the WeatherNFT ERC-721 collection.
type NFT struct {
	boundContract
}

// NewNFT binds an already-deployed WeatherNFT collection.
func NewNFT(addr common.Address, backend bind.ContractBackend) (*NFT, error) {
	b, err := newBoundContract(contract.WeatherNFTABI, addr, backend)
	if err != nil {
		return nil, err
	}
	return &NFT{b}, nil
}

// ──────────────────────────────────────────────
//  Write methods
// ──────────────────────────────────────────────

// MintWeatherNFT mints a weather-typed token to the given address.
func (n *NFT) MintWeatherNFT(opts *bind.TransactOpts, to common.Address, weatherType uint8) (*types.Transaction, error) {
	return n.contract.Transact(opts, "mintWeatherNFT", to, weatherType)
}

// Mint is the generic ERC-721 mint entry point some deployments expose.
func (n *NFT) Mint(opts *bind.TransactOpts, to common.Address) (*types.Transaction, error) {
	return n.contract.Transact(opts, "mint", to)
}

// SafeMint is the OpenZeppelin-wizard mint entry point.
func (n *NFT) SafeMint(opts *bind.TransactOpts, to common.Address) (*types.Transaction, error) {
	return n.contract.Transact(opts, "safeMint", to)
}

// MintTo is the thirdweb-style mint entry point.
func (n *NFT) MintTo(opts *bind.TransactOpts, to common.Address) (*types.Transaction, error) {
	return n.contract.Transact(opts, "mintTo", to)
}

// ──────────────────────────────────────────────
//  Read methods
// ──────────────────────────────────────────────

// BalanceOf returns how many weather NFTs an address owns.
func (n *NFT) BalanceOf(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	return n.callUint(opts, "balanceOf", owner)
}

// TotalSupply returns the number of minted weather NFTs.
func (n *NFT) TotalSupply(opts *bind.CallOpts) (*big.Int, error) {
	return n.callUint(opts, "totalSupply")
}
