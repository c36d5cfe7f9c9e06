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

// Token wraps the WEATHER ERC-20 reward token.
type Token struct {
	boundContract
}

// NewToken binds an already-deployed WEATHER token.
func NewToken(addr common.Address, backend bind.ContractBackend) (*Token, error) {
	b, err := newBoundContract(contract.WeatherTokenABI, addr, backend)
	if err != nil {
		return nil, err
	}
	return &Token{b}, nil
}

// BalanceOf returns the token balance of an account in base units.
func (t *Token) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	return t.callUint(opts, "balanceOf", account)
}

// Decimals returns the token's decimal places.
func (t *Token) Decimals(opts *bind.CallOpts) (uint8, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "decimals"); err != nil {
		return 0, err
	}
	return out[0].(uint8), nil
}

// Symbol returns the token ticker.
func (t *Token) Symbol(opts *bind.CallOpts) (string, error) {
	var out []interface{}
	if err := t.contract.Call(opts, &out, "symbol"); err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Mint mints amount tokens to the given address (owner-only on most deployments).
func (t *Token) Mint(opts *bind.TransactOpts, to common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "mint", to, amount)
}

// Faucet drips a fixed amount of test tokens to the sender.
func (t *Token) Faucet(opts *bind.TransactOpts) (*types.Transaction, error) {
	return t.contract.Transact(opts, "faucet")
}

// Claim claims any pending reward for the sender.
func (t *Token) Claim(opts *bind.TransactOpts) (*types.Transaction, error) {
	return t.contract.Transact(opts, "claim")
}

// Approve grants spender an allowance of amount.
func (t *Token) Approve(opts *bind.TransactOpts, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	return t.contract.Transact(opts, "approve", spender, amount)
}
