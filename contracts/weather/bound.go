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

// Package weather provides high-level Go bindings for the five contracts of
// the weather quest game: the oracle, the WEATHER reward token, the quest
// manager, the weather NFT collection and the multiplayer sync registry.
//
// Write methods take the caller's TransactOpts so a single binding can be
// shared by every signer of a session; read methods take CallOpts.
package weather

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// push4 is the EVM opcode solc emits in front of every selector in the
// function dispatcher.
const push4 = 0x63

// boundContract is the state shared by all the wrappers below.
type boundContract struct {
	abi      abi.ABI
	address  common.Address
	contract *bind.BoundContract
}

func newBoundContract(abiJSON string, addr common.Address, backend bind.ContractBackend) (boundContract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return boundContract{}, err
	}
	return boundContract{
		abi:      parsed,
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}, nil
}

// Address returns the address the binding is attached to.
func (b *boundContract) Address() common.Address { return b.address }

// ABI returns the parsed contract ABI.
func (b *boundContract) ABI() abi.ABI { return b.abi }

// Transact invokes any method of the ABI by name.
func (b *boundContract) Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	return b.contract.Transact(opts, method, params...)
}

// Selector returns the 4-byte method id of the named method.
func (b *boundContract) Selector(method string) ([]byte, error) {
	m, ok := b.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("weather: method %q not in ABI", method)
	}
	return m.ID, nil
}

// HasMethod reports whether the runtime bytecode dispatches the named
// method. It looks for the PUSH4 <selector> sequence of the solc dispatcher,
// so it only proves presence for contracts compiled that way.
func (b *boundContract) HasMethod(code []byte, method string) bool {
	id, err := b.Selector(method)
	if err != nil || len(code) == 0 {
		return false
	}
	return bytes.Contains(code, append([]byte{push4}, id...))
}

func (b *boundContract) callUint(opts *bind.CallOpts, method string, params ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := b.contract.Call(opts, &out, method, params...); err != nil {
		return nil, err
	}
	return out[0].(*big.Int), nil
}
