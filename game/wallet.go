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
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Backend is the node connection behind a wallet: everything the contract
// bindings need plus balance and chain id reads. *ethclient.Client and the
// simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend

	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Wallet is the interface an account provider must implement. It follows
// the EIP-1193 request surface of injected browser wallets so the session
// logic is the same whether accounts live in a remote signer or a local key.
type Wallet interface {
	// RequestAccounts asks the user to expose their accounts
	// (eth_requestAccounts). It may prompt and may be rejected.
	RequestAccounts(ctx context.Context) ([]common.Address, error)

	// Accounts returns the currently exposed accounts without prompting
	// (eth_accounts).
	Accounts(ctx context.Context) ([]common.Address, error)

	// ChainID returns the chain the wallet is currently on (eth_chainId).
	ChainID(ctx context.Context) (*big.Int, error)

	// SwitchChain asks the wallet to change chains
	// (wallet_switchEthereumChain). Wallets that do not know the chain fail
	// with EIP-1193 code 4902.
	SwitchChain(ctx context.Context, chainID *big.Int) error

	// AddChain offers a chain definition to the wallet
	// (wallet_addEthereumChain).
	AddChain(ctx context.Context, params AddChainParams) error

	// Backend returns the node connection used for reads and submission.
	Backend() Backend

	// Signer returns transaction options that sign as account. Any request
	// the wallet makes while signing is bound to ctx.
	Signer(ctx context.Context, account common.Address, chainID *big.Int) (*bind.TransactOpts, error)
}
