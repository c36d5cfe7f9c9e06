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
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyWallet is a Wallet holding a single private key and talking to a plain
// node. It cannot change chains: SwitchChain only succeeds when the node is
// already on the requested chain.
type KeyWallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	backend Backend
}

// NewKeyWallet creates a wallet signing with key.
func NewKeyWallet(key *ecdsa.PrivateKey, backend Backend) *KeyWallet {
	return &KeyWallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey), backend: backend}
}

// OpenKeystoreWallet decrypts a JSON keyfile and creates a wallet from it.
func OpenKeystoreWallet(path, passphrase string, backend Backend) (*KeyWallet, error) {
	keyjson, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyfile: %w", err)
	}
	key, err := keystore.DecryptKey(keyjson, passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypt keyfile: %w", err)
	}
	return NewKeyWallet(key.PrivateKey, backend), nil
}

func (w *KeyWallet) RequestAccounts(context.Context) ([]common.Address, error) {
	return []common.Address{w.address}, nil
}

func (w *KeyWallet) Accounts(context.Context) ([]common.Address, error) {
	return []common.Address{w.address}, nil
}

func (w *KeyWallet) ChainID(ctx context.Context) (*big.Int, error) {
	return w.backend.ChainID(ctx)
}

func (w *KeyWallet) SwitchChain(ctx context.Context, chainID *big.Int) error {
	have, err := w.backend.ChainID(ctx)
	if err != nil {
		return err
	}
	if have.Cmp(chainID) != 0 {
		return fmt.Errorf("%w: node serves chain %v, want %v", ErrWrongChain, have, chainID)
	}
	return nil
}

// AddChain is a no-op: the chain is whatever the node serves.
func (w *KeyWallet) AddChain(context.Context, AddChainParams) error { return nil }

func (w *KeyWallet) Backend() Backend { return w.backend }

func (w *KeyWallet) Signer(_ context.Context, account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	if account != w.address {
		return nil, bind.ErrNotAuthorized
	}
	return bind.NewKeyedTransactorWithChainID(w.key, chainID)
}
