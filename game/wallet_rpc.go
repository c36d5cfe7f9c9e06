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
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// RPC method names of the injected-wallet surface.
const (
	methodRequestAccounts = "eth_requestAccounts"
	methodAccounts        = "eth_accounts"
	methodChainID         = "eth_chainId"
	methodSwitchChain     = "wallet_switchEthereumChain"
	methodAddChain        = "wallet_addEthereumChain"
	methodSignTransaction = "eth_signTransaction"
)

// RPCWallet is a Wallet reached over JSON-RPC, such as a node with unlocked
// accounts, Clef, or a desktop wallet exposing an EIP-1193 endpoint. The same
// connection serves wallet requests and chain reads.
type RPCWallet struct {
	client  *rpc.Client
	backend *ethclient.Client
}

// DialRPCWallet connects to a wallet endpoint. HTTP endpoints are dialled
// lazily, so an unreachable endpoint or one that is a plain node usually
// surfaces as ErrNoWallet from Session.Connect rather than here.
func DialRPCWallet(ctx context.Context, endpoint string) (*RPCWallet, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoWallet, err)
	}
	return NewRPCWallet(client), nil
}

// NewRPCWallet wraps an existing RPC client.
func NewRPCWallet(client *rpc.Client) *RPCWallet {
	return &RPCWallet{client: client, backend: ethclient.NewClient(client)}
}

func (w *RPCWallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := w.client.CallContext(ctx, &accounts, methodRequestAccounts)
	return accounts, err
}

func (w *RPCWallet) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	err := w.client.CallContext(ctx, &accounts, methodAccounts)
	return accounts, err
}

func (w *RPCWallet) ChainID(ctx context.Context) (*big.Int, error) {
	var id hexutil.Big
	if err := w.client.CallContext(ctx, &id, methodChainID); err != nil {
		return nil, err
	}
	return (*big.Int)(&id), nil
}

// switchChainParams is the wallet_switchEthereumChain payload (EIP-3326).
type switchChainParams struct {
	ChainID string `json:"chainId"`
}

func (w *RPCWallet) SwitchChain(ctx context.Context, chainID *big.Int) error {
	return w.client.CallContext(ctx, nil, methodSwitchChain, switchChainParams{ChainID: hexutil.EncodeBig(chainID)})
}

func (w *RPCWallet) AddChain(ctx context.Context, params AddChainParams) error {
	return w.client.CallContext(ctx, nil, methodAddChain, params)
}

func (w *RPCWallet) Backend() Backend { return w.backend }

// Signer returns options whose signing is delegated to the wallet through
// eth_signTransaction, so the key never leaves it. Signing requests are
// bound to ctx.
func (w *RPCWallet) Signer(ctx context.Context, account common.Address, chainID *big.Int) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{
		From:    account,
		Context: ctx,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if addr != account {
				return nil, bind.ErrNotAuthorized
			}
			return w.signTransaction(ctx, addr, tx, chainID)
		},
	}, nil
}

// signTxResult mirrors the node's SignTransactionResult.
type signTxResult struct {
	Raw hexutil.Bytes `json:"raw"`
}

func (w *RPCWallet) signTransaction(ctx context.Context, from common.Address, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	args := map[string]interface{}{
		"from":    from,
		"to":      tx.To(),
		"gas":     hexutil.Uint64(tx.Gas()),
		"value":   (*hexutil.Big)(tx.Value()),
		"nonce":   hexutil.Uint64(tx.Nonce()),
		"input":   hexutil.Bytes(tx.Data()),
		"chainId": (*hexutil.Big)(chainID),
	}
	if tx.Type() == types.DynamicFeeTxType {
		args["maxFeePerGas"] = (*hexutil.Big)(tx.GasFeeCap())
		args["maxPriorityFeePerGas"] = (*hexutil.Big)(tx.GasTipCap())
	} else {
		args["gasPrice"] = (*hexutil.Big)(tx.GasPrice())
	}
	var res signTxResult
	if err := w.client.CallContext(ctx, &res, methodSignTransaction, args); err != nil {
		return nil, err
	}
	signed := new(types.Transaction)
	if err := signed.UnmarshalBinary(res.Raw); err != nil {
		return nil, fmt.Errorf("decode signed transaction: %w", err)
	}
	return signed, nil
}

// Close drops the connection.
func (w *RPCWallet) Close() { w.client.Close() }
