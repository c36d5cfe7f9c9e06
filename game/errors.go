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
	"errors"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// Errors returned by the session and the action executor.
var (
	ErrNoWallet            = errors.New("game: no wallet provider available")
	ErrNoAccounts          = errors.New("game: wallet returned no accounts")
	ErrNotConnected        = errors.New("game: wallet not connected")
	ErrWrongChain          = errors.New("game: wallet is on the wrong chain")
	ErrUserRejected        = errors.New("game: request rejected by user")
	ErrAllStrategiesFailed = errors.New("game: every strategy failed")
	ErrUnsupported         = errors.New("game: operation not supported by deployed contracts")
	ErrUnknownQuest        = errors.New("game: unknown quest")
	ErrQuestCompleted      = errors.New("game: quest already completed")
	ErrInvalidWeather      = errors.New("game: invalid weather type")
)

// EIP-1193 provider error codes.
const (
	codeUserRejected = 4001
	codeUnknownChain = 4902

	codeMethodNotFound = -32601 // JSON-RPC: endpoint is a node, not a wallet
)

func rpcErrorCode(err error) (int, bool) {
	var rerr rpc.Error
	if errors.As(err, &rerr) {
		return rerr.ErrorCode(), true
	}
	return 0, false
}

// IsUserRejection reports whether err means the user declined to sign.
func IsUserRejection(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUserRejected) {
		return true
	}
	if code, ok := rpcErrorCode(err); ok && code == codeUserRejected {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "action_rejected") ||
		strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "user denied")
}

// isUnknownChain reports whether a switch request failed because the wallet
// has no definition for the chain.
func isUnknownChain(err error) bool {
	if code, ok := rpcErrorCode(err); ok && code == codeUnknownChain {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unrecognized chain") || strings.Contains(msg, "unknown chain")
}

// isMissingWallet reports whether an account request failed because nothing
// wallet-like answered: the endpoint was unreachable, or it does not serve
// eth_requestAccounts.
func isMissingWallet(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := rpcErrorCode(err); ok {
		return code == codeMethodNotFound
	}
	var (
		herr rpc.HTTPError
		nerr net.Error
	)
	return errors.As(err, &herr) || errors.As(err, &nerr)
}
