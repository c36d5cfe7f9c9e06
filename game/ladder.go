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
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Strategy names that are not capabilities.
const (
	StrategyProofTransfer = "proof_transfer"
	StrategyDemo          = "demo"
)

// demoPrefix marks fabricated transaction hashes.
var demoPrefix = []byte("demo")

// randReader supplies the random part of demo hashes.
var randReader io.Reader = rand.Reader

// Strategy is one rung of the ladder: a named way of carrying out an action
// that yields a transaction hash.
type Strategy struct {
	Name string
	Run  func(ctx context.Context) (common.Hash, error)
}

// Attempt records a rung that failed.
type Attempt struct {
	Strategy string `json:"strategy"`
	Error    string `json:"error"`
}

// Outcome is the result of running an action through the ladder.
type Outcome struct {
	Action   string      `json:"action"`
	Strategy string      `json:"strategy"`
	TxHash   common.Hash `json:"txHash"`
	Real     bool        `json:"real"` // false for demo results
	Attempts []Attempt   `json:"attempts,omitempty"`
}

// Ladder executes strategies in order and stops at the first success.
//
// A user rejection at any rung ends the run with ErrUserRejected and no
// further rung is tried. Any other failure moves on to the next rung. When
// every rung failed the ladder either fabricates a demo outcome or, in strict
// mode, returns ErrAllStrategiesFailed.
//
// Rungs are not idempotent: a rung that failed after broadcasting may leave
// a transaction behind that a later rung duplicates.
type Ladder struct {
	strict bool
}

// NewLadder creates a ladder. With strict set, exhaustion is an error.
func NewLadder(strict bool) *Ladder {
	return &Ladder{strict: strict}
}

// Run executes action through strategies.
func (l *Ladder) Run(ctx context.Context, action string, strategies []Strategy) (*Outcome, error) {
	out := &Outcome{Action: action}
	var lastErr error
	for _, st := range strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("Trying strategy", "action", action, "strategy", st.Name)
		hash, err := st.Run(ctx)
		if err == nil {
			out.Strategy, out.TxHash, out.Real = st.Name, hash, true
			return out, nil
		}
		if IsUserRejection(err) {
			log.Info("Action rejected by user", "action", action, "strategy", st.Name)
			return nil, fmt.Errorf("%w: %s: %v", ErrUserRejected, action, err)
		}
		log.Warn("Strategy failed", "action", action, "strategy", st.Name, "err", err)
		out.Attempts = append(out.Attempts, Attempt{Strategy: st.Name, Error: err.Error()})
		lastErr = err
	}
	if l.strict {
		if lastErr == nil {
			lastErr = ErrUnsupported
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrAllStrategiesFailed, action, lastErr)
	}
	log.Warn("All strategies failed, using demo result", "action", action, "attempts", len(out.Attempts))
	hash, err := demoHash()
	if err != nil {
		return nil, fmt.Errorf("demo result for %s: %w", action, err)
	}
	out.Strategy, out.TxHash, out.Real = StrategyDemo, hash, false
	return out, nil
}

// demoHash returns a random hash starting with "demo", which cannot be
// confused with a mined transaction.
func demoHash() (common.Hash, error) {
	var h common.Hash
	if _, err := io.ReadFull(randReader, h[len(demoPrefix):]); err != nil {
		return common.Hash{}, fmt.Errorf("read random bytes: %w", err)
	}
	copy(h[:], demoPrefix)
	return h, nil
}

// IsDemoHash reports whether h was fabricated by a demo outcome.
func IsDemoHash(h common.Hash) bool {
	return bytes.HasPrefix(h[:], demoPrefix)
}
