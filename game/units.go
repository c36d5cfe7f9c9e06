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
	"errors"
	"math/big"
	"strings"
)

// ZeroBalance is the balance shown while no wallet is connected.
const ZeroBalance = "0.0"

// Token amounts.
var (
	// TokenUnit is one whole WEATHER token (18 decimals).
	TokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	// DefaultQuestReward is the reward used when approving or minting quest
	// payouts directly on the token: 10 WEATHER.
	DefaultQuestReward = new(big.Int).Mul(big.NewInt(10), TokenUnit)
)

// ErrNegativeAmount is returned when formatting a negative amount.
var ErrNegativeAmount = errors.New("game: amount cannot be negative")

// FormatUnits renders amount, expressed in base units, as a decimal string
// with the given number of decimals. Trailing zeros are trimmed but at least
// one fractional digit is kept, so 0 renders as "0.0" and 1e18 wei as "1.0".
func FormatUnits(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return ZeroBalance, nil
	}
	if amount.Sign() < 0 {
		return "", ErrNegativeAmount
	}
	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(amount, base, new(big.Int))
	if decimals == 0 {
		return whole.String() + ".0", nil
	}
	fs := frac.String()
	fs = strings.Repeat("0", int(decimals)-len(fs)) + fs
	fs = strings.TrimRight(fs, "0")
	if fs == "" {
		fs = "0"
	}
	return whole.String() + "." + fs, nil
}

// formatBalance is FormatUnits for display paths, where a bad value shows
// as the zero sentinel.
func formatBalance(amount *big.Int, decimals uint8) string {
	s, err := FormatUnits(amount, decimals)
	if err != nil {
		return ZeroBalance
	}
	return s
}
