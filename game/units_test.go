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
	"math/big"
	"testing"
)

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{nil, 18, "0.0"},
		{big.NewInt(0), 18, "0.0"},
		{TokenUnit, 18, "1.0"},
		{DefaultQuestReward, 18, "10.0"},
		{big.NewInt(1), 18, "0.000000000000000001"},
		{big.NewInt(1500000), 6, "1.5"},
		{big.NewInt(42), 0, "42.0"},
		{new(big.Int).Add(TokenUnit, big.NewInt(250000000000000000)), 18, "1.25"},
	}
	for _, tt := range tests {
		have, err := FormatUnits(tt.amount, tt.decimals)
		if err != nil {
			t.Fatalf("FormatUnits(%v, %d): %v", tt.amount, tt.decimals, err)
		}
		if have != tt.want {
			t.Errorf("FormatUnits(%v, %d) = %q, want %q", tt.amount, tt.decimals, have, tt.want)
		}
	}
}

func TestFormatUnitsNegative(t *testing.T) {
	if _, err := FormatUnits(big.NewInt(-1), 18); err != ErrNegativeAmount {
		t.Fatalf("have %v, want %v", err, ErrNegativeAmount)
	}
	if s := formatBalance(big.NewInt(-1), 18); s != ZeroBalance {
		t.Fatalf("display of negative amount: %q", s)
	}
}
