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

// Oracle wraps the on-chain WeatherOracle contract.
type Oracle struct {
	boundContract
}

// NewOracle binds an already-deployed WeatherOracle.
func NewOracle(addr common.Address, backend bind.ContractBackend) (*Oracle, error) {
	b, err := newBoundContract(contract.WeatherOracleABI, addr, backend)
	if err != nil {
		return nil, err
	}
	return &Oracle{b}, nil
}

// OracleWeather is the oracle's current weather record.
type OracleWeather struct {
	WeatherType uint8
	Temperature *big.Int
	Humidity    *big.Int
	WindSpeed   *big.Int
	Timestamp   *big.Int
}

// GetCurrentWeather reads the weather the oracle last recorded.
func (o *Oracle) GetCurrentWeather(opts *bind.CallOpts) (*OracleWeather, error) {
	var out []interface{}
	if err := o.contract.Call(opts, &out, "getCurrentWeather"); err != nil {
		return nil, err
	}
	return &OracleWeather{
		WeatherType: out[0].(uint8),
		Temperature: out[1].(*big.Int),
		Humidity:    out[2].(*big.Int),
		WindSpeed:   out[3].(*big.Int),
		Timestamp:   out[4].(*big.Int),
	}, nil
}

// UpdateWeather forces the oracle to a given weather type.
func (o *Oracle) UpdateWeather(opts *bind.TransactOpts, weatherType uint8) (*types.Transaction, error) {
	return o.contract.Transact(opts, "updateWeather", weatherType)
}

// RequestWeatherUpdate asks the oracle to roll new weather.
func (o *Oracle) RequestWeatherUpdate(opts *bind.TransactOpts) (*types.Transaction, error) {
	return o.contract.Transact(opts, "requestWeatherUpdate")
}
