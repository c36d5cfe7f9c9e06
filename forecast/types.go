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

// Package forecast models the weather the game reacts to and fetches it from
// an external HTTP provider, falling back to locally fabricated weather when
// the provider is unavailable.
package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Type mirrors the on-chain WeatherOracle weather enum.
type Type uint8

const (
	Sunny  Type = iota // clear sky
	Cloudy             // overcast
	Rainy              // rain or drizzle
	Stormy             // thunderstorm
	Snowy              // snow
	Foggy              // mist, fog, haze
	Windy              // strong wind
)

// NumTypes is the number of defined weather types.
const NumTypes = 7

var typeNames = [NumTypes]string{"sunny", "cloudy", "rainy", "stormy", "snowy", "foggy", "windy"}

// String returns the lower-case weather name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Valid reports whether t is one of the defined weather types.
func (t Type) Valid() bool { return t < NumTypes }

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("forecast: invalid weather type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType accepts the weather name ("stormy") or its short form ("storm").
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "sunny", "sun", "clear":
		return Sunny, nil
	case "cloudy", "cloud", "clouds":
		return Cloudy, nil
	case "rainy", "rain":
		return Rainy, nil
	case "stormy", "storm", "thunderstorm":
		return Stormy, nil
	case "snowy", "snow":
		return Snowy, nil
	case "foggy", "fog", "mist":
		return Foggy, nil
	case "windy", "wind":
		return Windy, nil
	}
	return 0, fmt.Errorf("forecast: unknown weather type %q", s)
}

// Source tells where a report came from.
type Source string

const (
	SourceAPI    Source = "api"
	SourceOracle Source = "oracle"
	SourceDemo   Source = "demo"
)

// Report is a single weather observation.
type Report struct {
	Type         Type      `json:"type"`
	TemperatureC float64   `json:"temperature_c"`
	Humidity     int       `json:"humidity"`
	WindSpeed    float64   `json:"wind_speed"` // m/s
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Source       Source    `json:"source"`
	FetchedAt    time.Time `json:"fetched_at"`
}
