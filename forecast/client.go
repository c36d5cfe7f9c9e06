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

package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultBaseURL is the OpenWeatherMap current-weather endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// windyThreshold is the wind speed (m/s) above which calm weather is
// reported as windy.
const windyThreshold = 10.0

// Errors returned by the provider client.
var (
	ErrNoAPIKey        = errors.New("forecast: no weather API key configured")
	ErrProviderFailed  = errors.New("forecast: weather provider request failed")
	ErrUnknownLocation = errors.New("forecast: location is required")
)

// Config holds the provider settings.
type Config struct {
	BaseURL    string
	APIKey     string
	CacheSize  int
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

type cached struct {
	report  Report
	expires time.Time
}

// Client fetches current weather from an OpenWeatherMap-compatible API.
// Responses are kept in an LRU cache keyed by location until CacheTTL passes.
type Client struct {
	config Config
	client *http.Client
	cache  *lru.Cache
	now    func() time.Time
}

// NewClient creates a provider client. An empty API key is allowed: every
// Fetch then fails with ErrNoAPIKey and Current falls back to demo weather.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 64
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = 10 * time.Minute
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	cache, err := lru.New(config.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Client{config: config, client: client, cache: cache, now: time.Now}, nil
}

// owmResponse is the subset of the OpenWeatherMap payload the game uses.
type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Message string `json:"message"`
}

// Fetch returns the provider's current weather for location.
func (c *Client) Fetch(ctx context.Context, location string) (*Report, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrUnknownLocation
	}
	key := strings.ToLower(location)
	if v, ok := c.cache.Get(key); ok {
		entry := v.(cached)
		if c.now().Before(entry.expires) {
			report := entry.report
			return &report, nil
		}
		c.cache.Remove(key)
	}
	if c.config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.config.APIKey)
	q.Set("units", "metric")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	defer resp.Body.Close()

	var body owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrProviderFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d msg=%s", ErrProviderFailed, resp.StatusCode, body.Message)
	}
	if len(body.Weather) == 0 {
		return nil, fmt.Errorf("%w: empty weather list", ErrProviderFailed)
	}

	name := body.Name
	if name == "" {
		name = location
	}
	report := Report{
		Type:         classify(body.Weather[0].Main, body.Wind.Speed),
		TemperatureC: body.Main.Temp,
		Humidity:     body.Main.Humidity,
		WindSpeed:    body.Wind.Speed,
		Location:     name,
		Description:  body.Weather[0].Description,
		Source:       SourceAPI,
		FetchedAt:    c.now(),
	}
	c.cache.Add(key, cached{report: report, expires: report.FetchedAt.Add(c.config.CacheTTL)})
	return &report, nil
}

// Current returns the provider's weather, or fabricated weather if the
// provider cannot answer.
func (c *Client) Current(ctx context.Context, location string) *Report {
	report, err := c.Fetch(ctx, location)
	if err != nil {
		log.Debug("Weather provider unavailable, using demo weather", "location", location, "err", err)
		return Fabricate(location)
	}
	return report
}

// classify maps an OpenWeatherMap condition group onto the game's types.
func classify(main string, wind float64) Type {
	var t Type
	switch strings.ToLower(main) {
	case "clear":
		t = Sunny
	case "clouds":
		t = Cloudy
	case "rain", "drizzle":
		return Rainy
	case "thunderstorm", "squall", "tornado":
		return Stormy
	case "snow":
		return Snowy
	case "mist", "fog", "haze", "smoke", "dust", "sand", "ash":
		return Foggy
	default:
		t = Cloudy
	}
	if wind > windyThreshold {
		return Windy
	}
	return t
}

var demoDescriptions = [NumTypes]string{
	"clear sky", "broken clouds", "moderate rain", "thunderstorm", "light snow", "dense fog", "strong breeze",
}

// Fabricate makes up plausible weather for location.
func Fabricate(location string) *Report {
	t := Type(rand.Intn(NumTypes))
	temp := float64(rand.Intn(35)) - 5
	if t == Snowy {
		temp = -float64(rand.Intn(10))
	}
	wind := float64(rand.Intn(9))
	if t == Windy || t == Stormy {
		wind += windyThreshold + 1
	}
	if location == "" {
		location = "Demo City"
	}
	return &Report{
		Type:         t,
		TemperatureC: temp,
		Humidity:     30 + rand.Intn(65),
		WindSpeed:    wind,
		Location:     location,
		Description:  demoDescriptions[t],
		Source:       SourceDemo,
		FetchedAt:    time.Now(),
	}
}
