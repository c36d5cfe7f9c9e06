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
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Somnia Testnet defaults.
const (
	DefaultChainID        = 50312
	DefaultChainName      = "Somnia Testnet"
	DefaultRPCURL         = "https://dream-rpc.somnia.network"
	DefaultExplorerURL    = "https://shannon-explorer.somnia.network"
	DefaultCurrencySymbol = "STT"

	DefaultBalanceInterval    = 30 * time.Second
	DefaultWalletPollInterval = 4 * time.Second
)

// Duration is a time.Duration that reads and writes as "30s" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// ChainConfig describes the one network the game runs on.
type ChainConfig struct {
	ID               uint64 `toml:"id" yaml:"id"`
	Name             string `toml:"name" yaml:"name"`
	RPCURL           string `toml:"rpc_url" yaml:"rpc_url"`
	ExplorerURL      string `toml:"explorer_url" yaml:"explorer_url"`
	CurrencyName     string `toml:"currency_name" yaml:"currency_name"`
	CurrencySymbol   string `toml:"currency_symbol" yaml:"currency_symbol"`
	CurrencyDecimals uint8  `toml:"currency_decimals" yaml:"currency_decimals"`
}

// ContractConfig is the deployment of one game contract. Capabilities lists
// the operations the client may invoke on it; they are further narrowed at
// connect time by inspecting the deployed bytecode.
type ContractConfig struct {
	Address      string       `toml:"address" yaml:"address"`
	Capabilities []Capability `toml:"capabilities" yaml:"capabilities"`
}

// WeatherConfig configures the external weather provider.
type WeatherConfig struct {
	APIKey    string   `toml:"api_key" yaml:"api_key"`
	BaseURL   string   `toml:"base_url" yaml:"base_url"`
	Location  string   `toml:"location" yaml:"location"`
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// Config is the complete client configuration. It is handed to the session
// and the service at construction and never mutated afterwards.
type Config struct {
	Chain     ChainConfig               `toml:"chain" yaml:"chain"`
	Contracts map[string]ContractConfig `toml:"contracts" yaml:"contracts"`

	// StrictErrors makes the action ladder return ErrAllStrategiesFailed
	// instead of fabricating a demo success.
	StrictErrors bool `toml:"strict_errors" yaml:"strict_errors"`

	// ProofTransfer puts a zero-value self-transfer at the top of every
	// ladder so each action yields a real transaction hash.
	ProofTransfer bool `toml:"proof_transfer" yaml:"proof_transfer"`

	BalanceInterval    Duration `toml:"balance_interval" yaml:"balance_interval"`
	WalletPollInterval Duration `toml:"wallet_poll_interval" yaml:"wallet_poll_interval"`

	Weather WeatherConfig `toml:"weather" yaml:"weather"`

	// Store is the local cache location, see store.OpenStorage.
	Store string `toml:"store" yaml:"store"`
}

// DefaultConfig returns settings for Somnia Testnet. The contract addresses
// are placeholders and must be replaced with the real deployment.
func DefaultConfig() Config {
	cfg := Config{
		Chain: ChainConfig{
			ID:               DefaultChainID,
			Name:             DefaultChainName,
			RPCURL:           DefaultRPCURL,
			ExplorerURL:      DefaultExplorerURL,
			CurrencyName:     "Somnia Test Token",
			CurrencySymbol:   DefaultCurrencySymbol,
			CurrencyDecimals: 18,
		},
		// Placeholder addresses, not deployed contracts. Override them in the
		// config file.
		Contracts: map[string]ContractConfig{
			string(WeatherOracle):   {Address: "0x8f8c8a9a0b2a7e3c4d5e6f708192a3b4c5d6e7f8"},
			string(WeatherToken):    {Address: "0x1a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d"},
			string(QuestManager):    {Address: "0x5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f"},
			string(WeatherNFT):      {Address: "0x9e8d7c6b5a49382716f5e4d3c2b1a09f8e7d6c5b"},
			string(MultiplayerSync): {Address: "0x2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e"},
		},
		StrictErrors:       false,
		ProofTransfer:      true,
		BalanceInterval:    Duration(DefaultBalanceInterval),
		WalletPollInterval: Duration(DefaultWalletPollInterval),
		Weather: WeatherConfig{
			Location:  "London",
			CacheSize: 64,
			CacheTTL:  Duration(10 * time.Minute),
		},
		Store: "file:" + filepath.Join(defaultDataDir(), "state.json"),
	}
	return cfg.withDefaults()
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "weatherquest")
	}
	return ".weatherquest"
}

// LoadConfig reads a TOML or YAML file on top of DefaultConfig and then
// applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.NewDecoder(file).Decode(&cfg)
		case ".yaml", ".yml":
			err = yaml.NewDecoder(file).Decode(&cfg)
		default:
			err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg = cfg.withDefaults()
	return cfg, cfg.Validate()
}

type envOverrides struct {
	RPCURL   string `env:"WEATHERQUEST_RPC_URL"`
	APIKey   string `env:"WEATHERQUEST_WEATHER_API_KEY"`
	Location string `env:"WEATHERQUEST_LOCATION"`
	Strict   string `env:"WEATHERQUEST_STRICT_ERRORS"`
	Store    string `env:"WEATHERQUEST_STORE"`
}

// ApplyEnv overrides cfg with any WEATHERQUEST_* variables that are set.
func ApplyEnv(cfg *Config) error {
	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if e.RPCURL != "" {
		cfg.Chain.RPCURL = e.RPCURL
	}
	if e.APIKey != "" {
		cfg.Weather.APIKey = e.APIKey
	}
	if e.Location != "" {
		cfg.Weather.Location = e.Location
	}
	if e.Store != "" {
		cfg.Store = e.Store
	}
	if e.Strict != "" {
		strict, err := strconv.ParseBool(e.Strict)
		if err != nil {
			return fmt.Errorf("parse env: WEATHERQUEST_STRICT_ERRORS: %w", err)
		}
		cfg.StrictErrors = strict
	}
	return nil
}

// withDefaults returns a deep copy of c with empty capability lists filled in.
func (c Config) withDefaults() Config {
	contracts := make(map[string]ContractConfig, len(c.Contracts))
	for name, cc := range c.Contracts {
		caps := append([]Capability(nil), cc.Capabilities...)
		if len(caps) == 0 {
			caps = DefaultCapabilities(ContractName(name))
		}
		contracts[name] = ContractConfig{Address: cc.Address, Capabilities: caps}
	}
	c.Contracts = contracts
	return c
}

// Validate checks the configuration for values the session cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Chain.ID == 0 {
		errs = append(errs, errors.New("chain id must be set"))
	}
	if c.Chain.RPCURL == "" {
		errs = append(errs, errors.New("chain rpc url must be set"))
	}
	if c.BalanceInterval <= 0 || c.WalletPollInterval <= 0 {
		errs = append(errs, errors.New("poll intervals must be positive"))
	}
	for name, cc := range c.Contracts {
		if !common.IsHexAddress(cc.Address) {
			errs = append(errs, fmt.Errorf("contract %s: invalid address %q", name, cc.Address))
		}
		for _, op := range cc.Capabilities {
			if !op.Valid() {
				errs = append(errs, fmt.Errorf("contract %s: unknown capability %q", name, op))
			} else if op.Contract() != ContractName(name) {
				errs = append(errs, fmt.Errorf("contract %s: capability %q belongs to %s", name, op, op.Contract()))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ChainID returns the configured chain id as a big integer.
func (c Config) ChainID() *big.Int { return new(big.Int).SetUint64(c.Chain.ID) }

// ContractAddress returns the normalised address of a contract. Configured
// addresses may use any checksum casing.
func (c Config) ContractAddress(name ContractName) (common.Address, error) {
	cc, ok := c.Contracts[string(name)]
	if !ok {
		return common.Address{}, fmt.Errorf("contract %s not configured", name)
	}
	if !common.IsHexAddress(cc.Address) {
		return common.Address{}, fmt.Errorf("contract %s: invalid address %q", name, cc.Address)
	}
	return common.HexToAddress(cc.Address), nil
}

// Capabilities returns the statically configured capabilities of a contract.
func (c Config) Capabilities(name ContractName) []Capability {
	return append([]Capability(nil), c.Contracts[string(name)].Capabilities...)
}

// AddChainParams is the wallet_addEthereumChain payload (EIP-3085).
type AddChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls,omitempty"`
}

// NativeCurrency describes the chain's gas token.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// AddChainParams builds the chain definition offered to wallets that do not
// know the configured chain.
func (c Config) AddChainParams() AddChainParams {
	p := AddChainParams{
		ChainID:   hexutil.EncodeUint64(c.Chain.ID),
		ChainName: c.Chain.Name,
		NativeCurrency: NativeCurrency{
			Name:     c.Chain.CurrencyName,
			Symbol:   c.Chain.CurrencySymbol,
			Decimals: c.Chain.CurrencyDecimals,
		},
		RPCURLs: []string{c.Chain.RPCURL},
	}
	if c.Chain.ExplorerURL != "" {
		p.BlockExplorerURLs = []string{c.Chain.ExplorerURL}
	}
	return p
}
