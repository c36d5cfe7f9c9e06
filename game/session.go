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
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
	"golang.org/x/sync/errgroup"
)

// Session owns the connection to one wallet: the selected account, the
// node backend, the chain id, cached balances and the contracts bound for
// the account. Every account or chain change is handled by a full
// reconnect.
type Session struct {
	cfg    Config
	wallet Wallet

	connMu sync.Mutex // serialises connect and disconnect

	mu           sync.RWMutex
	account      common.Address
	backend      Backend
	chainID      *big.Int
	balance      string
	tokenBalance string
	nftBalance   uint64
	connected    bool
	contracts    *ContractSet
	epoch        uint64 // bumped on every connect and disconnect
}

// NewSession creates a disconnected session. A nil wallet is allowed; Connect
// then fails with ErrNoWallet.
func NewSession(cfg Config, wallet Wallet) *Session {
	return &Session{
		cfg:          cfg,
		wallet:       wallet,
		balance:      ZeroBalance,
		tokenBalance: ZeroBalance,
		contracts:    &ContractSet{},
	}
}

// Connect requests accounts from the wallet, moves it to the configured
// chain, binds the game contracts and reads the initial balances.
func (s *Session) Connect(ctx context.Context) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	return s.connect(ctx)
}

func (s *Session) connect(ctx context.Context) error {
	if s.wallet == nil {
		return ErrNoWallet
	}
	accounts, err := s.wallet.RequestAccounts(ctx)
	if err != nil {
		if IsUserRejection(err) {
			return fmt.Errorf("%w: %v", ErrUserRejected, err)
		}
		if isMissingWallet(err) {
			return fmt.Errorf("%w: %v", ErrNoWallet, err)
		}
		return fmt.Errorf("request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return ErrNoAccounts
	}
	account := accounts[0]
	chainID := s.cfg.ChainID()

	if err := s.ensureChain(ctx, chainID); err != nil {
		return err
	}
	if _, err := s.wallet.Signer(ctx, account, chainID); err != nil {
		return fmt.Errorf("signer: %w", err)
	}
	backend := s.wallet.Backend()
	contracts := bindContracts(ctx, s.cfg, backend)

	s.mu.Lock()
	s.epoch++
	s.account = account
	s.backend = backend
	s.chainID = chainID
	s.balance = ZeroBalance
	s.tokenBalance = ZeroBalance
	s.nftBalance = 0
	s.contracts = contracts
	s.connected = true
	s.mu.Unlock()

	log.Info("Wallet connected", "account", account, "chain", chainID, "contracts", contracts.Len(), "capabilities", len(contracts.Capabilities()))

	if err := s.RefreshBalances(ctx); err != nil {
		log.Warn("Failed to read balances", "account", account, "err", err)
	}
	return nil
}

// ensureChain moves the wallet to want, offering the chain definition first
// if the wallet does not know it.
func (s *Session) ensureChain(ctx context.Context, want *big.Int) error {
	if have, err := s.wallet.ChainID(ctx); err == nil && have.Cmp(want) == 0 {
		return nil
	}
	err := s.wallet.SwitchChain(ctx, want)
	switch {
	case err == nil:
		return nil
	case IsUserRejection(err):
		return fmt.Errorf("%w: %v", ErrUserRejected, err)
	case errors.Is(err, ErrWrongChain):
		return err
	case !isUnknownChain(err):
		return fmt.Errorf("%w: %v", ErrWrongChain, err)
	}
	log.Info("Adding chain to wallet", "chain", want, "name", s.cfg.Chain.Name)
	if err := s.wallet.AddChain(ctx, s.cfg.AddChainParams()); err != nil {
		if IsUserRejection(err) {
			return fmt.Errorf("%w: %v", ErrUserRejected, err)
		}
		return fmt.Errorf("add chain: %w", err)
	}
	if err := s.wallet.SwitchChain(ctx, want); err != nil {
		if IsUserRejection(err) {
			return fmt.Errorf("%w: %v", ErrUserRejected, err)
		}
		return fmt.Errorf("%w: %v", ErrWrongChain, err)
	}
	return nil
}

// Disconnect forgets the account and every derived value. Nothing is
// revoked on chain.
func (s *Session) Disconnect() {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	s.disconnect()
}

func (s *Session) disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		log.Info("Wallet disconnected", "account", s.account)
	}
	s.epoch++
	s.account = common.Address{}
	s.backend = nil
	s.chainID = nil
	s.balance = ZeroBalance
	s.tokenBalance = ZeroBalance
	s.nftBalance = 0
	s.connected = false
	s.contracts = &ContractSet{}
}

// HandleAccountsChanged reacts to the wallet exposing a different account
// list. An empty list disconnects; anything else reconnects from scratch.
func (s *Session) HandleAccountsChanged(ctx context.Context, accounts []common.Address) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	s.disconnect()
	if len(accounts) == 0 {
		return nil
	}
	log.Info("Wallet accounts changed, reconnecting", "account", accounts[0])
	return s.connect(ctx)
}

// HandleChainChanged reacts to the wallet moving to another chain with a
// full reconnect, which switches it back to the configured chain.
func (s *Session) HandleChainChanged(ctx context.Context, chainID *big.Int) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()

	log.Info("Wallet chain changed, reconnecting", "chain", chainID)
	s.disconnect()
	return s.connect(ctx)
}

// WatchWallet polls the wallet for account and chain changes until ctx is
// cancelled.
func (s *Session) WatchWallet(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.cfg.WalletPollInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.pollWallet(ctx); err != nil {
				log.Warn("Wallet reconnect failed", "err", err)
			}
		}
	}
}

// pollWallet runs one round of change detection.
func (s *Session) pollWallet(ctx context.Context) error {
	snap := s.Snapshot()
	if !snap.Connected || s.wallet == nil {
		return nil
	}
	accounts, err := s.wallet.Accounts(ctx)
	if err != nil {
		log.Debug("Failed to poll wallet accounts", "err", err)
		return nil
	}
	if len(accounts) == 0 || accounts[0] != snap.Account {
		return s.HandleAccountsChanged(ctx, accounts)
	}
	chainID, err := s.wallet.ChainID(ctx)
	if err != nil {
		log.Debug("Failed to poll wallet chain", "err", err)
		return nil
	}
	if !chainID.IsUint64() || chainID.Uint64() != snap.ChainID {
		return s.HandleChainChanged(ctx, chainID)
	}
	return nil
}

// RefreshBalances reads the native balance, the WEATHER token balance and
// the NFT count concurrently. Only the native balance is required; token and
// NFT reads fall back to zero. Results from a session that was replaced in
// the meantime are discarded.
func (s *Session) RefreshBalances(ctx context.Context) error {
	s.mu.RLock()
	if !s.connected {
		s.mu.RUnlock()
		return ErrNotConnected
	}
	account, backend, contracts, epoch := s.account, s.backend, s.contracts, s.epoch
	s.mu.RUnlock()

	var (
		native  *big.Int
		token   = ZeroBalance
		nftSize uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bal, err := backend.BalanceAt(gctx, account, nil)
		if err != nil {
			return fmt.Errorf("native balance: %w", err)
		}
		native = bal
		return nil
	})
	if contracts.Token != nil {
		g.Go(func() error {
			opts := &bind.CallOpts{Context: gctx}
			bal, err := contracts.Token.BalanceOf(opts, account)
			if err != nil {
				log.Debug("Failed to read token balance", "err", err)
				return nil
			}
			decimals, err := contracts.Token.Decimals(opts)
			if err != nil {
				decimals = 18
			}
			token = formatBalance(bal, decimals)
			return nil
		})
	}
	if contracts.NFT != nil {
		g.Go(func() error {
			n, err := contracts.NFT.BalanceOf(&bind.CallOpts{Context: gctx}, account)
			if err != nil {
				log.Debug("Failed to read NFT balance", "err", err)
				return nil
			}
			if n.IsUint64() {
				nftSize = n.Uint64()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || !s.connected {
		return nil
	}
	s.balance = formatBalance(native, s.cfg.Chain.CurrencyDecimals)
	s.tokenBalance = token
	s.nftBalance = nftSize
	return nil
}

// WatchBalances refreshes balances every BalanceInterval while connected,
// until ctx is cancelled.
func (s *Session) WatchBalances(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(s.cfg.BalanceInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.RefreshBalances(ctx)
			if err != nil && !errors.Is(err, ErrNotConnected) {
				log.Warn("Balance refresh failed", "err", err)
			}
		}
	}
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Account:      s.account,
		Balance:      s.balance,
		TokenBalance: s.tokenBalance,
		NFTBalance:   s.nftBalance,
		Connected:    s.connected,
		Contracts:    s.contracts.Names(),
		Capabilities: s.contracts.Capabilities(),
	}
	if s.chainID != nil && s.chainID.IsUint64() {
		snap.ChainID = s.chainID.Uint64()
	}
	return snap
}

// Supports reports whether the connected contracts resolved op.
func (s *Session) Supports(op Capability) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.connected && s.contracts.Supports(op)
}

// txContext is the part of the session a transaction needs.
type txContext struct {
	account   common.Address
	backend   Backend
	wallet    Wallet
	chainID   *big.Int
	contracts *ContractSet
}

func (s *Session) txContext() (txContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.connected {
		return txContext{}, ErrNotConnected
	}
	return txContext{s.account, s.backend, s.wallet, s.chainID, s.contracts}, nil
}

// transactOpts asks the wallet for signing options bound to ctx, so a
// cancelled action also abandons a pending signing request.
func (tc txContext) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := tc.wallet.Signer(ctx, tc.account, tc.chainID)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// SelfTransfer sends a zero-value transfer from the account to itself. It
// costs only base gas and always yields a real transaction hash.
func (s *Session) SelfTransfer(ctx context.Context) (common.Hash, error) {
	tc, err := s.txContext()
	if err != nil {
		return common.Hash{}, err
	}
	nonce, err := tc.backend.PendingNonceAt(ctx, tc.account)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}
	head, err := tc.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("head: %w", err)
	}
	to := tc.account
	var tx *types.Transaction
	if head.BaseFee != nil {
		tip, err := tc.backend.SuggestGasTipCap(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("gas tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   tc.chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       params.TxGas,
			To:        &to,
			Value:     new(big.Int),
		})
	} else {
		price, err := tc.backend.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("gas price: %w", err)
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: price,
			Gas:      params.TxGas,
			To:       &to,
			Value:    new(big.Int),
		})
	}
	opts, err := tc.transactOpts(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	signed, err := opts.Signer(tc.account, tx)
	if err != nil {
		return common.Hash{}, err
	}
	if err := tc.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, err
	}
	return signed.Hash(), nil
}

// Call is one contract invocation. Only the fields the capability needs are
// read; recipients are always the session account.
type Call struct {
	Capability Capability
	Quest      *big.Int       // complete_quest, claim_reward
	Weather    uint8          // mint_weather_nft, update_weather
	Spender    common.Address // approve
	Amount     *big.Int       // approve, token_mint
}

// Invoke sends call through the bound contracts. Capabilities that were not
// resolved at connect time fail with ErrUnsupported without touching the
// chain.
func (s *Session) Invoke(ctx context.Context, call Call) (common.Hash, error) {
	tc, err := s.txContext()
	if err != nil {
		return common.Hash{}, err
	}
	cs := tc.contracts
	if !cs.Supports(call.Capability) {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnsupported, call.Capability)
	}
	opts, err := tc.transactOpts(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	var tx *types.Transaction
	switch call.Capability {
	case CapCompleteQuest:
		tx, err = cs.Quests.CompleteQuest(opts, call.Quest)
	case CapClaimReward:
		tx, err = cs.Quests.ClaimReward(opts, call.Quest)
	case CapMintWeatherNFT:
		tx, err = cs.NFT.MintWeatherNFT(opts, tc.account, call.Weather)
	case CapMint:
		tx, err = cs.NFT.Mint(opts, tc.account)
	case CapSafeMint:
		tx, err = cs.NFT.SafeMint(opts, tc.account)
	case CapMintTo:
		tx, err = cs.NFT.MintTo(opts, tc.account)
	case CapTokenMint:
		tx, err = cs.Token.Mint(opts, tc.account, call.Amount)
	case CapFaucet:
		tx, err = cs.Token.Faucet(opts)
	case CapClaim:
		tx, err = cs.Token.Claim(opts)
	case CapApprove:
		tx, err = cs.Token.Approve(opts, call.Spender, call.Amount)
	case CapUpdateWeather:
		tx, err = cs.Oracle.UpdateWeather(opts, call.Weather)
	case CapRequestWeather:
		tx, err = cs.Oracle.RequestWeatherUpdate(opts)
	case CapJoinSession:
		tx, err = cs.Multiplayer.JoinSession(opts)
	case CapLeaveSession:
		tx, err = cs.Multiplayer.LeaveSession(opts)
	default:
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnsupported, call.Capability)
	}
	if err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}

// OracleWeather reads the weather currently recorded by the oracle contract.
func (s *Session) OracleWeather(ctx context.Context) (*forecast.Report, error) {
	tc, err := s.txContext()
	if err != nil {
		return nil, err
	}
	if tc.contracts.Oracle == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, WeatherOracle)
	}
	w, err := tc.contracts.Oracle.GetCurrentWeather(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, err
	}
	t := forecast.Type(w.WeatherType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeather, w.WeatherType)
	}
	report := &forecast.Report{
		Type:        t,
		Description: t.String(),
		Source:      forecast.SourceOracle,
		FetchedAt:   time.Now(),
	}
	if w.Temperature != nil {
		report.TemperatureC = float64(w.Temperature.Int64())
	}
	if w.Humidity != nil {
		report.Humidity = int(w.Humidity.Int64())
	}
	if w.WindSpeed != nil {
		report.WindSpeed = float64(w.WindSpeed.Int64())
	}
	if w.Timestamp != nil && w.Timestamp.Sign() > 0 {
		report.FetchedAt = time.Unix(w.Timestamp.Int64(), 0)
	}
	return report, nil
}

// ContractInfo is a summary of on-chain game state for the account.
type ContractInfo struct {
	TokenSymbol      string   `json:"tokenSymbol,omitempty"`
	NFTSupply        uint64   `json:"nftSupply"`
	ActivePlayers    uint64   `json:"activePlayers"`
	CompletedOnChain []string `json:"completedOnChain"`
}

// ContractInfo reads token, collection, registry and quest state. Contracts
// that cannot answer leave their fields empty.
func (s *Session) ContractInfo(ctx context.Context) (*ContractInfo, error) {
	tc, err := s.txContext()
	if err != nil {
		return nil, err
	}
	opts := &bind.CallOpts{Context: ctx}
	info := new(ContractInfo)
	if tc.contracts.Token != nil {
		if sym, err := tc.contracts.Token.Symbol(opts); err == nil {
			info.TokenSymbol = sym
		}
	}
	if tc.contracts.NFT != nil {
		if n, err := tc.contracts.NFT.TotalSupply(opts); err == nil && n.IsUint64() {
			info.NFTSupply = n.Uint64()
		}
	}
	if tc.contracts.Multiplayer != nil {
		if n, err := tc.contracts.Multiplayer.ActivePlayers(opts); err == nil && n.IsUint64() {
			info.ActivePlayers = n.Uint64()
		}
	}
	if tc.contracts.Quests != nil {
		for _, q := range quests {
			done, err := tc.contracts.Quests.IsQuestCompleted(opts, tc.account, new(big.Int).SetUint64(q.Number))
			if err != nil {
				log.Debug("Failed to read quest state", "quest", q.ID, "err", err)
				break
			}
			if done {
				info.CompletedOnChain = append(info.CompletedOnChain, q.ID)
			}
		}
	}
	return info, nil
}
