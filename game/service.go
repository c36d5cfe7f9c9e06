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
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/store"
)

// Chain is the on-chain side of the game as the service sees it. *Session
// implements it.
type Chain interface {
	Connect(ctx context.Context) error
	Disconnect()
	Snapshot() Snapshot
	Supports(op Capability) bool
	RefreshBalances(ctx context.Context) error

	SelfTransfer(ctx context.Context) (common.Hash, error)
	Invoke(ctx context.Context, call Call) (common.Hash, error)
	OracleWeather(ctx context.Context) (*forecast.Report, error)
}

// Reader is the read-only surface of the game.
type Reader interface {
	Status() Snapshot
	CurrentWeather(ctx context.Context, location string) *forecast.Report
	Quests() []QuestStatus
	AvailableQuests(weather forecast.Type) []Quest
	CompletedQuests() []string
	NFTs() []store.NFTRecord
}

// Writer is the state-changing surface of the game.
type Writer interface {
	Connect(ctx context.Context) (Snapshot, error)
	Disconnect()
	CompleteQuest(ctx context.Context, id string) (*Outcome, error)
	MintNFT(ctx context.Context, weather forecast.Type) (*MintResult, error)
	UpdateWeather(ctx context.Context, weather forecast.Type) (*Outcome, error)
	JoinMultiplayer(ctx context.Context) (*Outcome, error)
	LeaveMultiplayer(ctx context.Context) (*Outcome, error)
	ClearAll(ctx context.Context) error
}

// ReadWriter is the full game surface.
type ReadWriter interface {
	Reader
	Writer
}

// Action names reported in outcomes.
const (
	ActionCompleteQuest    = "completeQuest"
	ActionMintNFT          = "mintNFT"
	ActionUpdateWeather    = "updateWeather"
	ActionJoinMultiplayer  = "joinMultiplayer"
	ActionLeaveMultiplayer = "leaveMultiplayer"
)

// Service ties the chain session, the action ladder, the local cache and the
// weather provider together.
type Service struct {
	cfg     Config
	chain   Chain
	cache   *store.Cache
	weather *forecast.Client
	ladder  *Ladder
	roll    func(n int) int
}

// NewService creates a game service. weather may be nil, in which case
// off-chain weather is always fabricated.
func NewService(cfg Config, chain Chain, cache *store.Cache, weather *forecast.Client) *Service {
	return &Service{
		cfg:     cfg,
		chain:   chain,
		cache:   cache,
		weather: weather,
		ladder:  NewLadder(cfg.StrictErrors),
		roll:    rand.Intn,
	}
}

// ──────────────────────────────────────────────
//  Session
// ──────────────────────────────────────────────

// Connect connects the wallet and returns the resulting state.
func (s *Service) Connect(ctx context.Context) (Snapshot, error) {
	if err := s.chain.Connect(ctx); err != nil {
		return s.chain.Snapshot(), err
	}
	return s.chain.Snapshot(), nil
}

// Disconnect drops the wallet session. The local cache is kept.
func (s *Service) Disconnect() { s.chain.Disconnect() }

// Status returns the session state.
func (s *Service) Status() Snapshot { return s.chain.Snapshot() }

// ──────────────────────────────────────────────
//  Actions
// ──────────────────────────────────────────────

// strategies builds a ladder: the proof transfer if enabled, then each call
// whose capability resolved, in the order given.
func (s *Service) strategies(calls ...Call) []Strategy {
	var out []Strategy
	if s.cfg.ProofTransfer {
		out = append(out, Strategy{Name: StrategyProofTransfer, Run: s.chain.SelfTransfer})
	}
	for _, call := range calls {
		if !s.chain.Supports(call.Capability) {
			continue
		}
		call := call
		out = append(out, Strategy{
			Name: string(call.Capability),
			Run: func(ctx context.Context) (common.Hash, error) {
				return s.chain.Invoke(ctx, call)
			},
		})
	}
	return out
}

func (s *Service) requireConnected() (Snapshot, error) {
	snap := s.chain.Snapshot()
	if !snap.Connected {
		return snap, ErrNotConnected
	}
	return snap, nil
}

// refresh re-reads balances after an action. Failures only affect display.
func (s *Service) refresh(ctx context.Context) {
	if err := s.chain.RefreshBalances(ctx); err != nil {
		log.Debug("Balance refresh after action failed", "err", err)
	}
}

// CompleteQuest completes a quest and records it locally. The proper
// completeQuest call is preferred; reward claims and token operations are
// tried after it.
func (s *Service) CompleteQuest(ctx context.Context, id string) (*Outcome, error) {
	q, err := LookupQuest(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireConnected(); err != nil {
		return nil, err
	}
	if s.cache.IsCompleted(q.ID) {
		return nil, fmt.Errorf("%w: %s", ErrQuestCompleted, q.ID)
	}
	number := new(big.Int).SetUint64(q.Number)
	calls := []Call{
		{Capability: CapCompleteQuest, Quest: number},
		{Capability: CapClaimReward, Quest: number},
		{Capability: CapFaucet},
		{Capability: CapClaim},
	}
	if spender, err := s.cfg.ContractAddress(QuestManager); err == nil {
		calls = append(calls, Call{Capability: CapApprove, Spender: spender, Amount: DefaultQuestReward})
	}
	calls = append(calls, Call{Capability: CapTokenMint, Amount: DefaultQuestReward})

	out, err := s.ladder.Run(ctx, ActionCompleteQuest, s.strategies(calls...))
	if err != nil {
		return nil, err
	}
	if _, err := s.cache.MarkCompleted(ctx, q.ID); err != nil {
		return out, fmt.Errorf("record quest %s: %w", q.ID, err)
	}
	log.Info("Quest completed", "quest", q.ID, "number", q.Number, "strategy", out.Strategy, "tx", out.TxHash, "real", out.Real)
	s.refresh(ctx)
	return out, nil
}

// MintNFT mints a weather NFT for the given weather and appends it to the
// local collection with a randomly rolled rarity.
func (s *Service) MintNFT(ctx context.Context, weather forecast.Type) (*MintResult, error) {
	if !weather.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeather, weather)
	}
	if _, err := s.requireConnected(); err != nil {
		return nil, err
	}
	out, err := s.ladder.Run(ctx, ActionMintNFT, s.strategies(
		Call{Capability: CapMintWeatherNFT, Weather: uint8(weather)},
		Call{Capability: CapMint},
		Call{Capability: CapSafeMint},
		Call{Capability: CapMintTo},
		Call{Capability: CapClaim},
		Call{Capability: CapFaucet},
	))
	if err != nil {
		return nil, err
	}
	rec := store.NFTRecord{
		ID:       store.NewNFTID(),
		Category: weather.String(),
		Rarity:   rarityFor(s.roll(100)),
		MintedAt: time.Now(),
		IsReal:   out.Real,
		TxHash:   out.TxHash.Hex(),
		Strategy: out.Strategy,
	}
	if err := s.cache.AppendNFT(ctx, rec); err != nil {
		return &MintResult{Outcome: out, NFT: rec}, fmt.Errorf("record nft: %w", err)
	}
	log.Info("NFT minted", "id", rec.ID, "weather", rec.Category, "rarity", rec.Rarity, "strategy", out.Strategy, "tx", out.TxHash, "real", out.Real)
	s.refresh(ctx)
	return &MintResult{Outcome: out, NFT: rec}, nil
}

// UpdateWeather asks the oracle to move to the given weather, falling back
// to a plain update request.
func (s *Service) UpdateWeather(ctx context.Context, weather forecast.Type) (*Outcome, error) {
	if !weather.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWeather, weather)
	}
	if _, err := s.requireConnected(); err != nil {
		return nil, err
	}
	out, err := s.ladder.Run(ctx, ActionUpdateWeather, s.strategies(
		Call{Capability: CapUpdateWeather, Weather: uint8(weather)},
		Call{Capability: CapRequestWeather},
	))
	if err != nil {
		return nil, err
	}
	log.Info("Weather updated", "weather", weather, "strategy", out.Strategy, "tx", out.TxHash, "real", out.Real)
	return out, nil
}

// JoinMultiplayer registers the account with the multiplayer registry.
func (s *Service) JoinMultiplayer(ctx context.Context) (*Outcome, error) {
	if _, err := s.requireConnected(); err != nil {
		return nil, err
	}
	return s.ladder.Run(ctx, ActionJoinMultiplayer, s.strategies(Call{Capability: CapJoinSession}))
}

// LeaveMultiplayer removes the account from the multiplayer registry.
func (s *Service) LeaveMultiplayer(ctx context.Context) (*Outcome, error) {
	if _, err := s.requireConnected(); err != nil {
		return nil, err
	}
	return s.ladder.Run(ctx, ActionLeaveMultiplayer, s.strategies(Call{Capability: CapLeaveSession}))
}

// ClearAll wipes completed quests and minted NFTs from the local cache.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.cache.ClearAll(ctx); err != nil {
		return err
	}
	log.Info("Local game data cleared")
	return nil
}

// ──────────────────────────────────────────────
//  Reads
// ──────────────────────────────────────────────

// CurrentWeather returns the oracle's weather when connected, otherwise the
// provider's, otherwise fabricated weather. An empty location selects the
// configured one.
func (s *Service) CurrentWeather(ctx context.Context, location string) *forecast.Report {
	if location == "" {
		location = s.cfg.Weather.Location
	}
	if s.chain.Snapshot().Connected {
		report, err := s.chain.OracleWeather(ctx)
		if err == nil {
			report.Location = location
			return report
		}
		log.Debug("Oracle weather unavailable", "err", err)
	}
	if s.weather == nil {
		return forecast.Fabricate(location)
	}
	return s.weather.Current(ctx, location)
}

// Quests returns the quest board with local completion state.
func (s *Service) Quests() []QuestStatus {
	all := Quests()
	out := make([]QuestStatus, len(all))
	for i, q := range all {
		out[i] = QuestStatus{Quest: q, Completed: s.cache.IsCompleted(q.ID)}
	}
	return out
}

// AvailableQuests returns the uncompleted quests playable in weather.
func (s *Service) AvailableQuests(weather forecast.Type) []Quest {
	return QuestsFor(weather, s.cache.IsCompleted)
}

// CompletedQuests returns the ids of locally completed quests.
func (s *Service) CompletedQuests() []string { return s.cache.CompletedQuests() }

// NFTs returns the locally recorded NFTs in mint order.
func (s *Service) NFTs() []store.NFTRecord { return s.cache.NFTs() }
