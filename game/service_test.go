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
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/store"
)

var errReverted = errors.New("execution reverted")

// fakeChain is a scripted Chain.
type fakeChain struct {
	mu          sync.Mutex
	connected   bool
	caps        map[Capability]bool
	failures    map[Capability]error
	transferErr error
	transfers   int
	calls       []Call
	oracle      *forecast.Report
	refreshes   int
}

func newFakeChain(caps ...Capability) *fakeChain {
	c := &fakeChain{connected: true, caps: make(map[Capability]bool), failures: make(map[Capability]error)}
	for _, op := range caps {
		c.caps[op] = true
	}
	return c
}

func (c *fakeChain) Connect(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	return nil
}

func (c *fakeChain) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
}

func (c *fakeChain) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{Connected: c.connected, Balance: ZeroBalance, TokenBalance: ZeroBalance}
	if c.connected {
		snap.Account = common.HexToAddress("0x00000000000000000000000000000000000000f1")
		snap.ChainID = DefaultChainID
	}
	return snap
}

func (c *fakeChain) Supports(op Capability) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected && c.caps[op]
}

func (c *fakeChain) RefreshBalances(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshes++
	return nil
}

func (c *fakeChain) SelfTransfer(context.Context) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transfers++
	if c.transferErr != nil {
		return common.Hash{}, c.transferErr
	}
	return common.HexToHash("0x7f"), nil
}

func (c *fakeChain) Invoke(_ context.Context, call Call) (common.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	if err := c.failures[call.Capability]; err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash([]byte{byte(len(c.calls))}), nil
}

func (c *fakeChain) OracleWeather(context.Context) (*forecast.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.oracle == nil {
		return nil, ErrUnsupported
	}
	r := *c.oracle
	return &r, nil
}

func (c *fakeChain) invoked() []Capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Capability
	for _, call := range c.calls {
		out = append(out, call.Capability)
	}
	return out
}

func newTestService(t *testing.T, cfg Config, chain Chain) (*Service, *store.Cache) {
	t.Helper()
	cache, err := store.Open(context.Background(), store.NewMemoryStorage())
	if err != nil {
		t.Fatal(err)
	}
	return NewService(cfg, chain, cache, nil), cache
}

func testConfig(proof, strict bool) Config {
	cfg := DefaultConfig()
	cfg.ProofTransfer = proof
	cfg.StrictErrors = strict
	return cfg
}

func TestCompleteQuestProofTransfer(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	svc, cache := newTestService(t, testConfig(true, false), chain)

	out, err := svc.CompleteQuest(context.Background(), "storm_1")
	if err != nil {
		t.Fatal(err)
	}
	if out.Strategy != StrategyProofTransfer || !out.Real || out.TxHash != common.HexToHash("0x7f") {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(chain.invoked()) != 0 {
		t.Fatalf("contract calls after successful proof transfer: %v", chain.invoked())
	}
	if !cache.IsCompleted("storm_1") {
		t.Fatal("quest not recorded")
	}
	if chain.refreshes != 1 {
		t.Fatalf("balances refreshed %d times", chain.refreshes)
	}
	if _, err := svc.CompleteQuest(context.Background(), "storm_1"); !errors.Is(err, ErrQuestCompleted) {
		t.Fatalf("second completion: %v", err)
	}
	if n := len(cache.CompletedQuests()); n != 1 {
		t.Fatalf("%d completed quests", n)
	}
}

func TestCompleteQuestCallsContract(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	svc, _ := newTestService(t, testConfig(false, false), chain)

	out, err := svc.CompleteQuest(context.Background(), "rain_2")
	if err != nil {
		t.Fatal(err)
	}
	if out.Strategy != string(CapCompleteQuest) || !out.Real {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(chain.calls) != 1 || chain.calls[0].Quest.Uint64() != 8 {
		t.Fatalf("unexpected calls %+v", chain.calls)
	}
}

func TestCompleteQuestFallsThrough(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	chain.failures[CapCompleteQuest] = errReverted
	chain.failures[CapClaimReward] = errReverted
	chain.failures[CapFaucet] = errReverted
	chain.failures[CapClaim] = errReverted
	svc, _ := newTestService(t, testConfig(false, false), chain)

	out, err := svc.CompleteQuest(context.Background(), "sun_1")
	if err != nil {
		t.Fatal(err)
	}
	if out.Strategy != string(CapApprove) || len(out.Attempts) != 4 {
		t.Fatalf("unexpected outcome %+v", out)
	}
	approve := chain.calls[len(chain.calls)-1]
	want, _ := DefaultConfig().ContractAddress(QuestManager)
	if approve.Spender != want || approve.Amount.Cmp(DefaultQuestReward) != 0 {
		t.Fatalf("unexpected approve call %+v", approve)
	}
}

func TestUnresolvedCapabilitiesSkipped(t *testing.T) {
	chain := newFakeChain(CapFaucet)
	svc, _ := newTestService(t, testConfig(false, false), chain)

	out, err := svc.CompleteQuest(context.Background(), "fog_1")
	if err != nil {
		t.Fatal(err)
	}
	if out.Strategy != string(CapFaucet) {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if have := chain.invoked(); len(have) != 1 || have[0] != CapFaucet {
		t.Fatalf("unresolved capabilities invoked: %v", have)
	}
}

func TestCompleteQuestErrors(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	svc, _ := newTestService(t, testConfig(true, false), chain)

	if _, err := svc.CompleteQuest(context.Background(), "nope"); !errors.Is(err, ErrUnknownQuest) {
		t.Fatalf("unknown quest: %v", err)
	}
	chain.Disconnect()
	if _, err := svc.CompleteQuest(context.Background(), "storm_1"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("disconnected: %v", err)
	}
	if chain.transfers != 0 {
		t.Fatal("transfer sent while disconnected")
	}
}

func TestMintRejected(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	chain.transferErr = &codedError{codeUserRejected, "MetaMask: user rejected transaction"}
	svc, cache := newTestService(t, testConfig(true, false), chain)

	res, err := svc.MintNFT(context.Background(), forecast.Stormy)
	if !errors.Is(err, ErrUserRejected) {
		t.Fatalf("have %v, want ErrUserRejected", err)
	}
	if res != nil {
		t.Fatalf("result on rejection %+v", res)
	}
	if len(chain.invoked()) != 0 {
		t.Fatalf("strategies ran after rejection: %v", chain.invoked())
	}
	if n := len(cache.NFTs()); n != 0 {
		t.Fatalf("nft recorded on rejection: %d", n)
	}
}

func TestMintAllFailDemo(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	chain.transferErr = errReverted
	for _, op := range allCapabilities {
		chain.failures[op] = errReverted
	}
	svc, cache := newTestService(t, testConfig(true, false), chain)

	res, err := svc.MintNFT(context.Background(), forecast.Rainy)
	if err != nil {
		t.Fatal(err)
	}
	if res.Real || res.Strategy != StrategyDemo {
		t.Fatalf("unexpected outcome %+v", res.Outcome)
	}
	nfts := cache.NFTs()
	if len(nfts) != 1 {
		t.Fatalf("%d nfts recorded", len(nfts))
	}
	if nfts[0].IsReal || nfts[0].Category != "rainy" || nfts[0].ID == "" || nfts[0].Strategy != StrategyDemo {
		t.Fatalf("unexpected record %+v", nfts[0])
	}
	// proof transfer, then the six mint candidates
	if n := len(res.Attempts); n != 7 {
		t.Fatalf("%d attempts", n)
	}
}

func TestMintStrict(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	chain.transferErr = errReverted
	for _, op := range allCapabilities {
		chain.failures[op] = errReverted
	}
	svc, cache := newTestService(t, testConfig(true, true), chain)

	if _, err := svc.MintNFT(context.Background(), forecast.Rainy); !errors.Is(err, ErrAllStrategiesFailed) {
		t.Fatalf("have %v, want ErrAllStrategiesFailed", err)
	}
	if n := len(cache.NFTs()); n != 0 {
		t.Fatalf("nft recorded in strict mode: %d", n)
	}
}

func TestMintRecordsRealNFT(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	svc, cache := newTestService(t, testConfig(false, false), chain)
	svc.roll = func(int) int { return 99 }

	res, err := svc.MintNFT(context.Background(), forecast.Snowy)
	if err != nil {
		t.Fatal(err)
	}
	if res.Strategy != string(CapMintWeatherNFT) || chain.calls[0].Weather != uint8(forecast.Snowy) {
		t.Fatalf("unexpected mint %+v %+v", res.Outcome, chain.calls)
	}
	rec := cache.NFTs()[0]
	if !rec.IsReal || rec.Rarity != RarityLegendary || rec.TxHash != res.TxHash.Hex() {
		t.Fatalf("unexpected record %+v", rec)
	}
	if _, err := svc.MintNFT(context.Background(), forecast.Type(42)); !errors.Is(err, ErrInvalidWeather) {
		t.Fatalf("invalid weather: %v", err)
	}
}

func TestRarityFor(t *testing.T) {
	tests := map[int]string{0: RarityCommon, 59: RarityCommon, 60: RarityRare, 84: RarityRare, 85: RarityEpic, 96: RarityEpic, 97: RarityLegendary, 99: RarityLegendary}
	for roll, want := range tests {
		if have := rarityFor(roll); have != want {
			t.Errorf("rarityFor(%d) = %s, want %s", roll, have, want)
		}
	}
}

func TestUpdateWeather(t *testing.T) {
	chain := newFakeChain(CapRequestWeather)
	svc, _ := newTestService(t, testConfig(false, false), chain)

	out, err := svc.UpdateWeather(context.Background(), forecast.Foggy)
	if err != nil {
		t.Fatal(err)
	}
	if out.Strategy != string(CapRequestWeather) {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestMultiplayer(t *testing.T) {
	chain := newFakeChain(CapJoinSession, CapLeaveSession)
	svc, _ := newTestService(t, testConfig(false, true), chain)

	if out, err := svc.JoinMultiplayer(context.Background()); err != nil || out.Strategy != string(CapJoinSession) {
		t.Fatalf("join: %+v %v", out, err)
	}
	if out, err := svc.LeaveMultiplayer(context.Background()); err != nil || out.Strategy != string(CapLeaveSession) {
		t.Fatalf("leave: %+v %v", out, err)
	}
}

func TestCurrentWeather(t *testing.T) {
	chain := newFakeChain()
	chain.oracle = &forecast.Report{Type: forecast.Windy, Source: forecast.SourceOracle}
	svc, _ := newTestService(t, testConfig(false, false), chain)

	if r := svc.CurrentWeather(context.Background(), "Kandy"); r.Source != forecast.SourceOracle || r.Location != "Kandy" {
		t.Fatalf("oracle weather not preferred: %+v", r)
	}
	chain.Disconnect()
	r := svc.CurrentWeather(context.Background(), "")
	if r.Source != forecast.SourceDemo || r.Location != DefaultConfig().Weather.Location {
		t.Fatalf("unexpected fallback weather %+v", r)
	}
}

func TestQuestsAndClearAll(t *testing.T) {
	chain := newFakeChain(allCapabilities...)
	svc, _ := newTestService(t, testConfig(true, false), chain)
	ctx := context.Background()

	if _, err := svc.CompleteQuest(ctx, "storm_1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.MintNFT(ctx, forecast.Stormy); err != nil {
		t.Fatal(err)
	}
	if avail := svc.AvailableQuests(forecast.Stormy); len(avail) != 1 || avail[0].ID != "storm_2" {
		t.Fatalf("available quests %v", avail)
	}
	var done int
	for _, q := range svc.Quests() {
		if q.Completed {
			done++
		}
	}
	if done != 1 {
		t.Fatalf("%d quests completed", done)
	}

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatal(err)
	}
	if len(svc.CompletedQuests()) != 0 || len(svc.NFTs()) != 0 {
		t.Fatal("ClearAll left data behind")
	}
	if _, err := svc.CompleteQuest(ctx, "storm_1"); err != nil {
		t.Fatalf("quest not completable after clear: %v", err)
	}
}
