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
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/store"
)

// testWallet is an in-process EIP-1193 style wallet.
type testWallet struct {
	mu       sync.Mutex
	accounts []common.Address
	chainID  uint64
	known    map[uint64]bool
	reject   bool
	added    []AddChainParams
}

type testWalletEth struct{ w *testWallet }

func (e *testWalletEth) RequestAccounts() ([]common.Address, error) {
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	if e.w.reject {
		return nil, &codedError{codeUserRejected, "User rejected the request."}
	}
	return e.w.accounts, nil
}

func (e *testWalletEth) Accounts() []common.Address {
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	return e.w.accounts
}

func (e *testWalletEth) ChainId() *hexutil.Big {
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	return (*hexutil.Big)(new(big.Int).SetUint64(e.w.chainID))
}

type testWalletAPI struct{ w *testWallet }

func (a *testWalletAPI) SwitchEthereumChain(p switchChainParams) error {
	id, err := hexutil.DecodeUint64(p.ChainID)
	if err != nil {
		return err
	}
	a.w.mu.Lock()
	defer a.w.mu.Unlock()
	if !a.w.known[id] {
		return &codedError{codeUnknownChain, "Unrecognized chain ID " + p.ChainID}
	}
	a.w.chainID = id
	return nil
}

func (a *testWalletAPI) AddEthereumChain(p AddChainParams) error {
	id, err := hexutil.DecodeUint64(p.ChainID)
	if err != nil {
		return err
	}
	a.w.mu.Lock()
	defer a.w.mu.Unlock()
	a.w.known[id] = true
	a.w.added = append(a.w.added, p)
	return nil
}

func (w *testWallet) set(fn func(w *testWallet)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w)
}

func newTestWallet(t *testing.T, accounts ...common.Address) (*testWallet, *RPCWallet) {
	t.Helper()
	w := &testWallet{accounts: accounts, chainID: 1, known: map[uint64]bool{1: true}}
	server := rpc.NewServer()
	if err := server.RegisterName("eth", &testWalletEth{w}); err != nil {
		t.Fatal(err)
	}
	if err := server.RegisterName("wallet", &testWalletAPI{w}); err != nil {
		t.Fatal(err)
	}
	client := rpc.DialInProc(server)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return w, NewRPCWallet(client)
}

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func TestConnectNoWallet(t *testing.T) {
	s := NewSession(DefaultConfig(), nil)
	if err := s.Connect(context.Background()); !errors.Is(err, ErrNoWallet) {
		t.Fatalf("have %v, want ErrNoWallet", err)
	}
	if s.Snapshot().Connected {
		t.Fatal("connected without wallet")
	}
}

func TestConnectPlainNode(t *testing.T) {
	// Serves only the built-in rpc namespace, like a node without wallet methods.
	server := rpc.NewServer()
	client := rpc.DialInProc(server)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	s := NewSession(DefaultConfig(), NewRPCWallet(client))
	if err := s.Connect(context.Background()); !errors.Is(err, ErrNoWallet) {
		t.Fatalf("have %v, want ErrNoWallet", err)
	}
	if s.Snapshot().Connected {
		t.Fatal("connected to a plain node")
	}
}

func TestConnectUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	wallet, err := DialRPCWallet(context.Background(), url)
	if err != nil {
		// Dialling is lazy for http; an early failure is equally fine.
		if !errors.Is(err, ErrNoWallet) {
			t.Fatalf("have %v, want ErrNoWallet", err)
		}
		return
	}
	defer wallet.Close()
	s := NewSession(DefaultConfig(), wallet)
	if err := s.Connect(context.Background()); !errors.Is(err, ErrNoWallet) {
		t.Fatalf("have %v, want ErrNoWallet", err)
	}
}

// stalledSigner never answers signing requests until released.
type stalledSigner struct{ release chan struct{} }

func (s *stalledSigner) SignTransaction(args map[string]interface{}) (hexutil.Bytes, error) {
	<-s.release
	return nil, errors.New("released")
}

func TestRPCWalletSigningFollowsContext(t *testing.T) {
	signer := &stalledSigner{release: make(chan struct{})}
	server := rpc.NewServer()
	if err := server.RegisterName("eth", signer); err != nil {
		t.Fatal(err)
	}
	client := rpc.DialInProc(server)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	t.Cleanup(func() { close(signer.release) })

	ctx, cancel := context.WithCancel(context.Background())
	opts, err := NewRPCWallet(client).Signer(ctx, alice, big.NewInt(1))
	if err != nil {
		t.Fatal(err)
	}
	to := bob
	tx := types.NewTx(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1), Value: new(big.Int)})
	errc := make(chan error, 1)
	go func() {
		_, err := opts.Signer(alice, tx)
		errc <- err
	}()
	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("have %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("signing request outlived its context")
	}
}

func TestConnectNoAccounts(t *testing.T) {
	_, wallet := newTestWallet(t)
	s := NewSession(DefaultConfig(), wallet)
	if err := s.Connect(context.Background()); !errors.Is(err, ErrNoAccounts) {
		t.Fatalf("have %v, want ErrNoAccounts", err)
	}
}

func TestConnectRejected(t *testing.T) {
	w, wallet := newTestWallet(t, alice)
	w.set(func(w *testWallet) { w.reject = true })
	s := NewSession(DefaultConfig(), wallet)
	if err := s.Connect(context.Background()); !errors.Is(err, ErrUserRejected) {
		t.Fatalf("have %v, want ErrUserRejected", err)
	}
}

func TestConnectAddsUnknownChain(t *testing.T) {
	w, wallet := newTestWallet(t, alice, bob)
	s := NewSession(DefaultConfig(), wallet)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if !snap.Connected || snap.Account != alice || snap.ChainID != DefaultChainID {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(w.added) != 1 || w.added[0].ChainName != DefaultChainName {
		t.Fatalf("chain not added: %+v", w.added)
	}
	if w.chainID != DefaultChainID {
		t.Fatalf("wallet left on chain %d", w.chainID)
	}
	// The wallet serves no eth_getCode, so configured capabilities are trusted.
	if len(snap.Contracts) != len(ContractNames) || len(snap.Capabilities) != len(allCapabilities) {
		t.Fatalf("contracts %v capabilities %v", snap.Contracts, snap.Capabilities)
	}
	// Nor eth_getBalance: balances stay at the sentinel.
	if snap.Balance != ZeroBalance {
		t.Fatalf("balance %q", snap.Balance)
	}
}

func TestDisconnectResets(t *testing.T) {
	_, wallet := newTestWallet(t, alice)
	s := NewSession(DefaultConfig(), wallet)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Disconnect()
	snap := s.Snapshot()
	if snap.Connected || snap.Account != (common.Address{}) || snap.ChainID != 0 {
		t.Fatalf("session not reset: %+v", snap)
	}
	if snap.Balance != "0.0" || snap.TokenBalance != "0.0" || snap.NFTBalance != 0 {
		t.Fatalf("balances not reset: %+v", snap)
	}
	if len(snap.Contracts) != 0 || len(snap.Capabilities) != 0 || s.Supports(CapMint) {
		t.Fatalf("contracts not emptied: %+v", snap)
	}
	if _, err := s.Invoke(context.Background(), Call{Capability: CapMint}); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("invoke after disconnect: %v", err)
	}
	if err := s.RefreshBalances(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("refresh after disconnect: %v", err)
	}
}

func TestPollWalletAccountChange(t *testing.T) {
	w, wallet := newTestWallet(t, alice)
	s := NewSession(DefaultConfig(), wallet)
	ctx := context.Background()
	if err := s.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.pollWallet(ctx); err != nil || s.Snapshot().Account != alice {
		t.Fatalf("idle poll changed state: %v", err)
	}

	w.set(func(w *testWallet) { w.accounts = []common.Address{bob} })
	if err := s.pollWallet(ctx); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); !snap.Connected || snap.Account != bob {
		t.Fatalf("account change not picked up: %+v", snap)
	}

	w.set(func(w *testWallet) { w.accounts = nil })
	if err := s.pollWallet(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Snapshot().Connected {
		t.Fatal("still connected after accounts were revoked")
	}
}

func TestPollWalletChainChange(t *testing.T) {
	w, wallet := newTestWallet(t, alice)
	s := NewSession(DefaultConfig(), wallet)
	ctx := context.Background()
	if err := s.Connect(ctx); err != nil {
		t.Fatal(err)
	}
	w.set(func(w *testWallet) { w.chainID = 1 })
	if err := s.pollWallet(ctx); err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); !snap.Connected || snap.ChainID != DefaultChainID {
		t.Fatalf("unexpected snapshot after chain change %+v", snap)
	}
	if w.chainID != DefaultChainID {
		t.Fatalf("wallet not switched back, on %d", w.chainID)
	}
}

// simSession connects a key wallet to a simulated chain. Extra genesis
// accounts, such as contract code, can be passed in alloc.
func simSession(t *testing.T, cfg Config, alloc types.GenesisAlloc) (*Session, *simulated.Backend) {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	if alloc == nil {
		alloc = types.GenesisAlloc{}
	}
	alloc[crypto.PubkeyToAddress(key.PublicKey)] = types.Account{Balance: new(big.Int).Mul(big.NewInt(100), TokenUnit)}
	sim := simulated.NewBackend(alloc)
	t.Cleanup(func() { sim.Close() })

	cfg.Chain.ID = 1337
	s := NewSession(cfg, NewKeyWallet(key, sim.Client()))
	if err := s.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s, sim
}

func TestSimulatedSelfTransfer(t *testing.T) {
	s, sim := simSession(t, DefaultConfig(), nil)
	snap := s.Snapshot()
	if snap.Balance != "100.0" || snap.ChainID != 1337 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	// No code at the configured addresses: nothing resolves.
	if len(snap.Capabilities) != 0 {
		t.Fatalf("capabilities without code: %v", snap.Capabilities)
	}

	ctx := context.Background()
	hash, err := s.SelfTransfer(ctx)
	if err != nil {
		t.Fatal(err)
	}
	sim.Commit()
	receipt, err := sim.Client().TransactionReceipt(ctx, hash)
	if err != nil {
		t.Fatal(err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		t.Fatalf("self transfer failed: %+v", receipt)
	}
	if _, err := s.Invoke(ctx, Call{Capability: CapMint}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("unresolved invoke: %v", err)
	}
}

func TestSimulatedCapabilityResolution(t *testing.T) {
	questAddr := common.HexToAddress("0x00000000000000000000000000000000000000e1")
	selector := crypto.Keccak256([]byte("completeQuest(uint256)"))[:4]
	code := append(append([]byte{0x63}, selector...), 0x00) // PUSH4 <selector> STOP

	cfg := DefaultConfig()
	cfg.Contracts[string(QuestManager)] = ContractConfig{Address: questAddr.Hex(), Capabilities: DefaultCapabilities(QuestManager)}
	s, _ := simSession(t, cfg, types.GenesisAlloc{questAddr: {Code: code, Balance: new(big.Int)}})

	if !s.Supports(CapCompleteQuest) {
		t.Fatal("completeQuest not resolved")
	}
	if s.Supports(CapClaimReward) {
		t.Fatal("claimReward resolved without selector in code")
	}
	hash, err := s.Invoke(context.Background(), Call{Capability: CapCompleteQuest, Quest: big.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	if hash == (common.Hash{}) || IsDemoHash(hash) {
		t.Fatalf("unexpected hash %v", hash)
	}
}

func TestSimulatedServiceScenarios(t *testing.T) {
	ctx := context.Background()
	cache, err := store.Open(ctx, store.NewMemoryStorage())
	if err != nil {
		t.Fatal(err)
	}

	// With the proof transfer every action yields a real hash.
	cfg := DefaultConfig()
	s, _ := simSession(t, cfg, nil)
	res, err := NewService(cfg, s, cache, nil).MintNFT(ctx, forecast.Sunny)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Real || res.Strategy != StrategyProofTransfer {
		t.Fatalf("unexpected outcome %+v", res.Outcome)
	}

	// Without it, code-less contracts leave only the demo result.
	cfg.ProofTransfer = false
	res, err = NewService(cfg, s, cache, nil).MintNFT(ctx, forecast.Sunny)
	if err != nil {
		t.Fatal(err)
	}
	if res.Real || !IsDemoHash(res.TxHash) {
		t.Fatalf("unexpected outcome %+v", res.Outcome)
	}
	if n := len(cache.NFTs()); n != 2 {
		t.Fatalf("%d nfts recorded", n)
	}
}

func TestOracleWeatherWithoutCode(t *testing.T) {
	s, _ := simSession(t, DefaultConfig(), nil)
	if _, err := s.OracleWeather(context.Background()); err == nil {
		t.Fatal("oracle read succeeded without code")
	}
}

func TestContractInfoWithoutCode(t *testing.T) {
	s, _ := simSession(t, DefaultConfig(), nil)
	info, err := s.ContractInfo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.TokenSymbol != "" || info.NFTSupply != 0 || len(info.CompletedOnChain) != 0 {
		t.Fatalf("unexpected info %+v", info)
	}
	s.Disconnect()
	if _, err := s.ContractInfo(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("info while disconnected: %v", err)
	}
}
