// Copyright 2018 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/ethereum/go-ethereum/cmd/utils"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/game"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/store"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
)

// gameEnv is everything a command needs, assembled from flags and config.
type gameEnv struct {
	cfg     game.Config
	session *game.Session
	service *game.Service
	storage store.Storage
	closers []func()
}

// makeConfig loads the config file and applies command line overrides.
func makeConfig(ctx *cli.Context) (game.Config, error) {
	cfg, err := game.LoadConfig(ctx.GlobalString(configFlag.Name))
	if err != nil {
		return game.Config{}, err
	}
	if ctx.GlobalIsSet(rpcFlag.Name) {
		cfg.Chain.RPCURL = ctx.GlobalString(rpcFlag.Name)
	}
	if ctx.GlobalIsSet(storeFlag.Name) {
		cfg.Store = ctx.GlobalString(storeFlag.Name)
	}
	if ctx.GlobalIsSet(strictFlag.Name) {
		cfg.StrictErrors = ctx.GlobalBool(strictFlag.Name)
	}
	return cfg, cfg.Validate()
}

// openWallet picks a keyfile wallet when --keyfile is given and a wallet
// endpoint otherwise.
func openWallet(ctx context.Context, c *cli.Context, cfg game.Config) (game.Wallet, func(), error) {
	if path := c.GlobalString(keyfileFlag.Name); path != "" {
		password, err := readPassword(c.GlobalString(passwordFlag.Name))
		if err != nil {
			return nil, nil, err
		}
		client, err := ethclient.DialContext(ctx, cfg.Chain.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to dial %s: %w", cfg.Chain.RPCURL, err)
		}
		wallet, err := game.OpenKeystoreWallet(path, password, client)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return wallet, client.Close, nil
	}
	endpoint := c.GlobalString(walletFlag.Name)
	if endpoint == "" {
		endpoint = cfg.Chain.RPCURL
	}
	wallet, err := game.DialRPCWallet(ctx, endpoint)
	if err != nil {
		return nil, nil, err
	}
	return wallet, wallet.Close, nil
}

func readPassword(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func newGameEnv(ctx context.Context, c *cli.Context) (*gameEnv, error) {
	cfg, err := makeConfig(c)
	if err != nil {
		return nil, err
	}
	env := &gameEnv{cfg: cfg}

	env.storage, err = store.OpenStorage(cfg.Store)
	if err != nil {
		return nil, err
	}
	env.closers = append(env.closers, func() { env.storage.Close() })
	cache, err := store.Open(ctx, env.storage)
	if err != nil {
		env.Close()
		return nil, err
	}
	weather, err := forecast.NewClient(forecast.Config{
		BaseURL:   cfg.Weather.BaseURL,
		APIKey:    cfg.Weather.APIKey,
		CacheSize: cfg.Weather.CacheSize,
		CacheTTL:  time.Duration(cfg.Weather.CacheTTL),
	})
	if err != nil {
		env.Close()
		return nil, err
	}

	wallet, closeWallet, err := openWallet(ctx, c, cfg)
	if err != nil {
		log.Warn("No wallet available", "err", err)
		env.session = game.NewSession(cfg, nil)
	} else {
		env.closers = append(env.closers, closeWallet)
		env.session = game.NewSession(cfg, wallet)
	}
	env.service = game.NewService(cfg, env.session, cache, weather)
	return env, nil
}

// connect connects the wallet or exits.
func (env *gameEnv) connect(ctx context.Context) {
	if _, err := env.service.Connect(ctx); err != nil {
		utils.Fatalf("Failed to connect wallet: %v", err)
	}
}

func (env *gameEnv) Close() {
	for i := len(env.closers) - 1; i >= 0; i-- {
		env.closers[i]()
	}
}

// withGame runs fn with a fully assembled environment, cancelling on
// interrupt.
func withGame(c *cli.Context, fn func(ctx context.Context, env *gameEnv) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := newGameEnv(ctx, c)
	if err != nil {
		utils.Fatalf("%v", err)
	}
	defer env.Close()
	return fn(ctx, env)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func weatherArg(c *cli.Context) forecast.Type {
	if c.NArg() != 1 {
		utils.Fatalf("This command requires a weather type argument")
	}
	w, err := forecast.ParseType(c.Args().First())
	if err != nil {
		utils.Fatalf("%v", err)
	}
	return w
}

func statusCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		return printJSON(env.service.Status())
	})
}

func infoCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		info, err := env.session.ContractInfo(ctx)
		if err != nil {
			return err
		}
		for _, name := range game.ContractNames {
			addr, _ := env.cfg.ContractAddress(name)
			log.Info("Game contract", "name", name, "address", addr)
		}
		return printJSON(info)
	})
}

func questsCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNO\tWEATHER\tREWARD\tDONE\tTITLE")
		for _, q := range env.service.Quests() {
			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%v\t%s\n", q.ID, q.Number, q.Weather, q.Reward, q.Completed, q.Title)
		}
		return w.Flush()
	})
}

func completeCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		utils.Fatalf("This command requires a quest id argument")
	}
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		out, err := env.service.CompleteQuest(ctx, c.Args().First())
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func mintCmd(c *cli.Context) error {
	weather := weatherArg(c)
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		res, err := env.service.MintNFT(ctx, weather)
		if err != nil {
			return err
		}
		return printJSON(res)
	})
}

func updateWeatherCmd(c *cli.Context) error {
	weather := weatherArg(c)
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		out, err := env.service.UpdateWeather(ctx, weather)
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func weatherCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		// The oracle is only consulted when a wallet connects.
		if _, err := env.service.Connect(ctx); err != nil {
			log.Debug("Reading weather without wallet", "err", err)
		}
		report := env.service.CurrentWeather(ctx, c.Args().First())
		log.Info("Playable quests", "weather", report.Type, "count", len(env.service.AvailableQuests(report.Type)))
		return printJSON(report)
	})
}

func nftsCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		return printJSON(env.service.NFTs())
	})
}

func joinCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		out, err := env.service.JoinMultiplayer(ctx)
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func leaveCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		out, err := env.service.LeaveMultiplayer(ctx)
		if err != nil {
			return err
		}
		return printJSON(out)
	})
}

func clearCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		return env.service.ClearAll(ctx)
	})
}

// runWatchers follows wallet and balance changes until ctx ends.
func runWatchers(ctx context.Context, g *errgroup.Group, session *game.Session) {
	g.Go(func() error { return session.WatchWallet(ctx) })
	g.Go(func() error { return session.WatchBalances(ctx) })
}

func watchCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		env.connect(ctx)
		snap := env.service.Status()
		log.Info("Watching wallet", "account", snap.Account, "balance", snap.Balance, "tokens", snap.TokenBalance, "nfts", snap.NFTBalance)

		g, gctx := errgroup.WithContext(ctx)
		runWatchers(gctx, g, env.session)
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
}

func serveCmd(c *cli.Context) error {
	return withGame(c, func(ctx context.Context, env *gameEnv) error {
		if _, err := env.service.Connect(ctx); err != nil {
			log.Warn("Serving without a connected wallet", "err", err)
		}
		server := rpc.NewServer()
		for _, api := range game.APIs(env.service) {
			if err := server.RegisterName(api.Namespace, api.Service); err != nil {
				return err
			}
		}
		defer server.Stop()

		httpServer := &http.Server{Addr: c.String(listenFlag.Name), Handler: server}
		g, gctx := errgroup.WithContext(ctx)
		runWatchers(gctx, g, env.session)
		g.Go(func() error {
			log.Info("Game API listening", "listen", httpServer.Addr, "namespace", game.APINamespace)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
}
