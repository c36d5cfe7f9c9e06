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

// weatherquest plays the weather quest game from the command line.
//
// It connects a wallet to the game chain, completes quests and mints weather
// NFTs through the deployed contracts, and can expose the same operations
// over JSON-RPC.
//
// Usage:
//
//	weatherquest [--config <file>] [--keyfile <path> --password <file>] <command> [args]
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	app = cli.NewApp()

	// Flags
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML or YAML configuration file",
	}
	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "Chain JSON-RPC endpoint (default: Somnia Testnet)",
	}
	walletFlag = cli.StringFlag{
		Name:  "wallet",
		Usage: "Wallet JSON-RPC endpoint exposing eth_requestAccounts (default: --rpc)",
	}
	keyfileFlag = cli.StringFlag{
		Name:  "keyfile",
		Usage: "JSON keyfile to sign with instead of a wallet endpoint",
	}
	passwordFlag = cli.StringFlag{
		Name:  "password",
		Usage: "File containing the keyfile password",
	}
	storeFlag = cli.StringFlag{
		Name:  "store",
		Usage: "Local game data location (memory:, file:<path>, sqlite:<path>)",
	}
	strictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "Fail actions when every strategy fails instead of recording demo results",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	listenFlag = cli.StringFlag{
		Name:  "listen",
		Usage: "HTTP listen address for the JSON-RPC API",
		Value: "127.0.0.1:8551",
	}
)

func init() {
	app.Name = "weatherquest"
	app.Usage = "Weather-reactive quest game client"
	app.Version = "0.2.0"
	app.Before = setupLogging
	app.Flags = []cli.Flag{
		configFlag,
		rpcFlag,
		walletFlag,
		keyfileFlag,
		passwordFlag,
		storeFlag,
		strictFlag,
		verbosityFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "status",
			Usage:  "Connect the wallet and print session state",
			Action: statusCmd,
		},
		{
			Name:   "info",
			Usage:  "Print contract state for the connected account",
			Action: infoCmd,
		},
		{
			Name:   "quests",
			Usage:  "List quests and their local completion state",
			Action: questsCmd,
		},
		{
			Name:      "complete",
			Usage:     "Complete a quest",
			ArgsUsage: "<quest-id>",
			Action:    completeCmd,
		},
		{
			Name:      "mint",
			Usage:     "Mint a weather NFT",
			ArgsUsage: "<weather>",
			Action:    mintCmd,
		},
		{
			Name:      "update-weather",
			Usage:     "Ask the oracle to change the weather",
			ArgsUsage: "<weather>",
			Action:    updateWeatherCmd,
		},
		{
			Name:      "weather",
			Usage:     "Print the current weather",
			ArgsUsage: "[location]",
			Action:    weatherCmd,
		},
		{
			Name:   "nfts",
			Usage:  "List locally recorded NFTs",
			Action: nftsCmd,
		},
		{
			Name:   "join",
			Usage:  "Join the multiplayer session",
			Action: joinCmd,
		},
		{
			Name:   "leave",
			Usage:  "Leave the multiplayer session",
			Action: leaveCmd,
		},
		{
			Name:   "clear",
			Usage:  "Delete all locally recorded quests and NFTs",
			Action: clearCmd,
		},
		{
			Name:   "watch",
			Usage:  "Stay connected and follow wallet and balance changes",
			Action: watchCmd,
		},
		{
			Name:   "serve",
			Usage:  "Serve the game API over JSON-RPC",
			Action: serveCmd,
			Flags: []cli.Flag{
				listenFlag,
			},
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	lvl := log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true)))
	return nil
}
