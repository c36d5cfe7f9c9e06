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

// Package contract contains the ABIs of the five pre-deployed weather game
// contracts. The Solidity sources are not part of this repository; the ABIs
// list only the entry points the client talks to.
package contract

// WeatherOracleABI is the ABI of the WeatherOracle contract.
const WeatherOracleABI = `[
	{
		"inputs": [],
		"name": "getCurrentWeather",
		"outputs": [
			{"name": "weatherType", "type": "uint8"},
			{"name": "temperature", "type": "int256"},
			{"name": "humidity",    "type": "uint256"},
			{"name": "windSpeed",   "type": "uint256"},
			{"name": "timestamp",   "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"name": "_weatherType", "type": "uint8"}],
		"name": "updateWeather",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "requestWeatherUpdate",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "weatherType", "type": "uint8"},
			{"indexed": false, "name": "temperature", "type": "int256"},
			{"indexed": false, "name": "timestamp",   "type": "uint256"}
		],
		"name": "WeatherUpdated",
		"type": "event"
	}
]`

// WeatherTokenABI is the ABI of the WEATHER ERC-20 reward token.
const WeatherTokenABI = `[
	{
		"inputs": [{"name": "account", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "decimals",
		"outputs": [{"name": "", "type": "uint8"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "symbol",
		"outputs": [{"name": "", "type": "string"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "to",     "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "mint",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "faucet",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "claim",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount",  "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "from",  "type": "address"},
			{"indexed": true,  "name": "to",    "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}
]`

// QuestManagerABI is the ABI of the QuestManager contract.
const QuestManagerABI = `[
	{
		"inputs": [{"name": "_questId", "type": "uint256"}],
		"name": "completeQuest",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "_questId", "type": "uint256"}],
		"name": "claimReward",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "_player",  "type": "address"},
			{"name": "_questId", "type": "uint256"}
		],
		"name": "isQuestCompleted",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "player",  "type": "address"},
			{"indexed": true,  "name": "questId", "type": "uint256"},
			{"indexed": false, "name": "reward",  "type": "uint256"}
		],
		"name": "QuestCompleted",
		"type": "event"
	}
]`

// WeatherNFTABI is the ABI of the WeatherNFT ERC-721 collection.
const WeatherNFTABI = `[
	{
		"inputs": [
			{"name": "to",          "type": "address"},
			{"name": "weatherType", "type": "uint8"}
		],
		"name": "mintWeatherNFT",
		"outputs": [{"name": "tokenId", "type": "uint256"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "to", "type": "address"}],
		"name": "mint",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "to", "type": "address"}],
		"name": "safeMint",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "to", "type": "address"}],
		"name": "mintTo",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"name": "owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "totalSupply",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "name": "from",    "type": "address"},
			{"indexed": true, "name": "to",      "type": "address"},
			{"indexed": true, "name": "tokenId", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}
]`

// MultiplayerSyncABI is the ABI of the MultiplayerSync contract.
const MultiplayerSyncABI = `[
	{
		"inputs": [],
		"name": "joinSession",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "leaveSession",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "activePlayers",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [{"indexed": true, "name": "player", "type": "address"}],
		"name": "PlayerJoined",
		"type": "event"
	}
]`
