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

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/store"
)

// APINamespace is the JSON-RPC namespace of the game API.
const APINamespace = "quest"

// API exposes the game over JSON-RPC. Method namespace: "quest".
type API struct {
	game ReadWriter
}

// NewAPI creates a JSON-RPC API backed by the given game.
func NewAPI(game ReadWriter) *API {
	return &API{game: game}
}

// APIs returns the RPC descriptors for registration with a node or server.
func APIs(game ReadWriter) []rpc.API {
	return []rpc.API{{Namespace: APINamespace, Service: NewAPI(game)}}
}

// Status handles "quest_status" RPC calls.
func (api *API) Status() Snapshot { return api.game.Status() }

// Connect handles "quest_connect" RPC calls.
func (api *API) Connect(ctx context.Context) (Snapshot, error) { return api.game.Connect(ctx) }

// Disconnect handles "quest_disconnect" RPC calls.
func (api *API) Disconnect() { api.game.Disconnect() }

// Quests handles "quest_quests" RPC calls.
func (api *API) Quests() []QuestStatus { return api.game.Quests() }

// Available handles "quest_available" RPC calls.
func (api *API) Available(weather forecast.Type) []Quest { return api.game.AvailableQuests(weather) }

// Completed handles "quest_completed" RPC calls.
func (api *API) Completed() []string { return api.game.CompletedQuests() }

// CompleteQuest handles "quest_completeQuest" RPC calls.
func (api *API) CompleteQuest(ctx context.Context, id string) (*Outcome, error) {
	return api.game.CompleteQuest(ctx, id)
}

// MintNFT handles "quest_mintNFT" RPC calls.
func (api *API) MintNFT(ctx context.Context, weather forecast.Type) (*MintResult, error) {
	return api.game.MintNFT(ctx, weather)
}

// UpdateWeather handles "quest_updateWeather" RPC calls.
func (api *API) UpdateWeather(ctx context.Context, weather forecast.Type) (*Outcome, error) {
	return api.game.UpdateWeather(ctx, weather)
}

// JoinMultiplayer handles "quest_joinMultiplayer" RPC calls.
func (api *API) JoinMultiplayer(ctx context.Context) (*Outcome, error) {
	return api.game.JoinMultiplayer(ctx)
}

// LeaveMultiplayer handles "quest_leaveMultiplayer" RPC calls.
func (api *API) LeaveMultiplayer(ctx context.Context) (*Outcome, error) {
	return api.game.LeaveMultiplayer(ctx)
}

// Nfts handles "quest_nfts" RPC calls.
func (api *API) Nfts() []store.NFTRecord { return api.game.NFTs() }

// Weather handles "quest_weather" RPC calls. The location is optional.
func (api *API) Weather(ctx context.Context, location *string) *forecast.Report {
	var loc string
	if location != nil {
		loc = *location
	}
	return api.game.CurrentWeather(ctx, loc)
}

// ClearAll handles "quest_clearAll" RPC calls.
func (api *API) ClearAll(ctx context.Context) error { return api.game.ClearAll(ctx) }
