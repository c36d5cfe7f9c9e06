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

// ContractName is the logical name of one of the game contracts.
type ContractName string

const (
	WeatherOracle   ContractName = "weatherOracle"
	WeatherToken    ContractName = "weatherToken"
	QuestManager    ContractName = "questManager"
	WeatherNFT      ContractName = "weatherNFT"
	MultiplayerSync ContractName = "multiplayerSync"
)

// ContractNames lists every game contract in binding order.
var ContractNames = []ContractName{WeatherOracle, WeatherToken, QuestManager, WeatherNFT, MultiplayerSync}

// Capability names one state-changing operation a deployed contract may
// support. Each capability is tied to exactly one contract method.
type Capability string

const (
	CapCompleteQuest  Capability = "complete_quest"   // QuestManager.completeQuest(uint256)
	CapClaimReward    Capability = "claim_reward"     // QuestManager.claimReward(uint256)
	CapMintWeatherNFT Capability = "mint_weather_nft" // WeatherNFT.mintWeatherNFT(address,uint8)
	CapMint           Capability = "mint"             // WeatherNFT.mint(address)
	CapSafeMint       Capability = "safe_mint"        // WeatherNFT.safeMint(address)
	CapMintTo         Capability = "mint_to"          // WeatherNFT.mintTo(address)
	CapTokenMint      Capability = "token_mint"       // WeatherToken.mint(address,uint256)
	CapFaucet         Capability = "faucet"           // WeatherToken.faucet()
	CapClaim          Capability = "claim"            // WeatherToken.claim()
	CapApprove        Capability = "approve"          // WeatherToken.approve(address,uint256)
	CapUpdateWeather  Capability = "update_weather"   // WeatherOracle.updateWeather(uint8)
	CapRequestWeather Capability = "request_weather"  // WeatherOracle.requestWeatherUpdate()
	CapJoinSession    Capability = "join_session"     // MultiplayerSync.joinSession()
	CapLeaveSession   Capability = "leave_session"    // MultiplayerSync.leaveSession()
)

type capabilityTarget struct {
	contract ContractName
	method   string
}

var capabilityTargets = map[Capability]capabilityTarget{
	CapCompleteQuest:  {QuestManager, "completeQuest"},
	CapClaimReward:    {QuestManager, "claimReward"},
	CapMintWeatherNFT: {WeatherNFT, "mintWeatherNFT"},
	CapMint:           {WeatherNFT, "mint"},
	CapSafeMint:       {WeatherNFT, "safeMint"},
	CapMintTo:         {WeatherNFT, "mintTo"},
	CapTokenMint:      {WeatherToken, "mint"},
	CapFaucet:         {WeatherToken, "faucet"},
	CapClaim:          {WeatherToken, "claim"},
	CapApprove:        {WeatherToken, "approve"},
	CapUpdateWeather:  {WeatherOracle, "updateWeather"},
	CapRequestWeather: {WeatherOracle, "requestWeatherUpdate"},
	CapJoinSession:    {MultiplayerSync, "joinSession"},
	CapLeaveSession:   {MultiplayerSync, "leaveSession"},
}

// Valid reports whether c is a known capability.
func (c Capability) Valid() bool {
	_, ok := capabilityTargets[c]
	return ok
}

// Contract returns the contract the capability is invoked on.
func (c Capability) Contract() ContractName { return capabilityTargets[c].contract }

// Method returns the ABI method name behind the capability.
func (c Capability) Method() string { return capabilityTargets[c].method }

// DefaultCapabilities returns every capability the client knows for the
// named contract, in declaration order.
func DefaultCapabilities(name ContractName) []Capability {
	var caps []Capability
	for _, c := range allCapabilities {
		if c.Contract() == name {
			caps = append(caps, c)
		}
	}
	return caps
}

var allCapabilities = []Capability{
	CapCompleteQuest, CapClaimReward,
	CapMintWeatherNFT, CapMint, CapSafeMint, CapMintTo,
	CapTokenMint, CapFaucet, CapClaim, CapApprove,
	CapUpdateWeather, CapRequestWeather,
	CapJoinSession, CapLeaveSession,
}
