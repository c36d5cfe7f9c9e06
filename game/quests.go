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
	"fmt"
	"math/big"

	"github.com/agnivade/levenshtein"
	"github.com/hasitha481/reactive-weather-oracle-quest-sub000/forecast"
)

// Quest is one entry of the fixed quest board.
type Quest struct {
	ID          string        `json:"id"`
	Number      uint64        `json:"number"` // on-chain quest id
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Weather     forecast.Type `json:"weather"`
	Reward      uint64        `json:"reward"` // whole WEATHER tokens
}

// quests is the quest board. Numbers are the ids the QuestManager contract
// was deployed with and must never be renumbered.
var quests = []Quest{
	{"storm_1", 1, "Storm Chaser", "Complete a quest during a thunderstorm", forecast.Stormy, 50},
	{"rain_1", 2, "Rain Dancer", "Collect raindrops during rainy weather", forecast.Rainy, 20},
	{"sun_1", 3, "Sun Seeker", "Harvest solar energy on a sunny day", forecast.Sunny, 10},
	{"snow_1", 4, "Snow Builder", "Build a snowman while it snows", forecast.Snowy, 30},
	{"fog_1", 5, "Fog Walker", "Navigate the mist on a foggy day", forecast.Foggy, 25},
	{"wind_1", 6, "Wind Rider", "Fly a kite in strong wind", forecast.Windy, 25},
	{"storm_2", 7, "Lightning Collector", "Capture lightning in a bottle", forecast.Stormy, 75},
	{"rain_2", 8, "Puddle Jumper", "Splash through ten puddles", forecast.Rainy, 15},
}

var questIndex = func() map[string]Quest {
	m := make(map[string]Quest, len(quests))
	for _, q := range quests {
		m[q.ID] = q
	}
	return m
}()

// Quests returns the full quest board.
func Quests() []Quest { return append([]Quest(nil), quests...) }

// LookupQuest returns the quest with the given id.
func LookupQuest(id string) (Quest, error) {
	q, ok := questIndex[id]
	if !ok {
		if s := suggestQuest(id); s != "" {
			return Quest{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownQuest, id, s)
		}
		return Quest{}, fmt.Errorf("%w %q", ErrUnknownQuest, id)
	}
	return q, nil
}

// QuestNumber maps a quest id to its on-chain numeric id.
func QuestNumber(id string) (*big.Int, error) {
	q, err := LookupQuest(id)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(q.Number), nil
}

// suggestQuest returns the closest quest id within a small edit distance.
func suggestQuest(id string) string {
	best, bestDist := "", 3
	for _, q := range quests {
		if d := levenshtein.ComputeDistance(id, q.ID); d < bestDist {
			best, bestDist = q.ID, d
		}
	}
	return best
}

// QuestsFor returns the quests playable in the given weather, skipping any
// for which done reports true.
func QuestsFor(weather forecast.Type, done func(id string) bool) []Quest {
	var out []Quest
	for _, q := range quests {
		if q.Weather == weather && (done == nil || !done(q.ID)) {
			out = append(out, q)
		}
	}
	return out
}
