package game

import (
	"math"
	"time"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// AttemptResult describes the outcome of one resolved conquest attempt
type AttemptResult struct {
	PlayerID      string  `json:"playerId"`
	TerritoryID   string  `json:"territoryId"`
	Correct       bool    `json:"correct"`
	Captured      bool    `json:"captured"`
	MasteryBefore float64 `json:"masteryBefore"`
	MasteryAfter  float64 `json:"masteryAfter"`
	Reward        int     `json:"reward"`
	Penalty       int     `json:"penalty"`
}

// conquestReward is what a correct human answer pays out, before the
// territory cost is charged
func conquestReward(t *models.Territory, streak int) int {
	base := RewardBase + int(math.Floor(float64(t.Cost)*RewardCostShare)) + streak*RewardPerStreak
	return base * t.Difficulty
}

// resolveAttempt applies one attempt outcome to the territory and player.
// Preconditions (turn, ownership, affordability) are validated by the caller;
// the state lock must be held. Ownership is assigned here and nowhere else,
// exactly once, when mastery crosses the threshold.
func (e *Engine) resolveAttempt(p *models.Player, t *models.Territory, correct bool) AttemptResult {
	res := AttemptResult{
		PlayerID:      p.ID,
		TerritoryID:   t.ID,
		Correct:       correct,
		MasteryBefore: t.MasteryLevel,
	}

	if correct {
		var gain float64
		if p.IsAI {
			gain = AIMasteryGainMin + e.rng.Float64()*AIMasteryGainSpread
			res.Reward = int(math.Floor(float64(t.Cost)*AIRewardShare)) - int(math.Floor(float64(t.Cost)*AICostShare))
			p.Synapse += res.Reward
		} else {
			gain = MasteryGainBase + MasteryGainPerStreak*float64(p.Streak)
			res.Reward = conquestReward(t, p.Streak)
			p.Synapse += res.Reward - t.Cost
			p.Streak++
		}
		p.CorrectAnswers++

		t.MasteryLevel = math.Min(1.0, t.MasteryLevel+gain)
		if t.MasteryLevel >= OwnershipThreshold && t.Owner == "" {
			t.Owner = p.ID
			p.AddTerritory(t.ID)
			res.Captured = true
		}
	} else {
		res.Penalty = int(math.Floor(float64(t.Cost) * PenaltyCostShare))
		p.Synapse -= res.Penalty
		if p.Synapse < 0 {
			p.Synapse = 0
		}
		if !p.IsAI {
			p.Streak = 0
		}
		p.IncorrectAnswers++

		t.MasteryLevel = math.Max(0, t.MasteryLevel-MasteryLossOnMiss)
	}

	t.LastActorID = p.ID
	t.LastActivity = time.Now()
	res.MasteryAfter = t.MasteryLevel
	return res
}
