package game

import (
	"math"
	"sort"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// AIDecision is the AI opponent's move for one turn
type AIDecision struct {
	Action    string // "conquest" or "pass"
	Territory *models.Territory
}

// DecideAI scores every unowned territory by value, difficulty and
// affordability and picks the best target, or passes when nothing viable
// remains. The state lock must be held.
func DecideAI(state *models.GameState, ai *models.Player) AIDecision {
	type scored struct {
		territory *models.Territory
		score     int
	}

	var candidates []scored
	for _, t := range state.Territories {
		if t.Owner != "" {
			continue
		}
		score := t.Cost - t.Difficulty*AIDifficultyWeight
		if ai.Synapse >= t.Cost {
			score += AIAffordableBonus
		} else {
			score += AIUnaffordablePenalty
		}
		candidates = append(candidates, scored{t, score})
	}
	if len(candidates) == 0 {
		return AIDecision{Action: "pass"}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	best := candidates[0]
	if best.score > 0 && ai.Synapse >= best.territory.Cost {
		return AIDecision{Action: "conquest", Territory: best.territory}
	}
	return AIDecision{Action: "pass"}
}

// aiSuccessProbability converts territory difficulty into the AI's chance of
// a correct "answer". The AI does not solve questions; its outcome is a
// bounded coin flip with slight per-turn variability.
func aiSuccessProbability(difficulty int, rng Rand) float64 {
	if difficulty < 1 {
		difficulty = 1
	}
	p := AIBaseSuccessRate - float64(difficulty-1)*AIDifficultyPenalty + (rng.Float64()-0.5)*0.2
	return math.Max(AISuccessFloor, math.Min(AISuccessCeil, p))
}
