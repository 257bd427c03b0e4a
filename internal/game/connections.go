package game

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"lukechampine.com/blake3"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// The connection model is read-only with respect to game state: a territory's
// neuron cloud and its connection graph are a pure function of (territory id,
// mastery level). Positions are derived by hashing id and index so that the
// same territory always produces the same cloud, for the renderer and for
// victory math alike.

// NeuronCount scales the cloud density with mastery (8-28 neurons)
func NeuronCount(mastery float64) int {
	return int(math.Floor(NeuronBaseCount + mastery*NeuronMasteryCount))
}

// NeuronCloud returns the deterministic neuron positions for a territory at
// the given mastery level
func NeuronCloud(territoryID string, mastery float64) [][3]float64 {
	count := NeuronCount(mastery)
	cloud := make([][3]float64, count)
	for i := 0; i < count; i++ {
		h := blake3.Sum256([]byte(fmt.Sprintf("%s-%d", territoryID, i)))
		radius := NeuronRadiusMin + float64(h[0])/255.0*NeuronRadiusSpread
		theta := float64(binary.BigEndian.Uint16(h[1:3])) / 65535.0 * 2 * math.Pi
		phi := float64(binary.BigEndian.Uint16(h[3:5])) / 65535.0 * math.Pi

		cloud[i] = [3]float64{
			radius * math.Sin(phi) * math.Cos(theta),
			radius * math.Cos(phi),
			radius * math.Sin(phi) * math.Sin(theta),
		}
	}
	return cloud
}

// ComputeConnections derives the connection graph for one territory: every
// neuron pair within the proximity threshold is a possible connection, closer
// pairs form first, and the formed count is capped for cost control.
func ComputeConnections(territoryID string, mastery float64) models.ConnectionStats {
	cloud := NeuronCloud(territoryID, mastery)

	distances := make([]float64, 0, len(cloud)*2)
	for i := 0; i < len(cloud); i++ {
		for j := i + 1; j < len(cloud); j++ {
			d := dist(cloud[i], cloud[j])
			if d < ConnectionDistance {
				distances = append(distances, d)
			}
		}
	}
	// Rank by inverse distance: closest connections form first
	sort.Float64s(distances)

	total := len(distances)
	formed := int(math.Floor(float64(total) * mastery))
	if formed > ConnectionCap {
		formed = ConnectionCap
	}
	completion := 0.0
	if total > 0 {
		completion = float64(formed) / float64(total)
	}
	return models.ConnectionStats{TotalPossible: total, Formed: formed, Completion: completion}
}

// ZoneStats aggregates connection completion across a player's zone: owned
// territories plus unowned ones the player last acted on. Territories are
// weighted by their number of possible connections.
func ZoneStats(state *models.GameState, playerID string) models.ConnectionStats {
	var agg models.ConnectionStats
	for _, t := range state.Territories {
		inZone := t.Owner == playerID ||
			(t.Owner == "" && t.LastActorID == playerID && t.MasteryLevel > 0)
		if !inZone {
			continue
		}
		cs := ComputeConnections(t.ID, t.MasteryLevel)
		agg.TotalPossible += cs.TotalPossible
		agg.Formed += cs.Formed
	}
	if agg.TotalPossible > 0 {
		agg.Completion = float64(agg.Formed) / float64(agg.TotalPossible)
	}
	return agg
}

func dist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
