package game

import (
	"fmt"
	"math"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// defaultNodes seed a match when no generated knowledge objects are supplied
var defaultNodes = []struct {
	name    string
	concept string
	color   string
}{
	{"Frontal Cortex", "Executive Functions", "#4A90E2"},
	{"Hippocampus", "Memory Formation", "#E24A90"},
	{"Cerebellum", "Motor Control", "#22c55e"},
	{"Brain Stem", "Vital Functions", "#FFD700"},
	{"Occipital Lobe", "Visual Processing", "#FF6B35"},
}

// GenerateTerritories builds the initial knowledge nodes for a match, one per
// descriptor, or the default brain-region set when none are supplied.
// Descriptors arrive from the content-generation step with fields in
// inconsistent places; everything is normalized here so the rest of the
// engine only ever sees one canonical Territory shape.
func GenerateTerritories(descriptors []models.ObjectDescriptor) []*models.Territory {
	if len(descriptors) == 0 {
		return defaultTerritories()
	}

	territories := make([]*models.Territory, 0, len(descriptors))
	seen := make(map[string]bool, len(descriptors))
	for i, d := range descriptors {
		angle := float64(i) / float64(len(descriptors)) * 2 * math.Pi
		radius := 15 + float64(i%3)*8
		height := math.Sin(angle*2) * 5

		id := d.ID
		if id == "" {
			id = fmt.Sprintf("custom_%d", i)
		}
		// Ids must be unique within a match
		for seen[id] {
			id = fmt.Sprintf("%s_%d", id, i)
		}
		seen[id] = true

		name := d.Name
		if name == "" {
			name = fmt.Sprintf("Neural Node %d", i+1)
		}
		concept := d.Concept
		if concept == "" {
			concept = "Neural Processing"
		}
		cost := d.Cost
		if cost <= 0 {
			cost = 300 + i*50
		}
		difficulty := d.Difficulty
		if difficulty <= 0 {
			difficulty = 2
		}
		if difficulty > 5 {
			difficulty = 5
		}
		color := d.Color
		if color == "" {
			color = fmt.Sprintf("hsl(%d, 70%%, 60%%)", int(float64(i)*137.5)%360)
		}
		description := d.Description
		if description == "" {
			description = fmt.Sprintf("A neural territory representing %s", name)
		}

		territories = append(territories, &models.Territory{
			ID:          id,
			Name:        name,
			Concept:     concept,
			Description: description,
			Cost:        cost,
			Difficulty:  difficulty,
			Position:    [3]float64{math.Cos(angle) * radius, height, math.Sin(angle) * radius},
			Color:       color,
			ModelURL:    d.ResolveModelURL(),
		})
	}
	return territories
}

func defaultTerritories() []*models.Territory {
	territories := make([]*models.Territory, 0, len(defaultNodes))
	for i, node := range defaultNodes {
		angle := float64(i) / float64(len(defaultNodes)) * 2 * math.Pi
		radius := 12 + float64(i%2)*6
		height := math.Sin(angle*3) * 3

		territories = append(territories, &models.Territory{
			ID:          fmt.Sprintf("default_%d", i),
			Name:        node.name,
			Concept:     node.concept,
			Description: fmt.Sprintf("A neural territory representing %s", node.name),
			Cost:        250 + i*75,
			Difficulty:  2,
			Position:    [3]float64{math.Cos(angle) * radius, height, math.Sin(angle) * radius},
			Color:       node.color,
		})
	}
	return territories
}
