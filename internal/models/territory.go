package models

import "time"

// Territory is a conquerable knowledge node. MasteryLevel and Owner are the
// only fields that change after match start; Owner is set once and never
// reverts.
type Territory struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Concept     string     `json:"concept"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Difficulty  int        `json:"difficulty"`
	Position    [3]float64 `json:"position"`
	Color       string     `json:"color"`
	ModelURL    string     `json:"modelUrl,omitempty"`

	MasteryLevel float64   `json:"masteryLevel"`
	Owner        string    `json:"owner"` // empty until mastery crosses the ownership threshold
	LastActorID  string    `json:"lastActorId"`
	LastActivity time.Time `json:"lastActivity"`
}

// ModelRef points at a generated 3D asset
type ModelRef struct {
	URL string `json:"url"`
}

// ObjectDescriptor is the upstream shape produced by the content-generation
// step. Generated payloads are inconsistent about where the model URL and
// numeric fields live, so the catalog normalizes everything here before the
// engine ever sees it.
type ObjectDescriptor struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Concept     string    `json:"concept"`
	Description string    `json:"description"`
	Cost        int       `json:"cost"`
	Difficulty  int       `json:"difficulty"`
	Color       string    `json:"color"`
	ModelURL    string    `json:"modelUrl"`
	Model       *ModelRef `json:"model,omitempty"`
	Assets      *ModelRef `json:"assets,omitempty"`
}

// ResolveModelURL picks the model URL out of whichever field the generator
// happened to use
func (d *ObjectDescriptor) ResolveModelURL() string {
	if d.ModelURL != "" {
		return d.ModelURL
	}
	if d.Model != nil && d.Model.URL != "" {
		return d.Model.URL
	}
	if d.Assets != nil && d.Assets.URL != "" {
		return d.Assets.URL
	}
	return ""
}
