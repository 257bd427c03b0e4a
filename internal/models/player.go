package models

// Player represents a participant in a match. Players are created at setup
// and never destroyed while the match runs.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAI    bool   `json:"isAI"`
	Synapse int    `json:"synapse"`
	Color   string `json:"color"`

	// Territories holds the ids of permanently controlled territories
	Territories []string `json:"territories"`

	// Streak counts consecutive correct answers; AI players never use it
	Streak           int `json:"streak"`
	CorrectAnswers   int `json:"correctAnswers"`
	IncorrectAnswers int `json:"incorrectAnswers"`
}

// AddTerritory records ownership of a territory exactly once
func (p *Player) AddTerritory(id string) {
	for _, t := range p.Territories {
		if t == id {
			return
		}
	}
	p.Territories = append(p.Territories, id)
}
