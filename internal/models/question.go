package models

// Question is a quiz question consumed during conquest. Questions are owned
// by the bank, not by the engine; the engine only tracks which ids it has
// already used in a match.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Concept     string   `json:"concept,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	Category    string   `json:"category,omitempty"`
	Difficulty  int      `json:"difficulty,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}
