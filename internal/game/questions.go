package game

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/neuraledu/neural-conquest/internal/models"
)

// QuestionProvider selects quiz questions for conquest attempts. It prefers
// bank questions matching the territory's concept, then the match topic, then
// anything unused; when the bank is exhausted it recycles, and when there is
// no bank at all it synthesizes from a small built-in per-topic table.
type QuestionProvider struct {
	bank      []models.Question
	synthesis map[string][]models.Question
	rng       Rand
}

// NewQuestionProvider builds a provider over the given bank
func NewQuestionProvider(bank []models.Question, rng Rand) *QuestionProvider {
	return &QuestionProvider{bank: bank, synthesis: builtinQuestions, rng: rng}
}

// Select picks a question for the territory and marks it used on the state.
// Callers must hold the state's write lock. ErrNoQuestionAvailable means
// conquest is unavailable for this territory, not that a default applies.
func (p *QuestionProvider) Select(state *models.GameState, territory *models.Territory) (models.Question, error) {
	if state.UsedQuestions == nil {
		state.UsedQuestions = make(map[string]bool)
	}

	// Priority 1: questions tied to this territory's concept or name
	candidates := p.filter(state, func(q *models.Question) bool {
		return matchesTerritory(q, territory)
	})

	// Priority 2: questions tied to the match topic
	if len(candidates) == 0 {
		candidates = p.filter(state, func(q *models.Question) bool {
			return matchesTopic(q, state.Topic)
		})
	}

	// Priority 3: any unused question
	if len(candidates) == 0 {
		candidates = p.filter(state, func(q *models.Question) bool { return true })
	}

	// Priority 4: bank exhausted, recycle and fall back to synthesis
	if len(candidates) == 0 {
		for id := range state.UsedQuestions {
			delete(state.UsedQuestions, id)
		}
		return p.synthesize(state, territory)
	}

	q := candidates[p.rng.Intn(len(candidates))]
	state.UsedQuestions[q.ID] = true
	return q, nil
}

func (p *QuestionProvider) filter(state *models.GameState, keep func(*models.Question) bool) []models.Question {
	var out []models.Question
	for i := range p.bank {
		q := &p.bank[i]
		if state.UsedQuestions[q.ID] {
			continue
		}
		if keep(q) {
			out = append(out, *q)
		}
	}
	return out
}

func (p *QuestionProvider) synthesize(state *models.GameState, territory *models.Territory) (models.Question, error) {
	topic := state.Topic
	var pool []models.Question
	for key, qs := range p.synthesis {
		if conceptMatch(key, topic) {
			pool = qs
			break
		}
	}
	if pool == nil {
		pool = p.synthesis["General Knowledge"]
	}
	if len(pool) == 0 {
		return models.Question{}, fmt.Errorf("%w: topic %q", ErrNoQuestionAvailable, topic)
	}

	q := pool[p.rng.Intn(len(pool))]
	q.ID = "generated_" + uuid.New().String()
	if q.Concept == "" {
		q.Concept = territory.Concept
	}
	state.UsedQuestions[q.ID] = true
	return q, nil
}

// matchesTerritory reports whether a bank question belongs to a territory's
// concept or name
func matchesTerritory(q *models.Question, t *models.Territory) bool {
	if t.Name != "" && (strings.Contains(strings.ToLower(q.Text), strings.ToLower(t.Name)) ||
		conceptMatch(q.Concept, t.Name)) {
		return true
	}
	if t.Concept == "" {
		return false
	}
	return conceptMatch(q.Concept, t.Concept) ||
		conceptMatch(q.Category, t.Concept) ||
		conceptMatch(q.Topic, t.Concept)
}

func matchesTopic(q *models.Question, topic string) bool {
	if topic == "" {
		return false
	}
	return conceptMatch(q.Topic, topic) ||
		conceptMatch(q.Category, topic) ||
		conceptMatch(q.Concept, topic)
}

// conceptMatch accepts substring containment either way, or a small
// levenshtein distance so near-miss labels from generated content still hit
func conceptMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return levenshtein.ComputeDistance(a, b) <= fuzzyLimit(len(b))
}

func fuzzyLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
