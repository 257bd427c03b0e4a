package game

import (
	"math/rand"
	"time"
)

// Rand is the random source behind every reward, mastery and AI-success
// draw. Keeping it injectable lets tests replay exact scenarios.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns the production random source
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
