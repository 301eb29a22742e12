package engine

import (
	"math/rand"
	"time"

	"github.com/firesync/firesync/internal/config"
)

// NewRNG returns a time-seeded generator for a game session.
func NewRNG() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }

// DrawOpponent picks a catalogue index uniformly from the tier's range
// [Start, End). The draw is independent of the player's choice and may land
// on the same weapon.
func DrawOpponent(r *rand.Rand, tier config.RoundSpec) int {
	return tier.Start + r.Intn(tier.Size())
}
