// Package garden implements the quantum garden engine: a set of
// simultaneously evolving garden variants that collapse to one on
// observation and can be re-split into a fresh superposition.
package garden

import (
	"fmt"
	"math/rand/v2"
)

// Coord is an integer grid position.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Plant is what grows at one coordinate.
type Plant struct {
	Glyph string `json:"glyph"`
}

// QuantumState is one branch of reality: its own plants, its own age, and a
// probability weight within the garden's superposition.
type QuantumState struct {
	Label       string
	Probability float64
	Plants      map[Coord]Plant
	Age         float64

	rng *rand.Rand
}

// NewState returns an empty state with the given label and probability.
// The seed feeds the state's private mutation RNG, so runs are reproducible.
func NewState(label string, probability float64, seed uint64) *QuantumState {
	return &QuantumState{
		Label:       label,
		Probability: probability,
		Plants:      make(map[Coord]Plant),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Plant puts a plant at (x, y). Planting over an existing plant replaces it.
func (s *QuantumState) Plant(x, y int, glyph string) {
	if s.Plants == nil {
		s.Plants = make(map[Coord]Plant)
	}
	s.Plants[Coord{x, y}] = Plant{Glyph: glyph}
}

// Evolve advances the state's age by dt and applies growth and mutation to
// every plant. Growth stage is a function of the state's age, so evolution is
// monotonic; plants are never removed. Mutation draws come from the state's
// own RNG, so sibling states diverge independently.
func (s *QuantumState) Evolve(dt float64) error {
	if dt < 0 {
		return fmt.Errorf("evolve: dt must be non-negative, got %g", dt)
	}
	prev := s.Age
	s.Age += dt

	for _, threshold := range growthThresholds {
		if prev < threshold && s.Age >= threshold {
			s.advanceStage()
		}
	}
	return nil
}

// advanceStage moves every growable plant one stage along its growth chain.
// Fully grown plants get a mutation roll instead.
func (s *QuantumState) advanceStage() {
	for coord, plant := range s.Plants {
		if next, ok := growthNext[plant.Glyph]; ok {
			s.Plants[coord] = Plant{Glyph: next}
			continue
		}
		if s.rng != nil && s.rng.Float64() < 0.3 {
			if mutated, err := s.MutatePlant(plant.Glyph); err == nil {
				s.Plants[coord] = Plant{Glyph: mutated}
			}
		}
	}
}

// MutatePlant returns a mutated variant of glyph, picked from the mutation
// table. Unrecognized glyphs fail with ErrMutation; every recognized glyph
// has at least one variant, so a nil error always pairs with a non-empty
// result.
func (s *QuantumState) MutatePlant(glyph string) (string, error) {
	variants, ok := mutationTable[glyph]
	if !ok {
		return "", fmt.Errorf("mutate %q: %w", glyph, ErrMutation)
	}
	if s.rng == nil || len(variants) == 1 {
		return variants[0], nil
	}
	return variants[s.rng.IntN(len(variants))], nil
}

// SetProbability sets this state's weight. The garden is responsible for
// keeping weights normalized across the whole superposition.
func (s *QuantumState) SetProbability(p float64) {
	s.Probability = p
}

// Clone returns an independent copy: its own plant map and its own RNG stream
// derived from seed, so the clone's future mutations do not track the
// original's.
func (s *QuantumState) Clone(label string, probability float64, seed uint64) *QuantumState {
	clone := NewState(label, probability, seed)
	clone.Age = s.Age
	for coord, plant := range s.Plants {
		clone.Plants[coord] = plant
	}
	return clone
}
