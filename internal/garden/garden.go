package garden

import (
	"fmt"
	"strings"

	"github.com/tatianab/quantum-garden/internal/render"
)

const (
	// DefaultGridSize is the side length of the planting grid.
	DefaultGridSize = 8

	// InitialStates is how many branches a fresh superposition holds.
	InitialStates = 3
)

var initialVariants = [InitialStates]string{"verdant", "twilight", "arcane"}

// QuantumGarden owns the superposition: an ordered set of QuantumStates whose
// probabilities sum to 1, plus counters for observation and split events.
type QuantumGarden struct {
	States            []*QuantumState
	TotalObservations int
	RealitySplits     int

	gridSize int
	seed     uint64
	stateSeq uint64
}

// Option configures a garden at construction time.
type Option func(*QuantumGarden)

// WithSeed fixes the seed feeding every state's mutation RNG.
func WithSeed(seed uint64) Option {
	return func(g *QuantumGarden) { g.seed = seed }
}

// WithGridSize sets the planting grid side length.
func WithGridSize(size int) Option {
	return func(g *QuantumGarden) {
		if size > 0 {
			g.gridSize = size
		}
	}
}

// New returns an empty garden. Call Initialize to create the superposition.
func New(opts ...Option) *QuantumGarden {
	g := &QuantumGarden{
		gridSize: DefaultGridSize,
		seed:     1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GridSize returns the planting grid side length.
func (g *QuantumGarden) GridSize() int { return g.gridSize }

// newState mints a state with a fresh RNG stream derived from the garden seed.
func (g *QuantumGarden) newState(label string, probability float64) *QuantumState {
	g.stateSeq++
	return NewState(label, probability, g.seed+g.stateSeq*0x1000193)
}

// Initialize populates a fresh garden with exactly three equally weighted
// empty states. Re-initializing an already populated garden is an error;
// construct a new garden to start over.
func (g *QuantumGarden) Initialize() error {
	if len(g.States) > 0 {
		return fmt.Errorf("initialize: %w", ErrAlreadyInitialized)
	}
	states := make([]*QuantumState, 0, InitialStates)
	for _, variant := range initialVariants {
		states = append(states, g.newState(variant, 1.0/InitialStates))
	}
	g.States = states
	return nil
}

// PlantSeed plants the default seed glyph at (x, y) in every state. The
// coordinate is validated before any state is touched, so the plant either
// lands everywhere or nowhere.
func (g *QuantumGarden) PlantSeed(x, y int) error {
	if len(g.States) == 0 {
		return fmt.Errorf("plant seed: %w", ErrEmptyGarden)
	}
	if x < 0 || x >= g.gridSize || y < 0 || y >= g.gridSize {
		return fmt.Errorf("plant seed at (%d, %d): grid is %dx%d: %w", x, y, g.gridSize, g.gridSize, ErrIndexOutOfRange)
	}
	for _, st := range g.States {
		st.Plant(x, y, SeedGlyph)
	}
	return nil
}

// EvolveAll advances every state by the same dt. Each state rolls its own
// mutation dice, so branches drift apart as they age.
func (g *QuantumGarden) EvolveAll(dt float64) error {
	if len(g.States) == 0 {
		return fmt.Errorf("evolve: %w", ErrEmptyGarden)
	}
	if dt < 0 {
		return fmt.Errorf("evolve: dt must be non-negative, got %g", dt)
	}
	for _, st := range g.States {
		if err := st.Evolve(dt); err != nil {
			return err
		}
	}
	return nil
}

// Collapse observes the state at index: it becomes the sole reality with
// probability 1 and every other branch is discarded. Observing a garden
// that already holds a single state only bumps the observation counter.
func (g *QuantumGarden) Collapse(index int) error {
	if len(g.States) == 0 {
		return fmt.Errorf("collapse: %w", ErrEmptyGarden)
	}
	if index < 0 || index >= len(g.States) {
		return fmt.Errorf("collapse state %d of %d: %w", index, len(g.States), ErrIndexOutOfRange)
	}
	survivor := g.States[index]
	survivor.SetProbability(1.0)
	g.States = []*QuantumState{survivor}
	g.TotalObservations++
	return nil
}

// CreateSuperposition splits the first state into three independent clones
// with equal weights, mirroring Initialize's distribution.
func (g *QuantumGarden) CreateSuperposition() error {
	if len(g.States) == 0 {
		return fmt.Errorf("create superposition: %w", ErrEmptyGarden)
	}
	basis := g.States[0]
	states := make([]*QuantumState, 0, InitialStates)
	for i := range InitialStates {
		label := fmt.Sprintf("%s-%d.%d", basis.Label, g.RealitySplits+1, i+1)
		g.stateSeq++
		states = append(states, basis.Clone(label, 1.0/InitialStates, g.seed+g.stateSeq*0x1000193))
	}
	g.States = states
	g.RealitySplits++
	return nil
}

// RenderState returns a textual snapshot of the state at index.
func (g *QuantumGarden) RenderState(index int) (string, error) {
	if len(g.States) == 0 {
		return "", fmt.Errorf("render: %w", ErrEmptyGarden)
	}
	if index < 0 || index >= len(g.States) {
		return "", fmt.Errorf("render state %d of %d: %w", index, len(g.States), ErrIndexOutOfRange)
	}
	st := g.States[index]
	snapshot := render.Snapshot{
		Label:       st.Label,
		Probability: st.Probability,
		Age:         st.Age,
		GridSize:    g.gridSize,
		Plants:      make(map[render.Cell]string, len(st.Plants)),
	}
	for coord, plant := range st.Plants {
		snapshot.Plants[render.Cell{X: coord.X, Y: coord.Y}] = plant.Glyph
	}
	return render.Render(snapshot), nil
}

// Stats returns a textual summary of the garden's bookkeeping.
func (g *QuantumGarden) Stats() string {
	var b strings.Builder
	b.WriteString("=== GARDEN STATISTICS ===\n")
	fmt.Fprintf(&b, "Total observations: %d\n", g.TotalObservations)
	fmt.Fprintf(&b, "Reality splits:     %d\n", g.RealitySplits)
	fmt.Fprintf(&b, "Active states:      %d\n", len(g.States))
	for i, st := range g.States {
		fmt.Fprintf(&b, "  [%d] %s  p=%.3f  age=%.1f  plants=%d\n",
			i, st.Label, st.Probability, st.Age, len(st.Plants))
	}
	return b.String()
}

// ProbabilitySum returns the total probability weight across all states.
// A healthy garden keeps this within 0.01 of 1.
func (g *QuantumGarden) ProbabilitySum() float64 {
	var sum float64
	for _, st := range g.States {
		sum += st.Probability
	}
	return sum
}
