package garden

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInitialized(t *testing.T, opts ...Option) *QuantumGarden {
	t.Helper()
	g := New(opts...)
	require.NoError(t, g.Initialize())
	return g
}

func TestInitialize(t *testing.T) {
	g := newInitialized(t)

	require.Len(t, g.States, 3)
	assert.InDelta(t, 1.0, g.ProbabilitySum(), 0.01)

	seen := map[string]bool{}
	for _, st := range g.States {
		assert.InDelta(t, 1.0/3.0, st.Probability, 0.001)
		assert.Empty(t, st.Plants)
		assert.Zero(t, st.Age)
		assert.False(t, seen[st.Label], "labels must be distinct")
		seen[st.Label] = true
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	g := newInitialized(t)
	err := g.Initialize()
	require.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Len(t, g.States, 3)
}

func TestPlantSeedReachesEveryState(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.PlantSeed(5, 5))

	for _, st := range g.States {
		plant, ok := st.Plants[Coord{5, 5}]
		require.True(t, ok, "state %s missing the plant", st.Label)
		assert.Equal(t, SeedGlyph, plant.Glyph)
	}
}

func TestPlantSeedOutOfBoundsIsAtomic(t *testing.T) {
	g := newInitialized(t)

	for _, coord := range [][2]int{{-1, 0}, {0, -1}, {DefaultGridSize, 0}, {0, DefaultGridSize}} {
		err := g.PlantSeed(coord[0], coord[1])
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}
	for _, st := range g.States {
		assert.Empty(t, st.Plants, "failed planting must leave no partial effect")
	}
}

func TestPlantSeedEmptyGarden(t *testing.T) {
	g := New()
	require.ErrorIs(t, g.PlantSeed(1, 1), ErrEmptyGarden)
}

func TestEvolveAll(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.PlantSeed(2, 3))

	require.NoError(t, g.EvolveAll(10.0))
	for _, st := range g.States {
		assert.Equal(t, 10.0, st.Age)
		assert.Len(t, st.Plants, 1, "evolution must never remove plants")
	}

	require.NoError(t, g.EvolveAll(2.5))
	for _, st := range g.States {
		assert.Equal(t, 12.5, st.Age)
	}
}

func TestEvolveAllNegativeDT(t *testing.T) {
	g := newInitialized(t)
	require.Error(t, g.EvolveAll(-1.0))
	for _, st := range g.States {
		assert.Zero(t, st.Age, "failed evolve must leave ages untouched")
	}
}

func TestEvolveGrowthIsMonotonic(t *testing.T) {
	g := newInitialized(t, WithSeed(7))
	require.NoError(t, g.PlantSeed(0, 0))

	require.NoError(t, g.EvolveAll(6.0))
	first := g.States[0].Plants[Coord{0, 0}].Glyph
	assert.NotEqual(t, SeedGlyph, first, "crossing a growth threshold must advance the seed")

	require.NoError(t, g.EvolveAll(20.0))
	for _, st := range g.States {
		assert.Len(t, st.Plants, 1)
		assert.True(t, Recognized(st.Plants[Coord{0, 0}].Glyph))
	}
}

func TestCollapse(t *testing.T) {
	g := newInitialized(t)
	survivor := g.States[1]

	require.NoError(t, g.Collapse(1))

	require.Len(t, g.States, 1)
	assert.Same(t, survivor, g.States[0])
	assert.Equal(t, 1.0, g.States[0].Probability)
	assert.Equal(t, 1, g.TotalObservations)
	assert.InDelta(t, 1.0, g.ProbabilitySum(), 0.01)
}

func TestCollapseAgainOnlyCounts(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.Collapse(0))
	require.NoError(t, g.Collapse(0))

	assert.Len(t, g.States, 1)
	assert.Equal(t, 1.0, g.States[0].Probability)
	assert.Equal(t, 2, g.TotalObservations)
}

func TestCollapseErrors(t *testing.T) {
	g := New()
	require.ErrorIs(t, g.Collapse(0), ErrEmptyGarden)

	require.NoError(t, g.Initialize())
	require.ErrorIs(t, g.Collapse(3), ErrIndexOutOfRange)
	require.ErrorIs(t, g.Collapse(-1), ErrIndexOutOfRange)
	assert.Len(t, g.States, 3, "failed collapse must not discard states")
	assert.Zero(t, g.TotalObservations)
}

func TestCreateSuperposition(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.PlantSeed(4, 4))
	require.NoError(t, g.Collapse(0))
	basisLabel := g.States[0].Label

	require.NoError(t, g.CreateSuperposition())

	require.Len(t, g.States, 3)
	assert.Equal(t, 1, g.RealitySplits)
	assert.InDelta(t, 1.0, g.ProbabilitySum(), 0.01)
	for _, st := range g.States {
		assert.InDelta(t, 1.0/3.0, st.Probability, 0.001)
		assert.Contains(t, st.Label, basisLabel)
		assert.Contains(t, st.Plants, Coord{4, 4}, "clones inherit the basis plants")
	}
}

func TestSuperpositionClonesAreIndependent(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.PlantSeed(1, 1))
	require.NoError(t, g.Collapse(0))
	require.NoError(t, g.CreateSuperposition())

	g.States[0].Plant(2, 2, SeedGlyph)
	assert.NotContains(t, g.States[1].Plants, Coord{2, 2})
	assert.NotContains(t, g.States[2].Plants, Coord{2, 2})
}

func TestCreateSuperpositionEmptyGarden(t *testing.T) {
	g := New()
	require.ErrorIs(t, g.CreateSuperposition(), ErrEmptyGarden)
}

func TestStats(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.Collapse(2))

	stats := g.Stats()
	assert.Contains(t, stats, "STATISTICS")
	assert.Contains(t, stats, strconv.Itoa(g.TotalObservations))
	assert.Contains(t, stats, g.States[0].Label)
	assert.Contains(t, stats, "p=1.000")
}

func TestRenderState(t *testing.T) {
	g := newInitialized(t)
	require.NoError(t, g.PlantSeed(3, 3))

	view, err := g.RenderState(0)
	require.NoError(t, err)
	assert.Contains(t, view, "Quantum State")
	assert.Contains(t, view, g.States[0].Label)
	assert.Contains(t, view, "╔")

	_, err = g.RenderState(5)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSeededRunsAreReproducible(t *testing.T) {
	run := func() []string {
		g := newInitialized(t, WithSeed(42))
		require.NoError(t, g.PlantSeed(0, 0))
		require.NoError(t, g.EvolveAll(20.0))
		require.NoError(t, g.EvolveAll(20.0))

		glyphs := make([]string, 0, len(g.States))
		for _, st := range g.States {
			glyphs = append(glyphs, st.Plants[Coord{0, 0}].Glyph)
		}
		return glyphs
	}
	assert.Equal(t, run(), run())
}

// The canonical session: initialize, plant, evolve, observe, re-split.
func TestFullScenario(t *testing.T) {
	g := newInitialized(t, WithSeed(99))
	assert.InDelta(t, 1.0, g.ProbabilitySum(), 0.01)

	require.NoError(t, g.PlantSeed(5, 5))
	require.NoError(t, g.EvolveAll(10.0))
	for _, st := range g.States {
		assert.Equal(t, 10.0, st.Age)
	}

	require.NoError(t, g.Collapse(0))
	require.Len(t, g.States, 1)
	assert.Equal(t, 1.0, g.States[0].Probability)
	assert.Equal(t, 1, g.TotalObservations)

	require.NoError(t, g.CreateSuperposition())
	require.Len(t, g.States, 3)
	assert.Equal(t, 1, g.RealitySplits)
	assert.InDelta(t, 1.0, g.ProbabilitySum(), 0.01)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrAlreadyInitialized, ErrEmptyGarden, ErrIndexOutOfRange,
		ErrMutation, ErrNotFound, ErrCorruptData,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestStatsListsEveryState(t *testing.T) {
	g := newInitialized(t)
	stats := g.Stats()
	for _, st := range g.States {
		assert.Contains(t, stats, st.Label)
	}
	assert.Equal(t, 3, strings.Count(stats, "p=0.333"))
}
