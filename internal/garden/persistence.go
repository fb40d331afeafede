package garden

import (
	"encoding/json"
	"fmt"
	"os"
)

// Wire types for the save file. Plants flatten to a list so the document
// stays a plain self-describing record.
type savedPlant struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Glyph string `json:"glyph"`
}

type savedState struct {
	Label       string       `json:"label"`
	Probability float64      `json:"probability"`
	Plants      []savedPlant `json:"plants"`
	Age         float64      `json:"age"`
}

type savedGarden struct {
	States            []savedState `json:"states"`
	TotalObservations int          `json:"total_observations"`
	RealitySplits     int          `json:"reality_splits"`
}

// Save writes the full garden (states and counters) as JSON at path.
func (g *QuantumGarden) Save(path string) error {
	record := savedGarden{
		States:            make([]savedState, 0, len(g.States)),
		TotalObservations: g.TotalObservations,
		RealitySplits:     g.RealitySplits,
	}
	for _, st := range g.States {
		saved := savedState{
			Label:       st.Label,
			Probability: st.Probability,
			Plants:      make([]savedPlant, 0, len(st.Plants)),
			Age:         st.Age,
		}
		for coord, plant := range st.Plants {
			saved.Plants = append(saved.Plants, savedPlant{X: coord.X, Y: coord.Y, Glyph: plant.Glyph})
		}
		record.States = append(record.States, saved)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("save garden: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save garden: %w", err)
	}
	return nil
}

// Load reads a saved garden from path and reconstructs it, preserving state
// order, labels, probabilities, plants, ages, and both counters. Missing
// files fail with ErrNotFound; unparseable or invalid records with
// ErrCorruptData.
func Load(path string, opts ...Option) (*QuantumGarden, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	var record savedGarden
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("load %s: %v: %w", path, err, ErrCorruptData)
	}
	if err := validateRecord(record); err != nil {
		return nil, fmt.Errorf("load %s: %v: %w", path, err, ErrCorruptData)
	}

	g := New(opts...)
	g.TotalObservations = record.TotalObservations
	g.RealitySplits = record.RealitySplits
	for _, saved := range record.States {
		st := g.newState(saved.Label, saved.Probability)
		st.Age = saved.Age
		for _, plant := range saved.Plants {
			st.Plant(plant.X, plant.Y, plant.Glyph)
		}
		g.States = append(g.States, st)
	}
	return g, nil
}

func validateRecord(record savedGarden) error {
	if len(record.States) == 0 {
		return fmt.Errorf("record has no states")
	}
	if record.TotalObservations < 0 || record.RealitySplits < 0 {
		return fmt.Errorf("negative counters")
	}
	for i, st := range record.States {
		if st.Label == "" {
			return fmt.Errorf("state %d has no label", i)
		}
		if st.Probability < 0 || st.Probability > 1 {
			return fmt.Errorf("state %d probability %g outside [0,1]", i, st.Probability)
		}
		if st.Age < 0 {
			return fmt.Errorf("state %d has negative age", i)
		}
	}
	return nil
}
