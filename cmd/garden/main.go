package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tatianab/quantum-garden/internal/config"
	"github.com/tatianab/quantum-garden/internal/garden"
	"github.com/tatianab/quantum-garden/internal/tui"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "garden",
		Short: "Quantum Garden - a garden that exists in three realities at once",
		Long: `garden tends a plot that exists in multiple probabilistic realities.

Plant seeds into every reality, let them evolve and mutate independently,
then observe the garden to collapse it onto a single branch - or split it
back into a fresh superposition.`,
	}

	rootCmd.PersistentFlags().String("config", "garden.yaml", "Path to the config file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(),
		newSimulateCmd(),
		newStatsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("garden version %s\n", version)
		},
	}
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the garden interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			g := garden.New(garden.WithSeed(cfg.Seed), garden.WithGridSize(cfg.GridSize))
			if err := g.Initialize(); err != nil {
				return err
			}
			return tui.Run(g, cfg)
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for a saved garden",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			g, err := garden.Load(cfg.SavePath, garden.WithSeed(cfg.Seed), garden.WithGridSize(cfg.GridSize))
			if err != nil {
				return err
			}
			fmt.Print(g.Stats())
			return nil
		},
	}
}

// newSimulateCmd runs a scripted session through the full engine surface:
// initialize, plant, evolve, collapse, split, render, stats, save, load.
func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted session exercising every garden operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return simulate(cfg)
		},
	}
}

func simulate(cfg *config.Config) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "garden"})

	g := garden.New(garden.WithSeed(cfg.Seed), garden.WithGridSize(cfg.GridSize))
	if err := g.Initialize(); err != nil {
		return err
	}
	logger.Info("garden initialized", "states", len(g.States), "probability_sum", g.ProbabilitySum())

	if err := g.PlantSeed(5, 5); err != nil {
		return err
	}
	logger.Info("seed planted in every reality", "x", 5, "y", 5)

	if err := g.EvolveAll(10.0); err != nil {
		return err
	}
	logger.Info("evolved all states", "dt", 10.0, "age", g.States[0].Age)

	if err := g.Collapse(0); err != nil {
		return err
	}
	logger.Info("superposition collapsed",
		"states", len(g.States),
		"probability", g.States[0].Probability,
		"total_observations", g.TotalObservations)

	if err := g.CreateSuperposition(); err != nil {
		return err
	}
	logger.Info("reality split",
		"states", len(g.States),
		"reality_splits", g.RealitySplits,
		"probability_sum", g.ProbabilitySum())

	view, err := g.RenderState(0)
	if err != nil {
		return err
	}
	fmt.Println(view)
	fmt.Println(g.Stats())

	if err := g.Save(cfg.SavePath); err != nil {
		return err
	}
	loaded, err := garden.Load(cfg.SavePath, garden.WithSeed(cfg.Seed), garden.WithGridSize(cfg.GridSize))
	if err != nil {
		return err
	}
	if len(loaded.States) != len(g.States) {
		return fmt.Errorf("round-trip lost states: saved %d, loaded %d", len(g.States), len(loaded.States))
	}
	logger.Info("save/load round-trip verified", "path", cfg.SavePath, "states", len(loaded.States))

	labels := make([]string, 0, len(g.States))
	for _, st := range g.States {
		labels = append(labels, st.Label)
	}
	logger.Info("simulation complete", "realities", strings.Join(labels, ", "))
	return nil
}
