package cli

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/lineage"
	"github.com/matzehuels/evoscape/pkg/run"
)

// genCommand creates the gen command for producing synthetic runs.
func (c *CLI) genCommand() *cobra.Command {
	var (
		output      string
		generations int
		branching   int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic run for experimentation",
		Long: `Generate a synthetic run for experimentation.

The gen command produces a plausible run.json without needing a real
search: a seed record, a few generations of mutations and crossovers
with drifting fitness, and scored points for the surviving candidates.
The same seed always yields the same run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGen(output, generations, branching, seed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "run.json", "output file")
	cmd.Flags().IntVar(&generations, "generations", 6, "number of generations")
	cmd.Flags().IntVar(&branching, "branching", 3, "children per surviving record")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	return cmd
}

// runGen generates the synthetic run and writes it.
func (c *CLI) runGen(output string, generations, branching int, seed int64) error {
	if generations < 1 || branching < 1 {
		return fmt.Errorf("generations and branching must be at least 1")
	}

	prog := newProgress(c.Logger)
	data := generateRun(generations, branching, seed)

	if err := run.WriteRunFile(data, output); err != nil {
		return fmt.Errorf("write run %s: %w", output, err)
	}
	prog.done(fmt.Sprintf("Generated %d records with %d scored points", len(data.Records), len(data.Points)))

	printSuccess("Run generated")
	printFile(output)
	printNewline()
	printNextStep("Visualize", "evoscape view "+output)

	return nil
}

// generateRun builds a deterministic synthetic run. IDs are name-based
// UUIDs derived from the seed so repeated runs are byte-identical.
func generateRun(generations, branching int, seed int64) run.Run {
	rng := rand.New(rand.NewSource(seed))
	counter := 0

	nextID := func() string {
		counter++
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s-%d-%d", appName, seed, counter)))
		return id.String()[:8]
	}

	type candidate struct {
		id      string
		fitness float64
	}

	var data run.Run

	root := candidate{id: nextID(), fitness: 0.3 + 0.2*rng.Float64()}
	data.Records = append(data.Records, run.Record{
		ID:         root.id,
		Generation: 0,
		Origin:     string(lineage.OriginInitial),
		Fitness:    root.fitness,
	})

	survivors := []candidate{root}
	for gen := 1; gen < generations; gen++ {
		var next []candidate
		for _, parent := range survivors {
			for i := 0; i < branching; i++ {
				// Mutations drift, the occasional crossover jumps further
				origin := lineage.OriginMutation
				drift := 0.15
				if rng.Float64() < 0.2 {
					origin = lineage.OriginCrossover
					drift = 0.3
				}
				delta := (rng.Float64()*2 - 1) * drift
				fitness := clamp01(parent.fitness + delta)

				child := candidate{id: nextID(), fitness: fitness}
				data.Records = append(data.Records, run.Record{
					ID:         child.id,
					Generation: gen,
					ParentID:   parent.id,
					Origin:     string(origin),
					Fitness:    fitness,
					Delta:      fitness - parent.fitness,
				})
				next = append(next, child)
			}
		}

		// Selection: keep the fitter half for the next generation
		for i := 0; i < len(next); i++ {
			for j := i + 1; j < len(next); j++ {
				if next[j].fitness > next[i].fitness {
					next[i], next[j] = next[j], next[i]
				}
			}
		}
		survivors = next[:max(1, len(next)/2)]
	}

	// Score the last surviving candidates as trade-off points
	for _, s := range survivors {
		data.Points = append(data.Points, run.Point{
			ID:         s.id,
			Quality:    clamp01(s.fitness + (rng.Float64()*2-1)*0.1),
			Speed:      rng.Float64(),
			Complexity: rng.Float64(),
			Fitness:    s.fitness,
		})
	}

	return data
}

// clamp01 clamps v into [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
