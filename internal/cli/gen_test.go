package cli

import (
	"reflect"
	"testing"

	"github.com/matzehuels/evoscape/pkg/frontier"
)

func TestGenerateRunDeterministic(t *testing.T) {
	first := generateRun(5, 3, 42)
	second := generateRun(5, 3, 42)

	if !reflect.DeepEqual(first, second) {
		t.Error("same seed should produce identical runs")
	}

	other := generateRun(5, 3, 43)
	if reflect.DeepEqual(first, other) {
		t.Error("different seeds should produce different runs")
	}
}

func TestGenerateRunIsValid(t *testing.T) {
	data := generateRun(6, 3, 7)

	if err := data.Validate(); err != nil {
		t.Fatalf("generated run should validate: %v", err)
	}

	forest, err := data.Forest()
	if err != nil {
		t.Fatalf("generated run should build a forest: %v", err)
	}
	if malformed := forest.Malformed(); len(malformed) != 0 {
		t.Errorf("generated run has malformed records: %v", malformed)
	}

	if len(data.Points) == 0 {
		t.Error("generated run should have scored points")
	}
	optimal := frontier.Optimal(data.FrontierPoints())
	if len(optimal) == 0 || len(optimal) > len(data.Points) {
		t.Errorf("frontier has %d of %d points", len(optimal), len(data.Points))
	}
}

func TestGenerateRunShape(t *testing.T) {
	data := generateRun(4, 2, 1)

	maxGen := 0
	roots := 0
	for _, rec := range data.Records {
		if rec.Generation > maxGen {
			maxGen = rec.Generation
		}
		if rec.ParentID == "" {
			roots++
		}
	}

	if roots != 1 {
		t.Errorf("roots = %d, want 1", roots)
	}
	if maxGen != 3 {
		t.Errorf("max generation = %d, want 3", maxGen)
	}

	// Fitness stays in range
	for _, rec := range data.Records {
		if rec.Fitness < 0 || rec.Fitness > 1 {
			t.Errorf("record %s fitness %g out of [0,1]", rec.ID, rec.Fitness)
		}
	}
}
