package pipeline

import (
	"context"
	"io"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evoscape/pkg/cache"
	"github.com/matzehuels/evoscape/pkg/errors"
	"github.com/matzehuels/evoscape/pkg/run"
)

func testRun() run.Run {
	return run.Run{
		Records: []run.Record{
			{ID: "seed", Generation: 0, Origin: "initial", Fitness: 0.5},
			{ID: "m1", Generation: 1, ParentID: "seed", Origin: "mutation", Fitness: 0.9, Delta: 0.4},
			{ID: "m2", Generation: 1, ParentID: "seed", Origin: "mutation", Fitness: 0.1, Delta: -0.4},
		},
		Points: []run.Point{
			{ID: "m1", Quality: 0.9, Speed: 0.4, Complexity: 0.3, Fitness: 0.9},
			{ID: "m2", Quality: 0.2, Speed: 0.1, Complexity: 0.8, Fitness: 0.1},
		},
	}
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name: "ZeroValuesGetDefaults",
			opts: Options{},
		},
		{
			name: "ExplicitValid",
			opts: Options{Width: 1024, Height: 768, MaxDepth: 10, GridResolution: 16, Formats: []string{"json", "dot"}},
		},
		{
			name:     "NegativeCanvas",
			opts:     Options{Width: -100},
			wantCode: errors.ErrCodeInvalidCanvas,
		},
		{
			name:     "GridTooLarge",
			opts:     Options{GridResolution: 100000},
			wantCode: errors.ErrCodeInvalidGrid,
		},
		{
			name:     "DepthTooLarge",
			opts:     Options{MaxDepth: 100001},
			wantCode: errors.ErrCodeInvalidDepth,
		},
		{
			name:     "UnknownFormat",
			opts:     Options{Formats: []string{"png"}},
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()

			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateAndSetDefaults: %v", err)
			}
			if tt.opts.Width == 0 || tt.opts.GridResolution == 0 {
				t.Error("defaults not applied")
			}
			if len(tt.opts.Formats) == 0 {
				t.Error("default format not applied")
			}
		})
	}
}

func TestGenerateView(t *testing.T) {
	view, err := GenerateView(testRun(), Options{GridResolution: 8})
	if err != nil {
		t.Fatalf("GenerateView: %v", err)
	}

	if len(view.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(view.Nodes))
	}
	if len(view.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(view.Edges))
	}
	// m1 dominates m2 on every objective
	if !slices.Equal(view.Frontier, []string{"m1"}) {
		t.Errorf("frontier = %v, want [m1]", view.Frontier)
	}
	if len(view.Surface) != 8*8 {
		t.Errorf("surface = %d samples, want 64", len(view.Surface))
	}
	if len(view.Anomalies) != 0 {
		t.Errorf("anomalies = %v, want none", view.Anomalies)
	}
	if view.GridResolution != 8 || view.Width != DefaultWidth {
		t.Errorf("view params = %d/%g", view.GridResolution, view.Width)
	}
}

func TestGenerateViewMalformedRun(t *testing.T) {
	// A same-generation parent link degrades that record, not the run.
	data := run.Run{
		Records: []run.Record{
			{ID: "a", Generation: 1, Fitness: 0.5},
			{ID: "b", Generation: 1, ParentID: "a", Fitness: 0.6},
		},
	}

	view, err := GenerateView(data, Options{})
	if err != nil {
		t.Fatalf("GenerateView: %v", err)
	}

	if len(view.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(view.Nodes))
	}
	if len(view.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(view.Edges))
	}
	if !slices.Equal(view.Anomalies, []string{"b"}) {
		t.Errorf("anomalies = %v, want [b]", view.Anomalies)
	}
}

func TestGenerateViewInvalidRun(t *testing.T) {
	data := run.Run{
		Records: []run.Record{
			{ID: "dup", Generation: 0},
			{ID: "dup", Generation: 1},
		},
	}

	_, err := GenerateView(data, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidRun) {
		t.Fatalf("error = %v, want INVALID_RUN", err)
	}
}

func TestGenerateViewEmptyRun(t *testing.T) {
	view, err := GenerateView(run.Run{}, Options{})
	if err != nil {
		t.Fatalf("GenerateView: %v", err)
	}

	if len(view.Nodes) != 0 || len(view.Edges) != 0 || len(view.Surface) != 0 {
		t.Errorf("empty run should yield empty view: %+v", view)
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	opts := Options{GridResolution: 4, Formats: []string{FormatJSON, FormatDOT}}

	// First execution computes everything
	first, err := runner.Execute(ctx, testRun(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.ComputeHit || first.CacheInfo.RenderHit {
		t.Error("first execution should not hit the cache")
	}
	if len(first.Artifacts[FormatJSON]) == 0 || len(first.Artifacts[FormatDOT]) == 0 {
		t.Fatal("missing artifacts")
	}
	if first.RunHash == "" {
		t.Error("RunHash not set")
	}
	if first.Stats.RecordCount != 3 || first.Stats.PointCount != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}

	// Second execution with identical input hits both stages
	second, err := runner.Execute(ctx, testRun(), Options{GridResolution: 4, Formats: []string{FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.ComputeHit {
		t.Error("second execution should hit the view cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second execution should hit the artifact cache")
	}
	if !reflect.DeepEqual(first.View, second.View) {
		t.Error("cached view differs from computed view")
	}

	// Different parameters miss the cache
	third, err := runner.Execute(ctx, testRun(), Options{GridResolution: 8, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.ComputeHit {
		t.Error("different grid resolution should miss the view cache")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	if _, err := runner.Execute(ctx, testRun(), Options{Formats: []string{FormatJSON}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	refreshed, err := runner.Execute(ctx, testRun(), Options{Formats: []string{FormatJSON}, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.CacheInfo.ComputeHit {
		t.Error("refresh should bypass the view cache")
	}
}

func TestRunnerNilDependencies(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if runner.Cache == nil || runner.Keyer == nil || runner.Logger == nil {
		t.Fatal("NewRunner should fill nil dependencies")
	}

	// NullCache means every execution recomputes
	view, err := runner.ComputeView(context.Background(), testRun(), Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("ComputeView: %v", err)
	}
	if len(view.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(view.Nodes))
	}
}

func TestRenderArtifactsDOT(t *testing.T) {
	view, err := GenerateView(testRun(), Options{GridResolution: 4})
	if err != nil {
		t.Fatal(err)
	}

	artifacts, err := RenderArtifacts(view, Options{Formats: []string{FormatDOT}, Detailed: true})
	if err != nil {
		t.Fatalf("RenderArtifacts: %v", err)
	}

	dot := string(artifacts[FormatDOT])
	if !strings.Contains(dot, `"seed" -> "m1"`) {
		t.Errorf("DOT missing lineage edge:\n%s", dot)
	}
	if !strings.Contains(dot, "fitness: 0.900") {
		t.Errorf("detailed DOT missing fitness label:\n%s", dot)
	}
}
