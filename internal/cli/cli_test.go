package cli

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/evoscape/pkg/pipeline"
)

func testCLI() *CLI {
	return &CLI{
		Logger: newLogger(io.Discard, log.InfoLevel),
		Config: DefaultConfig(),
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{
		"view", "layout", "render", "frontier", "surface",
		"path", "gen", "inspect", "store", "cache", "completion",
	}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !slices.Equal(got, []string{pipeline.FormatSVG}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("json,dot"); !slices.Equal(got, []string{"json", "dot"}) {
		t.Errorf("parseFormats = %v", got)
	}
}

func TestSetCLIDefaults(t *testing.T) {
	c := testCLI()
	c.Config.Defaults.Width = 1200
	c.Config.Defaults.GridResolution = 48

	opts := pipeline.Options{}
	c.setCLIDefaults(&opts)

	if opts.Width != 1200 {
		t.Errorf("width = %g, want config value 1200", opts.Width)
	}
	if opts.GridResolution != 48 {
		t.Errorf("grid = %d, want config value 48", opts.GridResolution)
	}
	if opts.Height != pipeline.DefaultHeight {
		t.Errorf("height = %g, want pipeline default", opts.Height)
	}
}

func TestNewCacheRespectsBackend(t *testing.T) {
	c := testCLI()

	c.Config.Cache.Backend = CacheBackendNone
	cc, err := c.newCache(false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer cc.Close()

	// NullCache never stores anything
	if err := cc.Set(t.Context(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := cc.Get(t.Context(), "k"); hit {
		t.Error("none backend should not cache")
	}
}
