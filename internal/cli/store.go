package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evoscape/pkg/cache"
	"github.com/matzehuels/evoscape/pkg/pipeline"
	"github.com/matzehuels/evoscape/pkg/run"
	"github.com/matzehuels/evoscape/pkg/store"
)

// storeCommand creates the store command for the shared view store.
func (c *CLI) storeCommand() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and fetch views from the shared store",
		Long: `Save and fetch views from the shared store.

The store keeps named views in MongoDB so expensive recomputation can be
skipped and results can be shared between machines. Configure the
connection in the config file (store.mongo_uri) or pass --uri.`,
	}

	cmd.PersistentFlags().StringVar(&uri, "uri", "", "MongoDB connection string (overrides config)")

	cmd.AddCommand(c.storeSaveCommand(&uri))
	cmd.AddCommand(c.storeGetCommand(&uri))
	cmd.AddCommand(c.storeListCommand(&uri))
	cmd.AddCommand(c.storeDeleteCommand(&uri))

	return cmd
}

// openStore connects to the configured view store.
func (c *CLI) openStore(ctx context.Context, uri string) (store.Store, error) {
	if uri == "" {
		uri = c.Config.Store.MongoURI
	}
	if uri == "" {
		return nil, fmt.Errorf("no store configured (set store.mongo_uri in the config file or pass --uri)")
	}
	return store.NewMongoStore(ctx, uri)
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand(uri *string) *cobra.Command {
	var grid int

	cmd := &cobra.Command{
		Use:   "save [name] [run.json]",
		Short: "Compute a view and store it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreSave(cmd.Context(), args[0], args[1], *uri, grid)
		},
	}

	cmd.Flags().IntVar(&grid, "grid", pipeline.DefaultGridResolution, "fitness surface grid resolution")

	return cmd
}

// runStoreSave computes the view for the run and persists it.
func (c *CLI) runStoreSave(ctx context.Context, name, input, uri string, grid int) error {
	data, err := run.ReadRunFile(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}

	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	runData, err := run.MarshalRun(data)
	if err != nil {
		return fmt.Errorf("serialize run: %w", err)
	}
	runHash := cache.Hash(runData)

	opts := pipeline.Options{GridResolution: grid, Logger: c.Logger}
	view, _, err := runner.ComputeViewWithCacheInfo(ctx, data, runHash, opts)
	if err != nil {
		return fmt.Errorf("compute view: %w", err)
	}

	st, err := c.openStore(ctx, uri)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	rec := store.Record{
		Name:      name,
		RunHash:   runHash,
		CreatedAt: time.Now().UTC(),
		View:      view,
	}
	if err := st.Put(ctx, rec); err != nil {
		return fmt.Errorf("store view: %w", err)
	}

	printSuccess("Stored view %q", name)
	printDetail("run hash %s", runHash[:12])
	return nil
}

// storeGetCommand creates the "store get" subcommand.
func (c *CLI) storeGetCommand(uri *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [name]",
		Short: "Fetch a stored view as view.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStoreGet(cmd.Context(), args[0], *uri, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.view.json)")

	return cmd
}

// runStoreGet fetches the named view and writes it to a file.
func (c *CLI) runStoreGet(ctx context.Context, name, uri, output string) error {
	st, err := c.openStore(ctx, uri)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	rec, err := st.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("fetch view %q: %w", name, err)
	}

	if output == "" {
		output = name + ".view.json"
	}
	if err := run.WriteViewFile(rec.View, output); err != nil {
		return fmt.Errorf("write view %s: %w", output, err)
	}

	printSuccess("Fetched view %q", name)
	printFile(output)
	printDetail("computed %s, run hash %s", rec.CreatedAt.Format(time.RFC3339), rec.RunHash[:12])
	printNewline()
	printNextStep("Render", "evoscape render "+output)
	return nil
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand(uri *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored view names",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, *uri)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			names, err := st.List(ctx)
			if err != nil {
				return fmt.Errorf("list views: %w", err)
			}
			if len(names) == 0 {
				printInfo("Store is empty")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand(uri *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.openStore(ctx, *uri)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("delete view %q: %w", args[0], err)
			}
			printSuccess("Deleted view %q", args[0])
			return nil
		},
	}
}
