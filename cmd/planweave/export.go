package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/planweave/planweave/internal/app"
	"github.com/planweave/planweave/internal/export"
	"github.com/planweave/planweave/internal/plan"
	"github.com/planweave/planweave/internal/render"
	"github.com/planweave/planweave/internal/store"
)

var (
	exportAll    bool
	exportOutDir string
)

var exportCmd = &cobra.Command{
	Use:   "export [region]",
	Short: "Export template regions as PNG files",
	Long: `Export one region (a section id, "header" or "footer") or, with --all,
the header, every visible section and the footer of the current document.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every visible region")
	exportCmd.Flags().StringVarP(&exportOutDir, "output", "o", "", "output directory (overrides config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if !exportAll && len(args) != 1 {
		return fmt.Errorf("pass a region id or --all")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := app.SetupLogger(cfg.Logging)

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer st.Close()

	doc, found, err := st.LoadState()
	if err != nil {
		return fmt.Errorf("failed to load working state: %w", err)
	}
	if !found {
		doc = plan.DefaultDocument()
	}

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("failed to build renderer: %w", err)
	}

	outDir := cfg.Export.OutputDir
	if exportOutDir != "" {
		outDir = exportOutDir
	}

	exporter := export.New(
		renderer,
		export.NewHTTPRasterizer(cfg.Export.Rasterizer),
		export.DirSink{Dir: outDir},
		export.Config{Pause: cfg.Export.Pause, Background: cfg.Export.Background},
		logger,
	)

	ctx := context.Background()
	var results []export.Result
	if exportAll {
		results = exporter.ExportAll(ctx, doc)
	} else {
		results = []export.Result{exporter.ExportSection(ctx, doc, args[0])}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tFILE\tRESULT")
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s\t-\tfailed at %s: %v\n", r.RegionID, r.FailedAt, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\tok\n", r.RegionID, r.Filename)
	}
	w.Flush()

	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(results))
	}
	return nil
}
