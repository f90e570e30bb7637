package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/planweave/planweave/internal/store"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage saved drafts",
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved drafts",
	RunE:  runDraftList,
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftDelete,
}

var draftExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all drafts to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftExport,
}

var draftImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import drafts from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftImport,
}

func init() {
	draftCmd.AddCommand(draftListCmd, draftDeleteCmd, draftExportCmd, draftImportCmd)
	rootCmd.AddCommand(draftCmd)
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return store.Open(cfg.Storage.Path)
}

func runDraftList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	drafts, err := st.ListDrafts()
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}

	if len(drafts) == 0 {
		fmt.Println("No drafts saved")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, d := range drafts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, d.CreatedAt.Format(time.RFC3339))
	}
	w.Flush()

	fmt.Printf("\nTotal: %d drafts\n", len(drafts))
	return nil
}

func runDraftDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDraft(args[0]); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	fmt.Printf("Draft %s deleted\n", args[0])
	return nil
}

func runDraftExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := st.ExportDrafts()
	if err != nil {
		return fmt.Errorf("failed to export drafts: %w", err)
	}

	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}

	fmt.Printf("Drafts exported to %s\n", args[0])
	return nil
}

func runDraftImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	imported, err := st.ImportDrafts(data)
	if err != nil {
		return fmt.Errorf("failed to import drafts: %w", err)
	}

	fmt.Printf("Imported %d drafts\n", len(imported))
	return nil
}
