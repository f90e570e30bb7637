package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the working document to the built-in template",
	Long: `Reset discards the mirrored working document so the next server start
begins from the built-in weekly plan template. Saved drafts are not touched.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		fmt.Print("This will discard the current working document. Continue? [y/N]: ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Reset(); err != nil {
		return fmt.Errorf("failed to reset state: %w", err)
	}

	fmt.Println("Working document reset")
	return nil
}
