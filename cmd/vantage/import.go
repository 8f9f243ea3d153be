// ABOUTME: Import command for restoring saved places from a YAML backup
// ABOUTME: Existing places win; duplicates by name are skipped and reported

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/storage"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import saved places from a YAML backup",
	Long: `Import places from a YAML backup file created with 'vantage backup'.

Places whose name already exists are skipped.

Examples:
  vantage import places.yaml
  vantage import ~/backups/vantage-20241214.yaml --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename) //nolint:gosec // user-provided backup path
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Import places from '%s'? [y/N] ", filename)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		result, err := storage.ImportFromYAML(db, data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		color.Green("Import complete")
		fmt.Printf("  %d places imported\n", result.Imported)
		for _, name := range result.Skipped {
			color.Yellow("  skipped %s (already exists)", name)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
