// ABOUTME: Backup command for exporting saved places to YAML
// ABOUTME: Creates portable backup files for moving places between machines

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/storage"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of saved places",
	Long: `Create a YAML backup file containing all saved places.

Navigation history is never persisted and is not part of the backup.

Examples:
  vantage backup --output places.yaml
  vantage backup -o ~/backups/vantage-$(date +%Y%m%d).yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		data, err := storage.ExportToYAML(db)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = fmt.Sprintf("vantage-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		places, _ := db.ListPlaces()

		color.Green("Backup created: %s", output)
		fmt.Printf("  %d places\n", len(places))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: vantage-YYYYMMDD-HHMMSS.yaml)")

	rootCmd.AddCommand(backupCmd)
}
