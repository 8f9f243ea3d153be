// ABOUTME: Export command for writing saved places as GeoJSON
// ABOUTME: Supports geographic and Web Mercator output

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/geojson"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"e"},
	Short:   "Export saved places as GeoJSON",
	Long: `Export saved places as a GeoJSON FeatureCollection of points.

Places without a focal point are skipped. Use the shell's 'export'
command to write the session history instead.

Examples:
  vantage export
  vantage export --projection 3857
  vantage export --output places.geojson`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projFlag, _ := cmd.Flags().GetString("projection")
		output, _ := cmd.Flags().GetString("output")

		proj, err := geojson.ParseProjection(projFlag)
		if err != nil {
			return err
		}

		places, err := db.ListPlaces()
		if err != nil {
			return fmt.Errorf("failed to list places: %w", err)
		}

		fc, err := geojson.PlacesFeatureCollection(places, proj)
		if err != nil {
			return fmt.Errorf("failed to build GeoJSON: %w", err)
		}
		data, err := geojson.ToJSONIndent(fc)
		if err != nil {
			return fmt.Errorf("failed to encode GeoJSON: %w", err)
		}

		if output == "" {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for export files
			return fmt.Errorf("failed to write export: %w", err)
		}
		color.Green("Exported %d places to %s (%s)", len(fc), output, proj)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("projection", "p", "4326", "output projection: 4326 or 3857")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
