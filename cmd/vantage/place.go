// ABOUTME: Place commands for managing saved viewpoints
// ABOUTME: Add, list, remove, and open a session at named places

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/ui"
	"github.com/spf13/cobra"
)

var placeCmd = &cobra.Command{
	Use:     "place",
	Aliases: []string{"p"},
	Short:   "Manage saved places",
}

var placeAddCmd = &cobra.Command{
	Use:     "add <name> --lon <longitude> --lat <latitude>",
	Aliases: []string{"a"},
	Short:   "Save a named viewpoint",
	Long: `Save a named viewpoint to return to later.

Examples:
  vantage place add office --lon -87.6298 --lat 41.8781
  vantage place add "harbor overview" --lon -122.41 --lat 37.80 --range 4500 --pitch -35`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if err := models.ValidateName(name); err != nil {
			return err
		}

		lon, _ := cmd.Flags().GetFloat64("lon")
		lat, _ := cmd.Flags().GetFloat64("lat")
		alt, _ := cmd.Flags().GetFloat64("alt")

		vp := models.NewFocalViewpoint(lon, lat, alt)
		if cmd.Flags().Changed("heading") {
			heading, _ := cmd.Flags().GetFloat64("heading")
			vp.Heading = models.Some(heading)
		}
		if cmd.Flags().Changed("pitch") {
			pitch, _ := cmd.Flags().GetFloat64("pitch")
			vp.Pitch = models.Some(pitch)
		}
		if cmd.Flags().Changed("range") {
			rng, _ := cmd.Flags().GetFloat64("range")
			vp = vp.WithRange(rng)
		}
		if err := vp.Validate(); err != nil {
			return err
		}

		place := models.NewPlace(name, vp)
		if err := db.CreatePlace(place); err != nil {
			return fmt.Errorf("failed to save place: %w", err)
		}

		color.Green("✓ Saved %s", place.Name)
		fmt.Printf("  %s\n", ui.FormatViewpointDetails(place.Viewpoint))
		return nil
	},
}

var placeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List saved places",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		places, err := db.ListPlaces()
		if err != nil {
			return fmt.Errorf("failed to list places: %w", err)
		}

		if len(places) == 0 {
			fmt.Println("No places saved.")
			return nil
		}

		for _, place := range places {
			fmt.Println(ui.FormatPlace(place))
		}
		return nil
	},
}

var placeRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved place",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		place, err := db.FindPlace(args[0])
		if err != nil {
			return fmt.Errorf("failed to find place: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Remove '%s'? [y/N] ", place.Name)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		if err := db.DeletePlace(place.ID); err != nil {
			return fmt.Errorf("failed to remove place: %w", err)
		}

		color.Green("✓ Removed %s", place.Name)
		return nil
	},
}

var placeGotoCmd = &cobra.Command{
	Use:     "goto <name>",
	Aliases: []string{"g"},
	Short:   "Start a session at a saved place",
	Long: `Start an interactive session with the camera at a saved place.

Places can be referenced by name, full id, or an id prefix of at least 4 characters.

Examples:
  vantage place goto office
  vantage place goto 3f2a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		place, err := db.FindPlace(args[0])
		if err != nil {
			return fmt.Errorf("failed to find place: %w", err)
		}
		return runSession(cmd, place)
	},
}

func init() {
	placeAddCmd.Flags().Float64("lon", 0, "longitude of the focal point (required)")
	placeAddCmd.Flags().Float64("lat", 0, "latitude of the focal point (required)")
	placeAddCmd.Flags().Float64("alt", 0, "altitude of the focal point in meters")
	placeAddCmd.Flags().Float64("heading", 0, "camera heading in degrees")
	placeAddCmd.Flags().Float64("pitch", 0, "camera pitch in degrees")
	placeAddCmd.Flags().Float64("range", 0, "distance from the focal point in meters")
	_ = placeAddCmd.MarkFlagRequired("lon")
	_ = placeAddCmd.MarkFlagRequired("lat")

	placeRemoveCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	placeCmd.AddCommand(placeAddCmd, placeListCmd, placeRemoveCmd, placeGotoCmd)
	rootCmd.AddCommand(placeCmd)
}
