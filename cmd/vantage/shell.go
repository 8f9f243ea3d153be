// ABOUTME: Interactive shell driving a camera session from the terminal
// ABOUTME: Line-oriented commands for flying, moving, and walking the history

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/vantage/internal/geojson"
	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/session"
	"github.com/harper/vantage/internal/storage"
	"github.com/harper/vantage/internal/ui"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  fly <lon> <lat> [range] [name]   fly the camera to a viewpoint (recorded)
  move <lon> <lat> [range]         drag the camera (recorded once it settles)
  back | forward                   walk the history
  jump <index>                     jump to an entry from 'history'
  history                          list recorded viewpoints
  where                            show the current viewpoint
  state                            show back/forward availability
  clear                            forget the history
  save <name>                      save the current viewpoint as a place
  place <name>                     fly to a saved place
  export <file> [projection]       write the history as GeoJSON
  help | quit`

var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"sh"},
	Short:   "Start an interactive navigation session",
	Long: `Start an interactive session with an in-memory viewpoint history.

The history lives only for the session. Save viewpoints you want to keep
as places.

Examples:
  vantage shell
  vantage shell --at office
  echo "fly -87.6 41.9 1500" | vantage shell`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		at, _ := cmd.Flags().GetString("at")

		var start *models.Place
		if at != "" {
			place, err := db.FindPlace(at)
			if err != nil {
				return fmt.Errorf("failed to find place: %w", err)
			}
			start = place
		}

		return runSession(cmd, start)
	},
}

func init() {
	shellCmd.Flags().String("at", "", "start at a saved place")

	rootCmd.AddCommand(shellCmd)
}

// runSession opens a session and runs the shell on the command's input and output.
func runSession(cmd *cobra.Command, start *models.Place) error {
	sess, err := newSession(start)
	if err != nil {
		return err
	}
	defer sess.Close()

	cancel := sess.OnStateChanged(func(canBack, canForward bool) {
		logger.Debug().Bool("can_go_back", canBack).Bool("can_go_forward", canForward).Msg("history state changed")
	})
	defer cancel()

	return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), sess, db)
}

// shell reads commands from in and reports to out until EOF or quit.
type shell struct {
	out    io.Writer
	sess   *session.Session
	places *storage.SQLiteDB
}

func runShell(in io.Reader, out io.Writer, sess *session.Session, places *storage.SQLiteDB) error {
	sh := &shell{out: out, sess: sess, places: places}

	if vp, ok := sess.Current(); ok {
		fmt.Fprintln(out, ui.FormatViewpoint(vp))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		if err := sh.exec(fields[0], fields[1:]); err != nil {
			fmt.Fprintln(out, color.RedString("error: %v", err))
		}
	}
}

func (sh *shell) exec(name string, args []string) error {
	switch name {
	case "fly", "goto":
		vp, err := parseViewpoint(args, true)
		if err != nil {
			return err
		}
		if err := sh.sess.Navigate(vp); err != nil {
			return err
		}
		sh.printMove(vp)
	case "move":
		vp, err := parseViewpoint(args, false)
		if err != nil {
			return err
		}
		if err := sh.sess.Observe(vp); err != nil {
			return err
		}
		sh.printMove(vp)
	case "back", "b":
		vp, err := sh.sess.Back()
		if err != nil {
			return err
		}
		sh.printMove(vp)
	case "forward", "f":
		vp, err := sh.sess.Forward()
		if err != nil {
			return err
		}
		sh.printMove(vp)
	case "jump", "j":
		return sh.jump(args)
	case "history", "h":
		fmt.Fprintln(sh.out, ui.FormatHistory(sh.sess.History()))
	case "where":
		vp, ok := sh.sess.Current()
		if !ok {
			return session.ErrNoCurrent
		}
		fmt.Fprintln(sh.out, ui.FormatViewpoint(vp))
	case "state":
		fmt.Fprintln(sh.out, ui.FormatState(sh.sess.State()))
	case "clear":
		sh.sess.Clear()
		fmt.Fprintln(sh.out, color.GreenString("✓ History cleared"))
	case "save":
		return sh.save(args)
	case "place":
		return sh.gotoPlace(args)
	case "export":
		return sh.export(args)
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", name)
	}
	return nil
}

func (sh *shell) printMove(vp models.Viewpoint) {
	fmt.Fprintln(sh.out, ui.FormatViewpoint(vp))
	fmt.Fprintln(sh.out, ui.FormatState(sh.sess.State()))
}

func (sh *shell) jump(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: jump <index>")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}

	vp, recorded, err := sh.sess.JumpTo(index)
	if err != nil {
		return err
	}
	if recorded {
		fmt.Fprintln(sh.out, color.New(color.Faint).Sprint("(already in history)"))
	}
	sh.printMove(vp)
	return nil
}

func (sh *shell) save(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: save <name>")
	}
	if sh.places == nil {
		return fmt.Errorf("no places database")
	}
	name := strings.Join(args, " ")
	if err := models.ValidateName(name); err != nil {
		return err
	}

	vp, ok := sh.sess.Current()
	if !ok {
		return session.ErrNoCurrent
	}

	place := models.NewPlace(name, vp)
	if err := sh.places.CreatePlace(place); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, color.GreenString("✓ Saved place %s", place.Name))
	return nil
}

func (sh *shell) gotoPlace(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: place <name>")
	}
	if sh.places == nil {
		return fmt.Errorf("no places database")
	}

	place, err := sh.places.FindPlace(strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no place named %q", strings.Join(args, " "))
		}
		return err
	}
	if err := sh.sess.Navigate(place.Viewpoint); err != nil {
		return err
	}
	sh.printMove(place.Viewpoint)
	return nil
}

func (sh *shell) export(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: export <file> [projection]")
	}
	proj := geojson.WGS84
	if len(args) == 2 {
		p, err := geojson.ParseProjection(args[1])
		if err != nil {
			return err
		}
		proj = p
	}

	fc, err := geojson.HistoryCollection(sh.sess.History(), proj, true)
	if err != nil {
		return err
	}
	data, err := geojson.ToJSONIndent(fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil { //nolint:gosec // 0644 is intentional for export files
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintln(sh.out, color.GreenString("✓ Exported %d features to %s (%s)", len(fc), args[0], proj))
	return nil
}

// parseViewpoint reads "<lon> <lat> [range] [name...]". Names are only accepted when allowName is set.
func parseViewpoint(args []string, allowName bool) (models.Viewpoint, error) {
	if len(args) < 2 {
		return models.Viewpoint{}, fmt.Errorf("expected <lon> <lat> [range]")
	}
	lon, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return models.Viewpoint{}, fmt.Errorf("invalid longitude %q", args[0])
	}
	lat, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return models.Viewpoint{}, fmt.Errorf("invalid latitude %q", args[1])
	}

	vp := models.NewFocalViewpoint(lon, lat, 0)
	rest := args[2:]
	if len(rest) > 0 {
		if rng, err := strconv.ParseFloat(rest[0], 64); err == nil {
			vp = vp.WithRange(rng)
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		if !allowName {
			return models.Viewpoint{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
		}
		vp = vp.WithName(strings.Join(rest, " "))
	}

	if err := vp.Validate(); err != nil {
		return models.Viewpoint{}, err
	}
	return vp, nil
}
