package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"grid-canvas/canvas"
	"grid-canvas/config"
	"grid-canvas/engine"
	"grid-canvas/errors"
	"grid-canvas/graph"
	"grid-canvas/placement"
	"grid-canvas/store"
	"grid-canvas/ui"
)

var (
	version = "dev"
	commit  string
	date    string
)

// app is the state shared by every command after flags are parsed.
type app struct {
	verbose    bool
	configPath string

	logger *log.Logger
	cfg    config.Config
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "gridcanvas",
		Short:         "Grid-snapped drag-and-drop canvas editor",
		Long:          `gridcanvas places widgets on nested, grid-snapped canvases. It opens an editor window, replays scripted drag sessions and checks layout files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			a.logger = newLogger(cmd.ErrOrStderr(), level)

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug("config loaded", "path", a.configPath, "columns", cfg.Columns, "policy", cfg.ConflictPolicy)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("gridcanvas %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")

	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newReplayCmd())
	root.AddCommand(a.newCheckCmd())
	root.AddCommand(a.newTreeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// openStore loads the layout at path, or returns an empty tree when path is
// empty. Layouts without a unit height take the configured one.
func (a *app) openStore(path string) (*store.Store, error) {
	var s *store.Store
	if path == "" {
		s = store.New(placement.Node{ID: store.DefaultRootID}, store.Settings{
			UnitHeight:      a.cfg.UnitHeight,
			LeftPanelOpen:   true,
			BottomPanelOpen: true,
		})
	} else {
		var err error
		if s, err = store.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if s.UnitHeight() <= 0 {
		s.SetUnitHeight(a.cfg.UnitHeight)
	}
	return s, nil
}

func (a *app) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [layout]",
		Short: "Open the editor window",
		Long:  `Open the editor window on a layout file. A missing file starts an empty canvas and is created on Ctrl+S.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultLayoutFile
			if len(args) == 1 {
				path = args[0]
			}
			seed := path
			if _, err := os.Stat(path); os.IsNotExist(err) {
				seed = ""
			}
			s, err := a.openStore(seed)
			if err != nil {
				return err
			}

			debug := ui.NewDebugPanel(0)
			a.logger.SetOutput(io.MultiWriter(cmd.ErrOrStderr(), debug))
			a.logger.Info("opening editor", "layout", path, "nodes", s.Len())

			g := NewGame(a.cfg, s, path, a.logger, debug)
			g.done = cmd.Context().Done()

			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			ebiten.SetWindowTitle(a.cfg.Window.Title)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			if err := ebiten.RunGame(g); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run editor")
			}
			return cmd.Context().Err()
		},
	}
}

func (a *app) newReplayCmd() *cobra.Command {
	var layoutPath, savePath string
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a Starlark drag script headlessly",
		Long: `Replay a Starlark script that drives the board with layout(), place(), grab(),
move(), drop(), cancel(), resize(), release() and scroll(), and report every step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", args[0])
				}
				return errors.Wrap(errors.ErrCodeScript, err, "read %s", args[0])
			}
			s, err := a.openStore(layoutPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			board := canvas.NewBoard(s, canvas.OptionsFromConfig(a.cfg, a.logger))
			sc := engine.NewScenario(board, s, a.logger, out)
			if _, err := sc.Run(filepath.Base(args[0]), string(script)); err != nil {
				return err
			}

			rows := make([][]string, 0, len(sc.Steps()))
			for i, st := range sc.Steps() {
				rows = append(rows, []string{fmt.Sprint(i + 1), st.Action, st.Detail})
			}
			printTable(out, []string{"#", "Action", "Detail"}, rows, nil)
			printSuccess(out, "replayed %s: %d steps, %d nodes", args[0], len(sc.Steps()), s.Len())

			if savePath != "" {
				if err := store.SaveFile(savePath, s); err != nil {
					return err
				}
				printFile(out, savePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&layoutPath, "layout", "l", "", "layout file to start from")
	cmd.Flags().StringVarP(&savePath, "save", "s", "", "write the resulting layout here")
	return cmd
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <layout>",
		Short: "Validate a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report := s.Check(a.cfg.Columns)
			if len(report.Issues) == 0 {
				printSuccess(out, "%s: %d nodes, no issues", args[0], report.Nodes)
				return nil
			}

			rows := make([][]string, len(report.Issues))
			for i, is := range report.Issues {
				rows[i] = []string{is.NodeID, is.Severity.String(), string(is.Code), is.Message}
			}
			printTable(out, []string{"Node", "Severity", "Code", "Message"}, rows, func(row, col int) lipgloss.Style {
				if col != 1 {
					return lipgloss.NewStyle()
				}
				if report.Issues[row].Severity == store.Error {
					return styleError
				}
				return styleWarning
			})

			if n := report.Errors(); n > 0 {
				return errors.New(errors.ErrCodeInvalidLayout, "%s: %d errors, %d warnings", args[0], n, len(report.Issues)-n)
			}
			printWarning(out, "%s: %d warnings", args[0], len(report.Issues))
			return nil
		},
	}
}

func (a *app) newTreeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "tree <layout>",
		Short: "Export the canvas tree as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.LoadFile(args[0])
			if err != nil {
				return err
			}
			nodes, links := s.Graph()
			dot := graph.ToDOT(nodes, links)

			out := cmd.OutOrStdout()
			switch ext := strings.ToLower(filepath.Ext(output)); {
			case output == "":
				_, err := io.WriteString(out, dot)
				return err
			case ext == ".dot" || ext == ".gv":
				if err := os.WriteFile(output, []byte(dot), 0o644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
				}
			case ext == ".svg":
				svg, err := graph.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
				if err := os.WriteFile(output, svg, 0o644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
				}
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported output %q, want .dot, .gv or .svg", output)
			}
			printSuccess(out, "%d nodes, %d links", len(nodes), len(links))
			printFile(out, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot, .gv or .svg); DOT goes to stdout when empty")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render("gridcanvas"))
			printKeyValue(out, "version", version)
			if commit != "" {
				printKeyValue(out, "commit", commit)
			}
			if date != "" {
				printKeyValue(out, "built", date)
			}
		},
	}
}
