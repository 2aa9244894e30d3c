package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/phanxgames/frameshow"
	"github.com/phanxgames/frameshow/config"
	"github.com/phanxgames/frameshow/player"
	"github.com/phanxgames/frameshow/store"
	"github.com/phanxgames/frameshow/store/badgerstore"
	"github.com/phanxgames/frameshow/store/sqlstore"
)

// app is the state shared by every subcommand, built in PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "frameshow",
		Short:         "Present and manage keyframe-animated scene documents",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (json, yaml or toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(a.presentCmd(), a.infoCmd(), a.pagesCmd())
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().Timestamp().Logger()
	return nil
}

func (a *app) openStore() (store.PageStore, error) {
	switch a.cfg.Store.Driver {
	case config.DriverSQLite:
		return sqlstore.Open(a.cfg.Store.Path)
	default:
		l := a.log.With().Str("component", "badger").Logger()
		return badgerstore.Open(badgerstore.Config{Path: a.cfg.Store.Path, SyncWrites: true, Logger: &l})
	}
}

func (a *app) newScene() *frameshow.Scene {
	s := frameshow.NewScene(a.cfg.SceneConfig())
	s.SetLogger(a.log.With().Str("component", "scene").Logger())
	s.SetDebugMode(a.cfg.Debug)
	return s
}

// loadDocument reads a document from file, or from the page store when
// file is empty. A missing autosave page yields nil data and no error.
func (a *app) loadDocument(ctx context.Context, file, page string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	st, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()
	data, err := st.Load(ctx, page)
	if errors.Is(err, store.ErrPageNotFound) && page == store.AutosaveName {
		return nil, nil
	}
	return data, err
}

func (a *app) presentCmd() *cobra.Command {
	var (
		page     string
		script   string
		start    bool
		autosave bool
	)
	cmd := &cobra.Command{
		Use:   "present [file]",
		Short: "Open a scene in a window",
		Long: `Opens a scene document from a file or from the page store and runs it.
Arrow keys change frames, P or ctrl+Enter toggles presenting, ctrl+Z undoes,
ctrl+Q quits. Settled edits are written to the autosave page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			ctx := cmd.Context()
			data, err := a.loadDocument(ctx, file, page)
			if err != nil {
				return err
			}
			scene := a.newScene()
			if data != nil {
				if err := scene.Load(data); err != nil {
					return err
				}
			}
			scene.SetParams(frameshow.MapParams{})
			scene.SetPresenting(start)

			history := frameshow.NewHistory(a.cfg.HistoryDepth)
			if script != "" {
				raw, err := os.ReadFile(script)
				if err != nil {
					return err
				}
				ap, err := frameshow.LoadAutoplayScript(raw)
				if err != nil {
					return err
				}
				ap.History = history
				scene.SetAutoplay(ap)
			}

			pcfg := player.Config{
				Title:         "frameshow",
				ShowFPS:       a.cfg.ShowFPS,
				History:       history,
				ScreenshotDir: a.cfg.ScreenshotDir,
				Logger:        &a.log,
			}
			if file != "" {
				pcfg.Title = "frameshow - " + filepath.Base(file)
			}
			if autosave {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				pcfg.OnSettle = func(data []byte) {
					if err := st.Save(context.Background(), store.AutosaveName, data); err != nil {
						a.log.Error().Err(err).Msg("autosave")
					}
				}
			}
			return player.Run(scene, pcfg)
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", store.AutosaveName, "page to open when no file is given")
	cmd.Flags().StringVar(&script, "autoplay", "", "autoplay script to run")
	cmd.Flags().BoolVar(&start, "start", false, "start in presentation mode")
	cmd.Flags().BoolVar(&autosave, "autosave", true, "write settled edits to the autosave page")
	return cmd
}

func (a *app) infoCmd() *cobra.Command {
	var page string
	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Print a summary of a scene document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			data, err := a.loadDocument(cmd.Context(), file, page)
			if err != nil {
				return err
			}
			if data == nil {
				return fmt.Errorf("%w: %s", store.ErrPageNotFound, page)
			}
			scene := a.newScene()
			if err := scene.Load(data); err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), scene)
			return nil
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", store.AutosaveName, "page to inspect when no file is given")
	return cmd
}

func printInfo(w io.Writer, s *frameshow.Scene) {
	kinds := map[string]int{}
	keyframes := 0
	for _, o := range s.Objects() {
		kinds[o.Kind.String()]++
		keyframes += o.Properties.Len()
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "frames:    %d (current %d)\n", s.NumFrames(), s.Frame())
	fmt.Fprintf(w, "objects:   %d (%d keyframes)\n", len(s.Objects()), keyframes)
	for _, k := range names {
		fmt.Fprintf(w, "  %-8s %d\n", k, kinds[k])
	}
	fmt.Fprintf(w, "camera:    %d keyframes, style %s\n", s.Camera().Properties.Len(), s.Camera().Style())
	fmt.Fprintf(w, "pen:       %d strokes\n", len(s.Pen().Drawings))
}

func (a *app) pagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Manage pages in the configured store",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List page names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				names, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "import <name> <file>",
			Short: "Validate a scene document and store it as a page",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := os.ReadFile(args[1])
				if err != nil {
					return err
				}
				scene := a.newScene()
				if err := scene.Load(data); err != nil {
					return err
				}
				canonical, err := scene.MarshalJSON()
				if err != nil {
					return err
				}
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				if err := st.Save(cmd.Context(), args[0], canonical); err != nil {
					return err
				}
				a.log.Info().Str("page", args[0]).Int("objects", len(scene.Objects())).Msg("imported")
				return nil
			},
		},
		&cobra.Command{
			Use:   "export <name> [file]",
			Short: "Write a page to a file or stdout",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				data, err := st.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(args) == 2 {
					return os.WriteFile(args[1], data, 0o644)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a page",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.openStore()
				if err != nil {
					return err
				}
				defer st.Close()
				return st.Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}
