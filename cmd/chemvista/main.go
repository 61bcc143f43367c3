package main

import (
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/chemvista/chemvista/internal/logger"
	"github.com/chemvista/chemvista/internal/render"
	"github.com/chemvista/chemvista/internal/scene"
	"github.com/chemvista/chemvista/internal/ui"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0"

func main() {
	var (
		xyzFiles       []string
		cubeMolFiles   []string
		cubeFieldFiles []string
		settingsPath   string
		logLevel       string
		jsonLog        bool
	)

	rootCmd := &cobra.Command{
		Use:     "chemvista",
		Short:   "Molecular structure and scalar field viewer",
		Long:    "ChemVista loads XYZ and Gaussian cube files into a scene tree and renders molecules, trajectories and isosurfaces in an interactive 3D view.",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Setup(logLevel, jsonLog, os.Stderr); err != nil {
				return err
			}
			log := logger.For("main")

			defaults := render.NewDefaults()
			if settingsPath != "" {
				var err error
				defaults, err = render.LoadDefaults(settingsPath)
				if err != nil {
					return fmt.Errorf("settings: %w", err)
				}
				log.Info().Str("file", settingsPath).Msg("loaded render settings")
			}

			manager := scene.NewManager(defaults)

			// Positional arguments are treated as XYZ files. A file
			// that fails to load is reported, not fatal; the viewer
			// still opens with whatever did load.
			xyzFiles = append(xyzFiles, args...)
			for _, path := range xyzFiles {
				if _, err := manager.LoadXYZ(path); err != nil {
					log.Warn().Err(err).Str("file", path).Msg("skipping file")
				}
			}
			for _, path := range cubeMolFiles {
				if _, err := manager.LoadMoleculeCube(path); err != nil {
					log.Warn().Err(err).Str("file", path).Msg("skipping file")
				}
			}
			for _, path := range cubeFieldFiles {
				if _, err := manager.LoadFieldCube(path); err != nil {
					log.Warn().Err(err).Str("file", path).Msg("skipping file")
				}
			}
			if n := len(manager.RootObjects()); n > 0 {
				log.Info().Int("objects", n).Msg("preloaded scene")
			}

			app := fyneapp.NewWithID("org.chemvista.chemvista")
			if icon := ui.AppIconResource(); icon != nil {
				app.SetIcon(icon)
			}
			window := app.NewWindow("ChemVista")

			ui.NewRootUI(window, app, manager)
			window.ShowAndRun()
			return nil
		},
	}

	rootCmd.Flags().StringSliceVar(&xyzFiles, "xyz", nil, "XYZ file(s) to load on startup")
	rootCmd.Flags().StringSliceVar(&cubeMolFiles, "cube-mol", nil, "cube file(s) to load as molecule plus field")
	rootCmd.Flags().StringSliceVar(&cubeFieldFiles, "cube-field", nil, "cube file(s) to load as standalone field")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "YAML file overriding render defaults")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&jsonLog, "json-log", false, "emit JSON logs instead of console output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
