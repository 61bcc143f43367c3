package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chemvista/chemvista/internal/icons"
	"github.com/chemvista/chemvista/internal/logger"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0"

func main() {
	var (
		outDir   string
		sizes    []int
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:     "chemvista-generate-icons",
		Short:   "Generate the ChemVista application icons",
		Long:    "Renders the application icon at the requested pixel sizes and writes icon_<size>.png files plus icon.png into the output directory.",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Setup(logLevel, false, os.Stderr); err != nil {
				return err
			}
			for _, size := range sizes {
				if size < 8 {
					return fmt.Errorf("size %d too small, minimum is 8", size)
				}
			}
			return icons.Generate(outDir, sizes)
		},
	}

	rootCmd.Flags().StringVar(&outDir, "out", "icons", "output directory")
	rootCmd.Flags().IntSliceVar(&sizes, "sizes", icons.DefaultSizes, "icon sizes to generate")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
