// Package cmd implements the scriptgrant CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	verbose       bool
	outDirFlag    string
	themeOverride string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "scriptgrant",
	Short: "scriptgrant keeps userscript @grant declarations in step with the code",
	Long: "scriptgrant post-processes a bundler's output directory and adds the @grant lines\n" +
		"each userscript needs for the userscript manager APIs it calls.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "scriptgrant.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outDirFlag, "out-dir", "o", "", "bundler output directory (overrides out_dir)")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(scanCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("scriptgrant %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
