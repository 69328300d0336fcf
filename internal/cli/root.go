package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unfaiyted/godoc-swagger/internal/config"
)

var (
	rootDirFlag string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "godoc-swagger",
	Short: "Parse and navigate godoc-style API annotations",
	Long: `godoc-swagger scans source trees for godoc-style HTTP API annotation
blocks (@Summary, @Param, @Success, @Router, ...), extracts the model types
they reference, and resolves those references to their declaration sites.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&rootDirFlag, "root", "", "project root (default is the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// projectRoot resolves the project root from the --root flag or the working
// directory.
func projectRoot() (string, error) {
	if rootDirFlag != "" {
		return filepath.Abs(rootDirFlag)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}

// loadProjectConfig loads .godoc-swagger/config.yml under the project root.
func loadProjectConfig(rootDir string) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Project root: %s\n", rootDir)
	}
	return cfg, nil
}

// declarationsDBPath picks the SQLite location: the configured cache dir when
// set, otherwise .godoc-swagger under the project root.
func declarationsDBPath(cfg *config.Config, rootDir string) (string, error) {
	dir := cfg.Storage.CacheLocation
	if dir == "" {
		dir = filepath.Join(rootDir, ".godoc-swagger")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}
	return filepath.Join(dir, "declarations.db"), nil
}
