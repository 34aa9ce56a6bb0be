// Command vaultctl inspects field classification and manages vault data from
// the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"itemvault/internal/config"
	"itemvault/internal/database"
)

var (
	noColor bool

	// openStore connects to the configured database and returns it with its
	// close function. Tests replace it.
	openStore = func() (*gorm.DB, func() error, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		manager, err := database.NewManager(database.NewConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		return manager.DB(), manager.Close, nil
	}
)

var rootCmd = &cobra.Command{
	Use:   "vaultctl",
	Short: "Itemvault command line tool",
	Long: `vaultctl works with the same field classifier, formatter and database
as the Itemvault API.

Offline commands:
  classify - Show how field names are classified
  format   - Format a value the way an item view shows it

Database commands (use the DB_* environment variables):
  import - Create categories from a YAML template file
  stats  - Print dashboard aggregates`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
