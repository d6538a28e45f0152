package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/config"
	"github.com/abhisek/circuitz/internal/store"
)

// cfg is loaded once before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "circuitz",
	Short: "DC circuit practice in the terminal",
	Long: `circuitz generates resistor network problems (series, parallel and
combination), checks your answers and asks an AI tutor for worked solutions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CIRCUITZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides CIRCUITZ_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) error {
	explicit, _ := cmd.Flags().GetString("config")
	path, err := config.Path(explicit)
	if err != nil {
		return err
	}
	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		loaded.Log.Level = lvl
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file or CIRCUITZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
