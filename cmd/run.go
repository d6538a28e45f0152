package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/app"
	"github.com/abhisek/circuitz/internal/logging"
	"github.com/abhisek/circuitz/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// The TUI owns the terminal, so logs go to a file.
	logCfg := cfg.Log
	if logCfg.File == "" {
		p, err := logging.DefaultFile()
		if err != nil {
			return err
		}
		logCfg.File = p
	}
	closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closeLog()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	explainer, status := newExplainer(ctx, st.EventRepo())
	return app.Run(app.Options{
		Generator:   problemGenerator(cmd),
		Explainer:   explainer,
		TutorStatus: status,
	})
}
