package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/circuitz/internal/circuit"
	"github.com/abhisek/circuitz/internal/logging"
	"github.com/abhisek/circuitz/internal/server"
	"github.com/abhisek/circuitz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the problem and tutor API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		// Without a log file, logs are human-readable text on stderr.
		logCfg := cfg.Log
		if logCfg.File == "" {
			logCfg.Format = "text"
		}
		closeLog, err := logging.Setup(logCfg)
		if err != nil {
			return fmt.Errorf("set up logging: %w", err)
		}
		defer closeLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var repo store.EventRepo
		if noDB, _ := cmd.Flags().GetBool("no-db"); !noDB {
			st, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()
			repo = st.EventRepo()
		}

		explainer, status := newExplainer(ctx, repo)
		slog.Info("starting api", "addr", addr, "tutor", status)
		return server.Run(ctx, addr, server.Deps{
			Generator: circuit.DefaultGenerator(),
			Explainer: explainer,
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr in config)")
	serveCmd.Flags().Bool("no-db", false, "Do not record tutor requests")
}
