package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/app"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/config"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/database"
	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/observability"
)

func main() {
	root := &cobra.Command{
		Use:   "campushub",
		Short: "Campus information backend",
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger, loggerProvider, err := observability.InitLogging(ctx, cfg)
			if err != nil {
				return err
			}

			a, err := app.Build(ctx, cfg, logger, loggerProvider)
			if err != nil {
				return err
			}
			return a.Run(ctx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}
