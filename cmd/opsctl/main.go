// Command opsctl is the operator CLI: schema migrations, on-demand
// integrity audits and outbox maintenance.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/bizops-backend/internal/app"
	"github.com/heartmarshall/bizops-backend/internal/cli"
	"github.com/heartmarshall/bizops-backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "opsctl",
		Short:         "Operator tooling for the operations backend",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $CONFIG_PATH or "+config.DefaultPath+")")

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.AuditCmd())
	rootCmd.AddCommand(cli.IssuesCmd())
	rootCmd.AddCommand(cli.OutboxCmd())
	rootCmd.AddCommand(cli.UsersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
