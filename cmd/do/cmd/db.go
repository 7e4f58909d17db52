package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/templui/focusflow"
	"github.com/templui/focusflow/internal/db"
	"github.com/templui/focusflow/internal/repository"
	"github.com/templui/focusflow/internal/service"
)

type dbFlags struct {
	driver     string
	connection string
}

// DBCmd groups database maintenance: migrations and resource seeding.
// Connection settings default to DB_DRIVER and DB_CONNECTION from the environment or .env.
func DBCmd() *cobra.Command {
	_ = godotenv.Load()

	flags := &dbFlags{}
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}
	cmd.PersistentFlags().StringVar(&flags.driver, "driver", envOr("DB_DRIVER", "sqlite"), "database driver (sqlite or pgx)")
	cmd.PersistentFlags().StringVar(&flags.connection, "db", envOr("DB_CONNECTION", "./data/focusflow.db"), "connection string")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.with(func(conn *sqlx.DB) error {
					err := db.RunMigrations(conn.DB, flags.driver)
					if err != nil {
						return err
					}
					return printVersion(cmd, conn, flags.driver)
				})
			},
		},
		&cobra.Command{
			Use:   "rollback",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.with(func(conn *sqlx.DB) error {
					err := db.MigrateDown(conn.DB, flags.driver)
					if err != nil {
						return err
					}
					return printVersion(cmd, conn, flags.driver)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.with(func(conn *sqlx.DB) error {
					return printVersion(cmd, conn, flags.driver)
				})
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the bundled resources into an empty resources table",
			RunE: func(cmd *cobra.Command, args []string) error {
				return flags.with(func(conn *sqlx.DB) error {
					resources := service.NewResourceService(repository.NewResourceRepository(conn), time.Now)

					ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
					defer cancel()

					n, err := resources.Seed(ctx, focusflow.ResourcesFS, "content/resources")
					if err != nil {
						return err
					}
					if n == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "resources already present, nothing seeded")
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "seeded %d resources\n", n)
					return nil
				})
			},
		},
	)

	return cmd
}

func (f *dbFlags) with(fn func(conn *sqlx.DB) error) error {
	conn, err := db.Init(f.driver, f.connection)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

func printVersion(cmd *cobra.Command, conn *sqlx.DB, driver string) error {
	version, err := db.Version(conn.DB, driver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
