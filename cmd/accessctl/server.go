package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plantops/accessd/pkg/audit"
	"github.com/plantops/accessd/pkg/config"
	"github.com/plantops/accessd/pkg/db"
	"github.com/plantops/accessd/pkg/server"
	"github.com/plantops/accessd/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("ACCESSD_BIND_ADDRESS"); addr != "" {
		return addr
	}
	return config.Get().BindAddress
}

func defaultPort() string {
	if port := os.Getenv("ACCESSD_PORT"); port != "" {
		return port
	}
	return strconv.Itoa(config.Get().Port)
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the accessd permission server",
	Long: `Run the accessd permission server.

Requires the DATABASE_URL environment variable.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg := config.Get()
		log := setupLogger(cfg.LogLevel)

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Info("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		gormDB, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		var auditStore *audit.Store
		if cfg.AuditEnabled {
			auditDB, err := sql.Open("postgres", db.URL())
			if err != nil {
				fmt.Fprintln(os.Stderr, "Unable to open audit DB:", err)
				os.Exit(1)
			}
			auditStore = audit.NewStore(auditDB)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(gormDB, cfg, log, auditStore, host, port)

		endpoints.RegisterAll(s)

		log.Infof("Running server at http://%s:%s...", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
