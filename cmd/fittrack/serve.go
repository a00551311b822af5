package fittrack

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/EZP98/fitness-tracker/internal/app"
	"github.com/EZP98/fitness-tracker/internal/db"
	"github.com/EZP98/fitness-tracker/internal/server"
)

var (
	serveAddr   string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync server",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadEnv()
		addr := serveAddr
		if addr == "" {
			addr = envOr("FITTRACK_ADDR", ":8080")
		}
		path := serveDBPath
		if path == "" {
			path = envOr("FITTRACK_SERVER_DB", "")
		}
		if path == "" {
			var err error
			path, err = app.DefaultServerDBPath()
			if err != nil {
				return err
			}
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()
		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		log.Info("sync server listening", zap.String("addr", addr), zap.String("db", path))
		return server.New(sqldb, log).Router().Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default FITTRACK_ADDR or :8080)")
	serveCmd.Flags().StringVar(&serveDBPath, "server-db", "", "Server database path (default FITTRACK_SERVER_DB)")
}
