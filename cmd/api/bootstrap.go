package main

import (
	"fmt"
	"time"

	"grant_portal/internal/infrastructure/config"
	"grant_portal/internal/infrastructure/database"
	"grant_portal/internal/infrastructure/logger"
	"grant_portal/internal/infrastructure/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBootstrapCmd() *cobra.Command {
	var maxWait time.Duration
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the DynamoDB tables and storage buckets if missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.LogLevel, cfg.LogFormat)
			defer func() { _ = log.Sync() }()

			ddb, err := database.ConnectDynamoDB(ctx, cfg)
			if err != nil {
				return fmt.Errorf("dynamodb: %w", err)
			}
			created, err := database.EnsureTables(ctx, ddb,
				database.ApplicationsTable(cfg.ApplicationsTable),
				database.DocumentsTable(cfg.DocumentsTable),
			)
			if err != nil {
				return fmt.Errorf("create tables: %w", err)
			}
			if len(created) > 0 {
				log.Info("tables created, waiting until active", zap.Strings("tables", created))
				if err := database.WaitForTables(ctx, ddb, created, maxWait); err != nil {
					return fmt.Errorf("wait for tables: %w", err)
				}
			}

			blobs, err := storage.NewMinioStorage(cfg)
			if err != nil {
				return fmt.Errorf("object storage: %w", err)
			}
			if err := blobs.EnsureBuckets(ctx); err != nil {
				return fmt.Errorf("create buckets: %w", err)
			}

			log.Info("bootstrap done")
			return nil
		},
	}
	cmd.Flags().DurationVar(&maxWait, "wait", 2*time.Minute, "How long to wait for new tables to become active")
	return cmd
}
