package main

import (
	"fmt"

	"grant_portal/internal/adapter/http/handlers"
	"grant_portal/internal/adapter/http/routes"
	"grant_portal/internal/adapter/persistence/repository"
	"grant_portal/internal/infrastructure/config"
	"grant_portal/internal/infrastructure/database"
	"grant_portal/internal/infrastructure/lock"
	"grant_portal/internal/infrastructure/logger"
	"grant_portal/internal/infrastructure/notification"
	"grant_portal/internal/infrastructure/storage"
	"grant_portal/internal/usecase"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
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
			awsCfg, err := database.NewAWSConfig(ctx, cfg)
			if err != nil {
				return fmt.Errorf("aws config: %w", err)
			}
			blobs, err := storage.NewMinioStorage(cfg)
			if err != nil {
				return fmt.Errorf("object storage: %w", err)
			}
			rdb, err := lock.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
			if err != nil {
				return fmt.Errorf("redis: %w", err)
			}
			defer rdb.Close()

			applications := repository.NewApplicationDynamoRepository(ddb, cfg.ApplicationsTable)
			documents := repository.NewDocumentDynamoRepository(ddb, cfg.DocumentsTable)
			actionLock := lock.NewRedisActionLock(rdb, cfg.ActionLockTTL)
			notifier := notification.NewNotifier(
				ses.NewFromConfig(awsCfg),
				sns.NewFromConfig(awsCfg),
				notification.Options{
					Enabled:  cfg.NotificationsEnabled,
					Sender:   cfg.SESSender,
					TopicARN: cfg.SNSTopicARN,
				},
				log,
			)

			applicationUseCase := usecase.NewApplicationUseCase(applications, documents, blobs, actionLock, log)
			reviewUseCase := usecase.NewReviewUseCase(applications, documents, blobs, notifier, actionLock, log)

			log.Info("starting grant portal",
				zap.Int("port", cfg.HTTPPort),
				zap.String("applications_table", cfg.ApplicationsTable),
				zap.String("documents_table", cfg.DocumentsTable),
				zap.Bool("notifications_enabled", cfg.NotificationsEnabled),
			)
			err = routes.Run(ctx, cfg.HTTPPort, log, routes.Handlers{
				Application: handlers.NewApplicationHandler(applicationUseCase, cfg.MaxUploadBytes),
				Review:      handlers.NewReviewHandler(reviewUseCase),
			})
			reviewUseCase.Wait()
			return err
		},
	}
}
