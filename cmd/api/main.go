package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "grant_portal/docs"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// @title           Grant Portal API
// @version         1.0
// @description     Grant application portal: applicant drafts and submissions, two-tier review workflow.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description Caller id injected by the auth gateway.

// @securityDefinitions.apikey UserRole
// @in header
// @name X-User-Role
// @description applicant, reviewer_tier1 or reviewer_tier2.

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "grant-portal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCmd()
	cmd := &cobra.Command{
		Use:          "grant-portal",
		Short:        "Grant application portal API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	cmd.AddCommand(serve, newBootstrapCmd())
	return cmd
}
