package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"bank-assistant/handler"
	"bank-assistant/internal/config"
	"bank-assistant/internal/integrations/paramstore"
	"bank-assistant/internal/logging"
	"bank-assistant/internal/repository"
	"bank-assistant/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(cfg.LogLevel, os.Stdout))
	if err := cfg.RequireAWS(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	accounts, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.AccountsTable)
	if err != nil {
		slog.Error("failed to create accounts client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	assistant, err := usecase.NewAssistant(ssmClient, accounts, cfg.ProfilePrefix(), cfg.MaxMessageLength)
	if err != nil {
		slog.Error("failed to create assistant", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(assistant)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
