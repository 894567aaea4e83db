package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"bank-assistant/internal/domain"
	"bank-assistant/internal/repository"
)

type accountWriter interface {
	PutAccount(ctx context.Context, acct domain.Account) error
}

func seedCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the demo accounts to DynamoDB",
		Long:  "Write the demo accounts (123456, 654321) to the ACCOUNTS_TABLE DynamoDB table so a fresh deployment can answer account questions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if table != "" {
				cfg.AccountsTable = table
			}
			if !cfg.UseDynamoDB() {
				return errors.New("ACCOUNTS_TABLE or --table must be set")
			}

			ctx := cmd.Context()
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return fmt.Errorf("failed to load AWS config: %w", err)
			}
			accounts, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.AccountsTable)
			if err != nil {
				return err
			}
			return seedAccounts(ctx, accounts, repository.DemoAccounts(), logger)
		},
	}

	cmd.Flags().StringVarP(&table, "table", "t", "", "DynamoDB table (default: ACCOUNTS_TABLE)")
	return cmd
}

// seedAccounts writes accounts in order and stops at the first failure.
func seedAccounts(ctx context.Context, w accountWriter, accounts []domain.Account, logger *slog.Logger) error {
	for _, acct := range accounts {
		if err := w.PutAccount(ctx, acct); err != nil {
			return fmt.Errorf("seed account %s: %w", acct.Number, err)
		}
		logger.Info("seeded account", "account", acct.Number)
	}
	return nil
}
