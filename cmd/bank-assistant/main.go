package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"bank-assistant/internal/config"
	"bank-assistant/internal/integrations/chatapi"
	"bank-assistant/internal/integrations/paramstore"
	"bank-assistant/internal/logging"
	"bank-assistant/internal/metrics"
	"bank-assistant/internal/repository"
	"bank-assistant/internal/server"
	"bank-assistant/internal/usecase"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bank-assistant",
		Short: "XYZ Bank virtual assistant",
		Long: `Runs the XYZ Bank chat backend locally or talks to one from the terminal.

Examples:
  bank-assistant serve --port 8080
  bank-assistant seed --table bank-accounts
  bank-assistant chat --url http://localhost:8080`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger = logging.New(cfg.LogLevel, os.Stderr)
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(chatCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the /chat HTTP server",
		Long:  "Start the /chat HTTP server. Accounts come from DynamoDB when ACCOUNTS_TABLE is set, otherwise from built-in demo data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				cfg.ServerPort = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: 8080)")
	return cmd
}

func chatCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long:  "Start an interactive chat session against a running /chat backend. Type a chip's number to click it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" {
				cfg.ChatURL = url
			}
			logger = logging.New(cfg.ChatLogLevel, os.Stderr)
			slog.SetDefault(logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			client := chatapi.NewClient(chatapi.WithBaseURL(cfg.ChatURL))
			return runChat(ctx, os.Stdin, os.Stdout, client, logger)
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Backend base URL (default: CHAT_URL)")
	return cmd
}

func runServer(ctx context.Context) error {
	params, accounts, err := buildBackends(ctx)
	if err != nil {
		return err
	}

	assistant, err := usecase.NewAssistant(params, accounts, cfg.ProfilePrefix(), cfg.MaxMessageLength)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := server.New(assistant, server.Options{
		Port:          cfg.ServerPort,
		AllowedOrigin: cfg.AllowedOrigin,
		Logger:        logger,
		Metrics:       metrics.NewChatMetrics(reg),
		Gatherer:      reg,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// buildBackends picks AWS-backed or in-memory sources for the bank profile
// and the accounts.
func buildBackends(ctx context.Context) (usecase.ParamGetter, usecase.AccountReader, error) {
	var (
		params   usecase.ParamGetter   = paramstore.DefaultBankProfile(cfg.ProfilePrefix())
		accounts usecase.AccountReader = repository.NewMemory(repository.DemoAccounts()...)
	)
	if !cfg.UseSSM() && !cfg.UseDynamoDB() {
		logger.Info("using demo bank profile and accounts")
		return params, accounts, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.UseSSM() {
		params, err = paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("reading bank profile from SSM", "prefix", cfg.ParamPrefix)
	}
	if cfg.UseDynamoDB() {
		accounts, err = repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.AccountsTable)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("reading accounts from DynamoDB", "table", cfg.AccountsTable, "region", awsCfg.Region)
	}
	return params, accounts, nil
}
