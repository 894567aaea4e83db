package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"bank-assistant/internal/integrations/paramstore"
	"bank-assistant/internal/repository"
	"bank-assistant/internal/usecase"
)

// fakeTable keeps items keyed by PK.
type fakeTable struct {
	items  map[string]map[string]types.AttributeValue
	putErr error
	puts   int
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string]map[string]types.AttributeValue{}}
}

func pkOf(key map[string]types.AttributeValue) string {
	return key["PK"].(*types.AttributeValueMemberS).Value
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[pkOf(in.Key)]}, nil
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts++
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.items[pkOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestSeedAccounts_WritesDemoAccounts(t *testing.T) {
	table := newFakeTable()
	accounts, err := repository.New(table, "bank-accounts")
	require.NoError(t, err)

	require.NoError(t, seedAccounts(context.Background(), accounts, repository.DemoAccounts(), discardLogger()))
	require.Len(t, table.items, 2)
	require.Contains(t, table.items, "ACCT#123456")
	require.Contains(t, table.items, "ACCT#654321")

	got, err := accounts.GetAccount(context.Background(), "654321")
	require.NoError(t, err)
	require.Equal(t, "Vaishnavi Naik", got.Name)
	require.Len(t, got.Transactions, 2)
}

func TestSeedAccounts_SeededTableAnswersBalance(t *testing.T) {
	table := newFakeTable()
	accounts, err := repository.New(table, "bank-accounts")
	require.NoError(t, err)
	require.NoError(t, seedAccounts(context.Background(), accounts, repository.DemoAccounts(), discardLogger()))

	assistant, err := usecase.NewAssistant(paramstore.DefaultBankProfile("/bank-assistant"), accounts, "/bank-assistant", 0)
	require.NoError(t, err)

	out, err := assistant.Reply(context.Background(), usecase.ReplyInput{Message: "What's my balance for account 123456?"})
	require.NoError(t, err)
	require.Equal(t, "Your current balance for account 123456 is $5000.00.", out.Response)
}

func TestSeedAccounts_StopsOnError(t *testing.T) {
	table := newFakeTable()
	table.putErr = errors.New("throttled")
	accounts, err := repository.New(table, "bank-accounts")
	require.NoError(t, err)

	err = seedAccounts(context.Background(), accounts, repository.DemoAccounts(), discardLogger())
	require.ErrorContains(t, err, "seed account 123456")
	require.Equal(t, 1, table.puts)
}
