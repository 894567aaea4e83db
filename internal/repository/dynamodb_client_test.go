package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"bank-assistant/internal/domain"
)

type fakeDynamo struct {
	getOut       *dynamodb.GetItemOutput
	getErr       error
	putErr       error
	lastGetInput *dynamodb.GetItemInput
	lastPutInput *dynamodb.PutItemInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.lastGetInput = in
	return f.getOut, f.getErr
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func mustNewClient(t *testing.T, db *fakeDynamo) *Client {
	t.Helper()
	c, err := New(db, "test-table")
	require.NoError(t, err)
	return c
}

func TestNew_Validates(t *testing.T) {
	_, err := New(nil, "t")
	require.Error(t, err)
	_, err = New(&fakeDynamo{}, " ")
	require.Error(t, err)
}

func TestPutAccount_WritesKeysAndAttributes(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)

	acct := DemoAccounts()[0]
	require.NoError(t, c.PutAccount(context.Background(), acct))

	item := db.lastPutInput.Item
	require.Equal(t, "test-table", *db.lastPutInput.TableName)
	require.Equal(t, "ACCT#123456", item["PK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, skProfile, item["SK"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "Dhruvi Nanotkar", item["name"].(*types.AttributeValueMemberS).Value)
	require.Equal(t, "active", item["cardStatus"].(*types.AttributeValueMemberS).Value)
	require.Len(t, item["transactions"].(*types.AttributeValueMemberL).Value, 3)
}

func TestPutAccount_RequiresNumber(t *testing.T) {
	c := mustNewClient(t, &fakeDynamo{})
	err := c.PutAccount(context.Background(), domain.Account{Name: "nobody"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "account number is required")
}

func TestPutAccount_DynamoError(t *testing.T) {
	db := &fakeDynamo{putErr: errors.New("ProvisionedThroughputExceededException")}
	c := mustNewClient(t, db)
	err := c.PutAccount(context.Background(), DemoAccounts()[1])
	require.Error(t, err)
	require.Contains(t, err.Error(), "PutAccount")
}

func TestGetAccount_HappyPath(t *testing.T) {
	want := DemoAccounts()[1]
	item, err := attributevalue.MarshalMap(want)
	require.NoError(t, err)
	for k, v := range accountKey(want.Number) {
		item[k] = v
	}

	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: item}}
	c := mustNewClient(t, db)
	got, err := c.GetAccount(context.Background(), "654321")
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "ACCT#654321", db.lastGetInput.Key["PK"].(*types.AttributeValueMemberS).Value)
}

func TestGetAccount_FillsNumberFromKey(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"PK":   &types.AttributeValueMemberS{Value: "ACCT#123456"},
		"SK":   &types.AttributeValueMemberS{Value: skProfile},
		"name": &types.AttributeValueMemberS{Value: "Dhruvi Nanotkar"},
	}}}
	got, err := mustNewClient(t, db).GetAccount(context.Background(), "123456")
	require.NoError(t, err)
	require.Equal(t, "123456", got.Number)
	require.Equal(t, "Dhruvi Nanotkar", got.Name)
}

func TestGetAccount_Missing(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{}}
	_, err := mustNewClient(t, db).GetAccount(context.Background(), "999999")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGetAccount_GetItemError(t *testing.T) {
	db := &fakeDynamo{getErr: errors.New("boom")}
	_, err := mustNewClient(t, db).GetAccount(context.Background(), "123456")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAccountNotFound)
	require.Contains(t, err.Error(), "GetAccount")
}

func TestGetAccount_MalformedItem(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"PK":      &types.AttributeValueMemberS{Value: "ACCT#123456"},
		"balance": &types.AttributeValueMemberS{Value: "lots"},
	}}}
	_, err := mustNewClient(t, db).GetAccount(context.Background(), "123456")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unmarshal")
}

func TestMemory(t *testing.T) {
	m := NewMemory(DemoAccounts()...)
	got, err := m.GetAccount(context.Background(), "654321")
	require.NoError(t, err)
	require.Equal(t, domain.CardBlocked, got.CardStatus)

	_, err = m.GetAccount(context.Background(), "000000")
	require.ErrorIs(t, err, ErrAccountNotFound)
}
