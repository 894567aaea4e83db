package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"bank-assistant/internal/domain"
)

const skProfile = "PROFILE#"

// ErrAccountNotFound is returned when no account exists for a number.
var ErrAccountNotFound = errors.New("repository: account not found")

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client wraps a DynamoDB table holding demo accounts.
type Client struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Client{api: api, tableName: tableName}, nil
}

// accountPK returns the DynamoDB partition key for an account.
func accountPK(number string) string {
	return "ACCT#" + number
}

func accountKey(number string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: accountPK(number)},
		"SK": &types.AttributeValueMemberS{Value: skProfile},
	}
}

// GetAccount loads the profile item of an account.
func (c *Client) GetAccount(ctx context.Context, number string) (domain.Account, error) {
	out, err := c.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key:       accountKey(number),
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("repository: GetAccount get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return domain.Account{}, ErrAccountNotFound
	}

	var acct domain.Account
	if err := attributevalue.UnmarshalMap(out.Item, &acct); err != nil {
		return domain.Account{}, fmt.Errorf("repository: GetAccount unmarshal: %w", err)
	}
	if acct.Number == "" {
		acct.Number = number
	}
	return acct, nil
}

// PutAccount writes or replaces an account profile item.
func (c *Client) PutAccount(ctx context.Context, acct domain.Account) error {
	if strings.TrimSpace(acct.Number) == "" {
		return errors.New("repository: PutAccount: account number is required")
	}
	item, err := attributevalue.MarshalMap(acct)
	if err != nil {
		return fmt.Errorf("repository: PutAccount marshal: %w", err)
	}
	for k, v := range accountKey(acct.Number) {
		item[k] = v
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("repository: PutAccount: %w", err)
	}
	return nil
}
