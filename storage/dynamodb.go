/*
# Module: storage/dynamodb.go
DynamoDB-backed status repository for durable request tracking.

## Linked Modules
- [storage/repository](./repository.go) - Repository interfaces
- [types/request](../types/request.go) - Location request data structures

## Tags
storage, dynamodb, status, persistence

## Exports
DynamoDBStatusRepository, NewDynamoDBStatusRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/dynamodb.go" ;
    code:description "DynamoDB-backed status repository for durable request tracking" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "./repository.go" ;
        code:relationship "Repository interfaces"
    ], [
        code:name "types/request" ;
        code:path "../types/request.go" ;
        code:relationship "Location request data structures"
    ] ;
    code:exports :DynamoDBStatusRepository, :NewDynamoDBStatusRepository ;
    code:tags "storage", "dynamodb", "status", "persistence" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"location-consent/types"
)

// DynamoDBStatusRepository implements StatusRepository using a DynamoDB
// table keyed by request_id. It survives restarts, unlike the default
// in-memory repository.
type DynamoDBStatusRepository struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoDBStatusRepository creates a new DynamoDB status repository
func NewDynamoDBStatusRepository(client *dynamodb.Client, tableName string) *DynamoDBStatusRepository {
	return &DynamoDBStatusRepository{
		client:    client,
		tableName: tableName,
	}
}

// statusItem is the DynamoDB representation of a location request
type statusItem struct {
	RequestID    string             `dynamodbav:"request_id"`
	Status       types.Status       `dynamodbav:"status"`
	Location     *types.Coordinates `dynamodbav:"location,omitempty"`
	DenialReason string             `dynamodbav:"denial_reason,omitempty"`
	CreatedAt    time.Time          `dynamodbav:"created_at"`
}

// Create allocates a fresh random token with status pending
func (r *DynamoDBStatusRepository) Create(ctx context.Context) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("DynamoDB client not initialized")
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate request ID: %w", err)
	}
	token := id.String()

	item, err := attributevalue.MarshalMap(statusItem{
		RequestID: token,
		Status:    types.StatusPending,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal status item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return "", fmt.Errorf("failed to save status to DynamoDB: %w", err)
	}
	return token, nil
}

// Get returns the current status of a request
func (r *DynamoDBStatusRepository) Get(ctx context.Context, token string) (types.Status, error) {
	item, err := r.getItem(ctx, token)
	if err != nil {
		return "", err
	}
	return item.Status, nil
}

// Transition applies a one-way pending -> terminal transition using a
// conditional put, so racing writers see exactly one winner.
func (r *DynamoDBStatusRepository) Transition(ctx context.Context, token string, status types.Status, location *types.Coordinates, reason string) (bool, types.Status, error) {
	current, err := r.getItem(ctx, token)
	if err != nil {
		return false, "", err
	}
	if current.Status.Terminal() {
		return false, current.Status, nil
	}

	current.Status = status
	current.Location = location
	current.DenialReason = reason

	item, err := attributevalue.MarshalMap(current)
	if err != nil {
		return false, "", fmt.Errorf("failed to marshal status item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("#s = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#s": "status",
		},
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":pending": &dynamodbtypes.AttributeValueMemberS{Value: string(types.StatusPending)},
		},
	})
	if err != nil {
		var conditionFailed *dynamodbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			// Lost the race; report the terminal state already applied.
			applied, getErr := r.getItem(ctx, token)
			if getErr != nil {
				return false, "", getErr
			}
			return false, applied.Status, nil
		}
		return false, "", fmt.Errorf("failed to update status in DynamoDB: %w", err)
	}
	return true, status, nil
}

// Rollback removes an entry whose SMS was never delivered
func (r *DynamoDBStatusRepository) Rollback(ctx context.Context, token string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			"request_id": &dynamodbtypes.AttributeValueMemberS{Value: token},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to remove status from DynamoDB: %w", err)
	}
	return nil
}

func (r *DynamoDBStatusRepository) getItem(ctx context.Context, token string) (*statusItem, error) {
	if r.client == nil {
		return nil, fmt.Errorf("DynamoDB client not initialized")
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			"request_id": &dynamodbtypes.AttributeValueMemberS{Value: token},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get status from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var item statusItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status item: %w", err)
	}
	return &item, nil
}
