package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"postboard/models"
)

// PostStore is the table collaborator seen by the handlers. ListAll is named
// for what it is: an unbounded full-table read.
type PostStore interface {
	Put(ctx context.Context, post models.Post) error
	Get(ctx context.Context, identity, postID string) (*models.Post, error)
	Delete(ctx context.Context, identity, postID string) error
	ListByUser(ctx context.Context, identity string) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
}

// DynamoAPI is the subset of the DynamoDB client used by the store.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoStore persists posts in a single table keyed by
// (user: partition, post_id: sort).
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamoStore creates a store bound to one table.
func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// PostKey builds the primary key attributes for an identity and post id.
// The identity is namespaced here so callers never handle the raw prefix.
func PostKey(identity, postID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user":    &types.AttributeValueMemberS{Value: models.UserKey(identity)},
		"post_id": &types.AttributeValueMemberS{Value: postID},
	}
}

// Put writes one item. Single attempt, per-item atomicity only.
func (s *DynamoStore) Put(ctx context.Context, post models.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return fmt.Errorf("marshal post: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Get looks up one item by exact key. Returns (nil, nil) when absent.
func (s *DynamoStore) Get(ctx context.Context, identity, postID string) (*models.Post, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       PostKey(identity, postID),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var post models.Post
	if err := attributevalue.UnmarshalMap(out.Item, &post); err != nil {
		return nil, fmt.Errorf("unmarshal post: %w", err)
	}
	return &post, nil
}

// Delete removes one item unconditionally.
func (s *DynamoStore) Delete(ctx context.Context, identity, postID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       PostKey(identity, postID),
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ListByUser queries one identity's partition, all attributes, in the order
// the table returns them.
func (s *DynamoStore) ListByUser(ctx context.Context, identity string) ([]models.Post, error) {
	posts := []models.Post{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			Select:                 types.SelectAllAttributes,
			KeyConditionExpression: aws.String("#usr = :user"),
			ExpressionAttributeNames: map[string]string{
				"#usr": "user",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":user": &types.AttributeValueMemberS{Value: models.UserKey(identity)},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query partition: %w", err)
		}
		page, err := unmarshalItems(out.Items)
		if err != nil {
			return nil, err
		}
		posts = append(posts, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return posts, nil
}

// ListAll scans the entire table across all users. Cost grows with total
// stored items; pages are walked until the scan is exhausted.
func (s *DynamoStore) ListAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		page, err := unmarshalItems(out.Items)
		if err != nil {
			return nil, err
		}
		posts = append(posts, page...)
	}
	return posts, nil
}

func unmarshalItems(items []map[string]types.AttributeValue) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(items))
	for _, item := range items {
		var post models.Post
		if err := attributevalue.UnmarshalMap(item, &post); err != nil {
			return nil, fmt.Errorf("unmarshal post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}
