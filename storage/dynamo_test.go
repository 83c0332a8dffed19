package storage

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/models"
)

type fakeDynamo struct {
	putInput    *dynamodb.PutItemInput
	getInput    *dynamodb.GetItemInput
	getOutput   *dynamodb.GetItemOutput
	deleteInput *dynamodb.DeleteItemInput
	deleteCalls int
	queryInputs []*dynamodb.QueryInput
	queryPages  []*dynamodb.QueryOutput
	scanPages   []*dynamodb.ScanOutput
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInput = params
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getInput = params
	if f.getOutput != nil {
		return f.getOutput, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.deleteInput = params
	f.deleteCalls++
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, params)
	out := f.queryPages[0]
	f.queryPages = f.queryPages[1:]
	return out, nil
}

func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	out := f.scanPages[0]
	f.scanPages = f.scanPages[1:]
	return out, nil
}

func itemFor(user, postID, title string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user":         &types.AttributeValueMemberS{Value: user},
		"post_id":      &types.AttributeValueMemberS{Value: postID},
		"post_title":   &types.AttributeValueMemberS{Value: title},
		"post_content": &types.AttributeValueMemberS{Value: "body"},
		"post_image":   &types.AttributeValueMemberS{Value: "https://blob/img.png"},
	}
}

func TestPostKeyNamespacesIdentity(t *testing.T) {
	key := PostKey("alice", "p1")
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#alice"}, key["user"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "p1"}, key["post_id"])
}

func TestPutWritesStoredAttributeNames(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewDynamoStore(fake, "posts")

	err := store.Put(context.Background(), models.Post{
		User:     models.UserKey("alice"),
		PostID:   "p1",
		Title:    "Hi",
		Body:     "World",
		ImageURL: "https://blob/img.png",
	})
	require.NoError(t, err)
	require.NotNil(t, fake.putInput)
	assert.Equal(t, "posts", aws.ToString(fake.putInput.TableName))

	item := fake.putInput.Item
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#alice"}, item["user"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Hi"}, item["post_title"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "World"}, item["post_content"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "https://blob/img.png"}, item["post_image"])
	// absent labels must not be written as an empty attribute
	_, hasLabel := item["label"]
	assert.False(t, hasLabel)
}

func TestGetMissingItemReturnsNil(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewDynamoStore(fake, "posts")

	post, err := store.Get(context.Background(), "alice", "nope")
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.Equal(t, PostKey("alice", "nope"), fake.getInput.Key)
}

func TestGetExistingItem(t *testing.T) {
	fake := &fakeDynamo{getOutput: &dynamodb.GetItemOutput{Item: itemFor("USER#alice", "p1", "Hi")}}
	store := NewDynamoStore(fake, "posts")

	post, err := store.Get(context.Background(), "alice", "p1")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, "USER#alice", post.User)
}

func TestDeleteUsesExactKey(t *testing.T) {
	fake := &fakeDynamo{}
	store := NewDynamoStore(fake, "posts")

	require.NoError(t, store.Delete(context.Background(), "alice", "p1"))
	assert.Equal(t, 1, fake.deleteCalls)
	assert.Equal(t, PostKey("alice", "p1"), fake.deleteInput.Key)
}

func TestListByUserQueriesNamespacedPartition(t *testing.T) {
	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{itemFor("USER#alice", "p1", "one")}},
	}}
	store := NewDynamoStore(fake, "posts")

	posts, err := store.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].PostID)

	require.Len(t, fake.queryInputs, 1)
	in := fake.queryInputs[0]
	assert.Equal(t, "#usr = :user", aws.ToString(in.KeyConditionExpression))
	assert.Equal(t, "user", in.ExpressionAttributeNames["#usr"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#alice"}, in.ExpressionAttributeValues[":user"])
}

func TestListByUserWalksAllPages(t *testing.T) {
	next := map[string]types.AttributeValue{"post_id": &types.AttributeValueMemberS{Value: "p1"}}
	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{itemFor("USER#alice", "p1", "one")}, LastEvaluatedKey: next},
		{Items: []map[string]types.AttributeValue{itemFor("USER#alice", "p2", "two")}},
	}}
	store := NewDynamoStore(fake, "posts")

	posts, err := store.ListByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	require.Len(t, fake.queryInputs, 2)
	assert.Equal(t, next, fake.queryInputs[1].ExclusiveStartKey)
}

func TestListAllScansEntireTable(t *testing.T) {
	next := map[string]types.AttributeValue{"post_id": &types.AttributeValueMemberS{Value: "p1"}}
	fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{Items: []map[string]types.AttributeValue{itemFor("USER#alice", "p1", "one")}, LastEvaluatedKey: next},
		{Items: []map[string]types.AttributeValue{itemFor("USER#bob", "p2", "two")}},
	}}
	store := NewDynamoStore(fake, "posts")

	posts, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "USER#alice", posts[0].User)
	assert.Equal(t, "USER#bob", posts[1].User)
}
