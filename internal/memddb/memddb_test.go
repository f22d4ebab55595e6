package memddb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/movies/internal/memddb"
	"github.com/jacentio/movies/store"
)

var _ store.DynamoDBAPI = (*memddb.Client)(nil)

func num(v string) *types.AttributeValueMemberN { return &types.AttributeValueMemberN{Value: v} }
func str(v string) *types.AttributeValueMemberS { return &types.AttributeValueMemberS{Value: v} }

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	c := memddb.New()
	c.CreateTable("movies", "id", "")

	_, err := c.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String("movies"),
		Item:      map[string]types.AttributeValue{"id": num("1"), "title": str("A")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len("movies"))

	out, err := c.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String("movies"),
		Key:       map[string]types.AttributeValue{"id": num("1")},
	})
	require.NoError(t, err)
	assert.Equal(t, str("A"), out.Item["title"])

	_, err = c.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String("movies"),
		Key:       map[string]types.AttributeValue{"id": num("1")},
	})
	require.NoError(t, err)
	assert.Zero(t, c.Len("movies"))

	out, err = c.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String("movies"),
		Key:       map[string]types.AttributeValue{"id": num("1")},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Item)
}

func TestDeleteMissing(t *testing.T) {
	c := memddb.New()
	c.CreateTable("movies", "id", "")

	_, err := c.DeleteItem(context.Background(), &dynamodb.DeleteItemInput{
		TableName: aws.String("movies"),
		Key:       map[string]types.AttributeValue{"id": num("9")},
	})
	assert.NoError(t, err)
}

func TestUnknownTable(t *testing.T) {
	c := memddb.New()

	_, err := c.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String("nope"),
		Key:       map[string]types.AttributeValue{"id": num("1")},
	})

	var rnf *types.ResourceNotFoundException
	require.True(t, errors.As(err, &rnf))
	assert.Equal(t, "ResourceNotFoundException", store.ErrorCode(err))
}

func TestMissingKeyAttribute(t *testing.T) {
	c := memddb.New()
	c.CreateTable("cast", "movieId", "actorName")

	_, err := c.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: aws.String("cast"),
		Item:      map[string]types.AttributeValue{"movieId": num("1")},
	})
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	c := memddb.New()
	c.CreateTable("cast", "movieId", "actorName")

	for _, row := range []map[string]types.AttributeValue{
		{"movieId": num("1"), "actorName": str("Bob")},
		{"movieId": num("1"), "actorName": str("Ann")},
		{"movieId": num("2"), "actorName": str("Cid")},
		{"movieId": str("1"), "actorName": str("Dee")},
	} {
		_, err := c.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String("cast"), Item: row})
		require.NoError(t, err)
	}

	out, err := c.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String("cast"),
		IndexName:                 aws.String("movieId-index"),
		KeyConditionExpression:    aws.String("#0 = :0"),
		ExpressionAttributeNames:  map[string]string{"#0": "movieId"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":0": num("1")},
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, int32(2), out.Count)
	assert.Equal(t, str("Ann"), out.Items[0]["actorName"])
	assert.Equal(t, str("Bob"), out.Items[1]["actorName"])
	assert.Nil(t, out.LastEvaluatedKey)
}

func TestQuery_NoMatch(t *testing.T) {
	c := memddb.New()
	c.CreateTable("cast", "movieId", "actorName")

	out, err := c.Query(context.Background(), &dynamodb.QueryInput{
		TableName:                 aws.String("cast"),
		KeyConditionExpression:    aws.String("movieId = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":id": num("3")},
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}

func TestQuery_UnsupportedExpression(t *testing.T) {
	c := memddb.New()
	c.CreateTable("cast", "movieId", "actorName")

	tests := []struct {
		name   string
		expr   string
		names  map[string]string
		values map[string]types.AttributeValue
	}{
		{name: "range condition", expr: "#0 = :0 AND #1 > :1", names: map[string]string{"#0": "movieId", "#1": "actorName"}, values: map[string]types.AttributeValue{":0": num("1"), ":1": str("A")}},
		{name: "no equality", expr: "begins_with(#0, :0)", names: map[string]string{"#0": "movieId"}, values: map[string]types.AttributeValue{":0": num("1")}},
		{name: "unknown name", expr: "#9 = :0", values: map[string]types.AttributeValue{":0": num("1")}},
		{name: "unknown value", expr: "#0 = :9", names: map[string]string{"#0": "movieId"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Query(context.Background(), &dynamodb.QueryInput{
				TableName:                 aws.String("cast"),
				KeyConditionExpression:    aws.String(tt.expr),
				ExpressionAttributeNames:  tt.names,
				ExpressionAttributeValues: tt.values,
			})
			assert.ErrorIs(t, err, memddb.ErrUnsupportedExpression)
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := memddb.New()
	c.CreateTable("movies", "id", "")
	c.CreateTable("movie-cast", "movieId", "actorName")

	cfg := store.DefaultConfig()
	cfg.CastTable = "movie-cast"
	s := store.New(c, cfg)

	require.NoError(t, s.Put(ctx, "movies", store.Record{"id": 5, "title": "Y"}))
	require.NoError(t, s.Put(ctx, "movie-cast", store.Record{"movieId": 5, "actorName": "Ann"}))

	movie, err := s.GetByID(ctx, "movies", 5)
	require.NoError(t, err)
	assert.Equal(t, "Y", movie["title"])

	rel, err := s.Relation(store.RelationCast)
	require.NoError(t, err)
	cast, err := s.QueryByKey(ctx, rel, 5)
	require.NoError(t, err)
	assert.Len(t, cast, 1)
}
