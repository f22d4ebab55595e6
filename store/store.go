package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Store provides DynamoDB operations for movies and related rows.
type Store struct {
	client   DynamoDBAPI
	config   Config
	registry *Registry
}

// New creates a new Store instance. The cast relation is registered when
// config.CastTable is set.
func New(client DynamoDBAPI, config Config) *Store {
	config.validate()
	registry := NewRegistry()
	if config.CastTable != "" {
		registry.Register(Relation{
			Name:      RelationCast,
			TableName: config.CastTable,
			IndexName: config.CastIndex,
			KeyAttr:   config.CastKeyAttr,
		})
	}
	return &Store{
		client:   client,
		config:   config,
		registry: registry,
	}
}

// Config returns the validated configuration.
func (s *Store) Config() Config {
	return s.config
}

// Registry returns the relation registry.
func (s *Store) Registry() *Registry {
	return s.registry
}

// GetByID retrieves an item by numeric primary key, returning ErrNotFound if
// it is missing, or expired when a TTL attribute is configured.
func (s *Store) GetByID(ctx context.Context, table string, id int64) (Record, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       NumericKey(s.config.KeyAttr, id),
	})
	if err != nil {
		return nil, &OpError{Op: "GetItem", Table: table, Err: err}
	}
	if len(result.Item) == 0 || IsExpired(result.Item, s.config.TTLAttr) {
		return nil, ErrNotFound
	}

	rec, err := decodeRecord(result.Item)
	if err != nil {
		return nil, &OpError{Op: "GetItem", Table: table, Err: err}
	}
	return rec, nil
}

// QueryByKey returns every row of rel whose key attribute equals id, reading
// all pages. The result is never nil. Expired rows are skipped only when a
// TTL attribute is configured.
func (s *Store) QueryByKey(ctx context.Context, rel Relation, id int64) ([]Record, error) {
	keyCond := expression.Key(rel.KeyAttr).Equal(expression.Value(id))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(rel.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if rel.IndexName != "" {
		input.IndexName = aws.String(rel.IndexName)
	}

	records := []Record{}
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &OpError{Op: "Query", Table: rel.TableName, Err: err}
		}
		for _, raw := range page.Items {
			if IsExpired(raw, s.config.TTLAttr) {
				continue
			}
			rec, err := decodeRecord(raw)
			if err != nil {
				return nil, &OpError{Op: "Query", Table: rel.TableName, Err: err}
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// Relation returns the relation registered under name, or ErrUnknownRelation.
func (s *Store) Relation(name string) (Relation, error) {
	rel, ok := s.registry.Lookup(name)
	if !ok {
		return Relation{}, fmt.Errorf("%w: %q", ErrUnknownRelation, name)
	}
	return rel, nil
}

// DeleteByID deletes an item by numeric primary key. Deleting a missing key
// is not an error.
func (s *Store) DeleteByID(ctx context.Context, table string, id int64) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       NumericKey(s.config.KeyAttr, id),
	})
	if err != nil {
		return &OpError{Op: "DeleteItem", Table: table, Err: err}
	}
	return nil
}

// Put writes an item, replacing any existing item with the same key.
func (s *Store) Put(ctx context.Context, table string, item Record) error {
	av, err := encodeRecord(item)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return &OpError{Op: "PutItem", Table: table, Err: err}
	}
	return nil
}
