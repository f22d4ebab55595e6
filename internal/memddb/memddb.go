// Package memddb provides an in-memory stand-in for the DynamoDB item API,
// enough of it to serve the movie store: GetItem, PutItem, DeleteItem and
// single-attribute equality Query.
package memddb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrUnsupportedExpression is returned for key conditions other than "a = :v".
var ErrUnsupportedExpression = errors.New("memddb: unsupported key condition expression")

// Client is an in-memory table set. The zero value is not usable; call New.
type Client struct {
	mu     sync.RWMutex
	tables map[string]*table
}

type table struct {
	hashKey  string
	rangeKey string
	items    map[string]map[string]types.AttributeValue
}

// New creates an empty Client.
func New() *Client {
	return &Client{tables: make(map[string]*table)}
}

// CreateTable adds a table keyed by hashKey and, when non-empty, rangeKey.
func (c *Client) CreateTable(name, hashKey, rangeKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = &table{
		hashKey:  hashKey,
		rangeKey: rangeKey,
		items:    make(map[string]map[string]types.AttributeValue),
	}
}

// Len returns the number of items in a table, or 0 for an unknown table.
func (c *Client) Len(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if t, ok := c.tables[name]; ok {
		return len(t.items)
	}
	return 0
}

func (c *Client) table(name *string) (*table, error) {
	t, ok := c.tables[aws.ToString(name)]
	if !ok {
		return nil, &types.ResourceNotFoundException{
			Message: aws.String("Requested resource not found: " + aws.ToString(name)),
		}
	}
	return t, nil
}

func (t *table) keyOf(item map[string]types.AttributeValue) (string, error) {
	hash, ok := item[t.hashKey]
	if !ok {
		return "", fmt.Errorf("memddb: missing key attribute %q", t.hashKey)
	}
	key := scalarString(hash)
	if t.rangeKey != "" {
		rng, ok := item[t.rangeKey]
		if !ok {
			return "", fmt.Errorf("memddb: missing key attribute %q", t.rangeKey)
		}
		key += "|" + scalarString(rng)
	}
	return key, nil
}

// GetItem returns the item for params.Key, or an output with a nil Item.
func (c *Client) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.table(params.TableName)
	if err != nil {
		return nil, err
	}
	key, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: copyItem(t.items[key])}, nil
}

// PutItem stores params.Item, replacing any item with the same key.
func (c *Client) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.table(params.TableName)
	if err != nil {
		return nil, err
	}
	key, err := t.keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	t.items[key] = copyItem(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// DeleteItem removes the item for params.Key. Missing items are ignored.
func (c *Client) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, err := c.table(params.TableName)
	if err != nil {
		return nil, err
	}
	key, err := t.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	delete(t.items, key)
	return &dynamodb.DeleteItemOutput{}, nil
}

// Query returns items matching an equality key condition on one attribute.
// IndexName is accepted and treated as a full scan of the base table.
// Results come back in a single page ordered by primary key.
func (c *Client) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.table(params.TableName)
	if err != nil {
		return nil, err
	}
	attr, want, err := parseEquality(aws.ToString(params.KeyConditionExpression), params.ExpressionAttributeNames, params.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(t.items))
	for k := range t.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := []map[string]types.AttributeValue{}
	for _, k := range keys {
		item := t.items[k]
		if v, ok := item[attr]; ok && scalarString(v) == want {
			items = append(items, copyItem(item))
		}
	}
	return &dynamodb.QueryOutput{
		Items: items,
		Count: int32(len(items)),
	}, nil
}

// parseEquality resolves "name = :value" into the attribute name and the
// comparable form of the value.
func parseEquality(expr string, names map[string]string, values map[string]types.AttributeValue) (string, string, error) {
	left, right, ok := strings.Cut(expr, "=")
	if !ok || strings.Contains(strings.ToUpper(expr), " AND ") {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedExpression, expr)
	}
	left = strings.Trim(strings.TrimSpace(left), "()")
	right = strings.Trim(strings.TrimSpace(right), "()")

	attr := left
	if strings.HasPrefix(left, "#") {
		resolved, ok := names[left]
		if !ok {
			return "", "", fmt.Errorf("%w: unknown name %s", ErrUnsupportedExpression, left)
		}
		attr = resolved
	}
	v, ok := values[right]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown value %s", ErrUnsupportedExpression, right)
	}
	return attr, scalarString(v), nil
}

func scalarString(v types.AttributeValue) string {
	switch t := v.(type) {
	case *types.AttributeValueMemberS:
		return "S:" + t.Value
	case *types.AttributeValueMemberN:
		return "N:" + t.Value
	case *types.AttributeValueMemberB:
		return "B:" + string(t.Value)
	default:
		return fmt.Sprintf("%T", v)
	}
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}
