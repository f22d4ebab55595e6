package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Record is a decoded item. Attributes other than the keys are opaque to the
// store and pass through unchanged.
type Record map[string]any

// NumericKey returns a single-attribute key with a numeric value.
func NumericKey(attr string, id int64) PK {
	return PK{
		attr: &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
}

// decodeRecord converts a raw item into a Record, keeping numbers exact.
func decodeRecord(raw map[string]types.AttributeValue) (Record, error) {
	var out map[string]any
	err := attributevalue.UnmarshalMapWithOptions(raw, &out, func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	for k, v := range out {
		out[k] = normalizeNumbers(v)
	}
	return Record(out), nil
}

// normalizeNumbers rewrites attributevalue.Number values as json.Number so
// they encode as JSON numbers rather than strings.
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case attributevalue.Number:
		return json.Number(t)
	case []attributevalue.Number:
		out := make([]json.Number, len(t))
		for i, n := range t {
			out[i] = json.Number(n)
		}
		return out
	case map[string]any:
		for k, inner := range t {
			t[k] = normalizeNumbers(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = normalizeNumbers(inner)
		}
		return t
	default:
		return v
	}
}

// encodeRecord marshals a Record for writing. Nil-valued attributes are
// dropped; empty strings, lists and maps are kept as present-but-empty.
// json.Number values are written as numbers.
func encodeRecord(item Record) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(dropNil(map[string]any(item)))
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	return av, nil
}

// dropNil returns a copy of m without nil values, recursing into nested maps
// and lists.
func dropNil(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = dropNilValue(v)
	}
	return out
}

func dropNilValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		return attributevalue.Number(t)
	case map[string]any:
		return dropNil(t)
	case Record:
		return dropNil(map[string]any(t))
	case []any:
		out := make([]any, 0, len(t))
		for _, inner := range t {
			if inner == nil {
				continue
			}
			out = append(out, dropNilValue(inner))
		}
		return out
	default:
		return v
	}
}
