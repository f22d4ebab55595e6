package store

import (
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// IsExpired reports whether the item's TTL attribute holds an epoch second at or
// before now. DynamoDB may keep such items for up to 48 hours after expiry.
// An empty attr never expires anything.
func IsExpired(item map[string]types.AttributeValue, attr string) bool {
	if attr == "" {
		return false
	}
	ttlAttr, exists := item[attr]
	if !exists {
		return false // No TTL = active
	}
	ttlNum, ok := ttlAttr.(*types.AttributeValueMemberN)
	if !ok {
		return false
	}
	ttl, err := strconv.ParseInt(ttlNum.Value, 10, 64)
	if err != nil || ttl <= 0 {
		return false
	}
	return ttl <= time.Now().Unix()
}
