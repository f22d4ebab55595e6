// Package store provides the DynamoDB data access layer for movies and their
// related cast rows.
//
// A single [Store] is built once per process around a DynamoDB client and shared
// by every invocation. It holds no per-request state, so concurrent use is safe.
//
// # Operations
//
//   - [Store.GetByID] point lookup by numeric primary key
//   - [Store.QueryByKey] equality query against a related table (or its GSI)
//   - [Store.DeleteByID] unconditional, idempotent delete
//   - [Store.Put] write helper used for seeding
//
// # Configuration
//
// Table names come from process configuration:
//
//	cfg := store.DefaultConfig()
//	cfg.MovieTable = "movies"
//	cfg.CastTable = "movie-cast"
//	s := store.New(client, cfg)
//
// When CastTable is set, a [Relation] named [RelationCast] is registered so the
// join can be resolved by name through [Store.Registry].
//
// # Numbers
//
// Records are decoded with numbers kept as [encoding/json.Number], so large or
// fractional values reach the JSON response exactly as stored.
//
// # Errors
//
//   - [ErrNotFound] - no item for the key, or its TTL has passed when
//     [Config].TTLAttr is set
//   - [*OpError] - any failure reported by DynamoDB, wrapping the SDK error
package store
