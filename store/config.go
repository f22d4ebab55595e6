package store

// Config holds configuration for the Store.
type Config struct {
	// MovieTable is the name of the movie table.
	// Default: "movies"
	MovieTable string

	// CastTable is the name of the cast table. Empty disables the cast relation.
	CastTable string

	// CastIndex is an optional GSI on CastKeyAttr. When empty the cast table is
	// queried directly, which requires CastKeyAttr to be its partition key.
	CastIndex string

	// KeyAttr is the numeric primary key attribute of the movie table.
	// Default: "id"
	KeyAttr string

	// CastKeyAttr is the cast attribute referencing the movie.
	// Default: "movieId"
	CastKeyAttr string

	// TTLAttr names a DynamoDB TTL attribute. When set, items whose TTL has
	// passed are treated as absent, since DynamoDB removes them lazily.
	// Empty disables expiry filtering and leaves every attribute opaque.
	TTLAttr string
}

// DefaultConfig returns the table layout used by the movie service.
func DefaultConfig() Config {
	return Config{
		MovieTable:  "movies",
		KeyAttr:     "id",
		CastKeyAttr: "movieId",
	}
}

// validate fills defaults for empty values.
func (c *Config) validate() {
	if c.MovieTable == "" {
		c.MovieTable = "movies"
	}
	if c.KeyAttr == "" {
		c.KeyAttr = "id"
	}
	if c.CastKeyAttr == "" {
		c.CastKeyAttr = "movieId"
	}
}
