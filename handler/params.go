package handler

import (
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

const (
	// PathParamMovieID is the route parameter carrying the movie id.
	PathParamMovieID = "movieId"

	// QueryParamCast enables the cast join when it equals "true".
	QueryParamCast = "cast"
)

// Rejection reasons returned in 400 bodies.
const (
	ReasonMissingID = "Missing movie ID"
	ReasonInvalidID = "Invalid movie ID format"
)

// ValidationError reports a malformed or absent movie id.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ParseMovieID validates a raw movie id. The whole string must be decimal
// digits and denote an integer greater than zero that fits in int64; signs,
// whitespace and trailing characters are rejected.
func ParseMovieID(raw string, present bool) (int64, error) {
	if !present || raw == "" {
		return 0, &ValidationError{Reason: ReasonMissingID}
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, &ValidationError{Reason: ReasonInvalidID}
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Reason: ReasonInvalidID}
	}
	return id, nil
}

// IncludeCast reports whether the cast query parameter is exactly "true".
func IncludeCast(query map[string]string) bool {
	return query[QueryParamCast] == "true"
}

func movieIDFromRequest(req events.APIGatewayV2HTTPRequest) (int64, error) {
	raw, ok := req.PathParameters[PathParamMovieID]
	return ParseMovieID(raw, ok)
}
