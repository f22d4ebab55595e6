// Package localgw serves the Lambda handlers over plain HTTP for local
// development, translating requests the way an API Gateway HTTP API does.
package localgw

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
)

// LambdaFunc is an API Gateway v2 Lambda handler.
type LambdaFunc func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// MovieHandlers is implemented by *handler.Handler.
type MovieHandlers interface {
	GetMovie(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)
	DeleteMovie(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)
}

// NewRouter routes GET and DELETE /movies/{movieId} to h.
func NewRouter(h MovieHandlers) http.Handler {
	r := chi.NewRouter()
	r.Get("/movies/{movieId}", Adapt(h.GetMovie))
	r.Delete("/movies/{movieId}", Adapt(h.DeleteMovie))
	return r
}

// Adapt wraps fn as an http.HandlerFunc. A non-nil error from fn becomes the
// 500 API Gateway returns for a failed invocation.
func Adapt(fn LambdaFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r.Context(), NewRequest(r))
		if err != nil {
			w.Header().Set("content-type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"message":"Internal Server Error"}`)
			return
		}
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		io.WriteString(w, resp.Body)
	}
}

// NewRequest builds the v2 event for r. Path parameters come from the chi
// route context; repeated query values are joined with commas. Empty
// parameter maps are left nil, as API Gateway omits them.
func NewRequest(r *http.Request) events.APIGatewayV2HTTPRequest {
	var pathParams map[string]string
	routeKey := r.Method + " " + r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			if pathParams == nil {
				pathParams = make(map[string]string)
			}
			pathParams[key] = rctx.URLParams.Values[i]
		}
		if pattern := rctx.RoutePattern(); pattern != "" {
			routeKey = r.Method + " " + pattern
		}
	}

	var query map[string]string
	for key, values := range r.URL.Query() {
		if query == nil {
			query = make(map[string]string)
		}
		query[key] = strings.Join(values, ",")
	}

	headers := make(map[string]string, len(r.Header))
	for key, values := range r.Header {
		headers[strings.ToLower(key)] = strings.Join(values, ",")
	}

	return events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RouteKey:              routeKey,
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		PathParameters:        pathParams,
		QueryStringParameters: query,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RouteKey: routeKey,
			Stage:    "$default",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
			},
		},
	}
}
