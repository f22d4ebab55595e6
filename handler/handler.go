// Package handler provides the API Gateway (HTTP API, payload v2) Lambda
// handlers for fetching and deleting movies.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/movies/store"
)

// Options tunes handler behavior.
type Options struct {
	// ExposeErrorDetails adds the underlying error message as "details" to
	// fetch 500 responses. Keep off outside development.
	ExposeErrorDetails bool
}

// Handler serves movie requests against a shared Store.
type Handler struct {
	store  *store.Store
	opts   Options
	logger *slog.Logger
}

// NewHandler creates a new handler. A nil logger uses slog.Default().
func NewHandler(s *store.Store, opts Options, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		opts:   opts,
		logger: logger,
	}
}

// GetMovie returns one movie, joined with its cast rows when the request
// carries cast=true. Failures are reported as HTTP responses; the returned
// error is always nil.
func (h *Handler) GetMovie(ctx context.Context, req events.APIGatewayV2HTTPRequest) (resp events.APIGatewayV2HTTPResponse, err error) {
	defer h.recoverInto(ctx, "get movie", &resp, &err, errorBody{Error: errFetchFailed})
	h.logRequest(ctx, "get movie request", req)

	id, err := movieIDFromRequest(req)
	if err != nil {
		return h.rejected(ctx, err), nil
	}

	movie, err := h.store.GetByID(ctx, h.store.Config().MovieTable, id)
	if errors.Is(err, store.ErrNotFound) {
		h.logger.DebugContext(ctx, "movie not found", "movieId", id)
		return respond(http.StatusNotFound, messageBody{Message: msgMovieNotFound}), nil
	}
	if err != nil {
		return h.fetchFailed(ctx, id, "get", err), nil
	}

	includeCast := IncludeCast(req.QueryStringParameters)
	if includeCast {
		movie, err = h.withCast(ctx, movie, id)
		if err != nil {
			return h.fetchFailed(ctx, id, "cast", err), nil
		}
	}

	h.logger.InfoContext(ctx, "movie fetched",
		"movieId", id,
		"includeCast", includeCast,
	)
	return respond(http.StatusOK, dataBody{Data: movie}), nil
}

// withCast returns a copy of movie with the cast rows set under the
// relation's name. The query runs only after the movie lookup succeeded.
func (h *Handler) withCast(ctx context.Context, movie store.Record, id int64) (store.Record, error) {
	rel, err := h.store.Relation(store.RelationCast)
	if err != nil {
		return nil, err
	}
	cast, err := h.store.QueryByKey(ctx, rel, id)
	if err != nil {
		return nil, err
	}
	h.logger.DebugContext(ctx, "cast joined", "movieId", id, "castCount", len(cast))

	out := make(store.Record, len(movie)+1)
	maps.Copy(out, movie)
	out[rel.Name] = cast
	return out, nil
}

// DeleteMovie deletes one movie. Deleting an absent id succeeds.
func (h *Handler) DeleteMovie(ctx context.Context, req events.APIGatewayV2HTTPRequest) (resp events.APIGatewayV2HTTPResponse, err error) {
	defer h.recoverInto(ctx, "delete movie", &resp, &err, errorBody{Error: errDeleteFailed})
	h.logRequest(ctx, "delete movie request", req)

	id, err := movieIDFromRequest(req)
	if err != nil {
		return h.rejected(ctx, err), nil
	}

	if err := h.store.DeleteByID(ctx, h.store.Config().MovieTable, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete movie",
			"movieId", id,
			"errorCode", store.ErrorCode(err),
			"error", err,
		)
		return respond(http.StatusInternalServerError, errorBody{Error: errDeleteFailed}), nil
	}

	h.logger.InfoContext(ctx, "movie deleted", "movieId", id)
	return respond(http.StatusOK, messageBody{Message: msgMovieDeleted}), nil
}

func (h *Handler) rejected(ctx context.Context, err error) events.APIGatewayV2HTTPResponse {
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		vErr = &ValidationError{Reason: ReasonInvalidID}
	}
	h.logger.DebugContext(ctx, "rejected movie id", "reason", vErr.Reason)
	return respond(http.StatusBadRequest, messageBody{Message: vErr.Reason})
}

func (h *Handler) fetchFailed(ctx context.Context, id int64, step string, err error) events.APIGatewayV2HTTPResponse {
	h.logger.ErrorContext(ctx, "failed to fetch movie",
		"movieId", id,
		"step", step,
		"errorCode", store.ErrorCode(err),
		"error", err,
	)
	body := errorBody{Error: errFetchFailed}
	if h.opts.ExposeErrorDetails {
		body.Details = err.Error()
	}
	return respond(http.StatusInternalServerError, body)
}

// recoverInto turns a panic into a 500 response with the given body.
func (h *Handler) recoverInto(ctx context.Context, op string, resp *events.APIGatewayV2HTTPResponse, errp *error, body errorBody) {
	r := recover()
	if r == nil {
		return
	}
	h.logger.ErrorContext(ctx, "panic while handling request",
		"op", op,
		"panic", fmt.Sprint(r),
	)
	*resp = respond(http.StatusInternalServerError, body)
	*errp = nil
}

func (h *Handler) logRequest(ctx context.Context, msg string, req events.APIGatewayV2HTTPRequest) {
	h.logger.DebugContext(ctx, msg,
		"routeKey", req.RouteKey,
		"requestId", req.RequestContext.RequestID,
		"pathParameters", req.PathParameters,
		"queryStringParameters", req.QueryStringParameters,
	)
}
