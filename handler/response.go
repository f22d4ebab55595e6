package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/movies/store"
)

const contentTypeJSON = "application/json"

// Response bodies. Field names are part of the public contract.
type (
	messageBody struct {
		Message string `json:"message"`
	}

	dataBody struct {
		Data store.Record `json:"data"`
	}

	errorBody struct {
		Error   string `json:"error"`
		Details string `json:"details,omitempty"`
	}
)

const (
	msgMovieNotFound = "Movie not found"
	msgMovieDeleted  = "Movie deleted"

	errFetchFailed  = "Internal server error"
	errDeleteFailed = "Failed to delete movie"
)

// fallbackBody is sent when a body cannot be encoded.
const fallbackBody = `{"error":"Internal server error"}`

func respond(status int, body any) events.APIGatewayV2HTTPResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(fallbackBody)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"content-type": contentTypeJSON},
		Body:       string(payload),
	}
}
