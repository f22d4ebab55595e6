package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovieID(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		present    bool
		wantID     int64
		wantReason string
	}{
		{name: "valid", raw: "42", present: true, wantID: 42},
		{name: "leading zeros", raw: "007", present: true, wantID: 7},
		{name: "max int64", raw: "9223372036854775807", present: true, wantID: 9223372036854775807},
		{name: "absent", raw: "", present: false, wantReason: ReasonMissingID},
		{name: "empty", raw: "", present: true, wantReason: ReasonMissingID},
		{name: "zero", raw: "0", present: true, wantReason: ReasonInvalidID},
		{name: "non-numeric", raw: "abc", present: true, wantReason: ReasonInvalidID},
		{name: "trailing garbage", raw: "42abc", present: true, wantReason: ReasonInvalidID},
		{name: "negative", raw: "-1", present: true, wantReason: ReasonInvalidID},
		{name: "plus sign", raw: "+42", present: true, wantReason: ReasonInvalidID},
		{name: "whitespace", raw: " 42", present: true, wantReason: ReasonInvalidID},
		{name: "decimal", raw: "4.2", present: true, wantReason: ReasonInvalidID},
		{name: "overflow", raw: "9223372036854775808", present: true, wantReason: ReasonInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseMovieID(tt.raw, tt.present)
			if tt.wantReason == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %v", err)
			assert.Equal(t, tt.wantReason, vErr.Reason)
			assert.Zero(t, id)
		})
	}
}

func TestIncludeCast(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
		want  bool
	}{
		{name: "nil query", query: nil, want: false},
		{name: "absent", query: map[string]string{"other": "true"}, want: false},
		{name: "exact true", query: map[string]string{"cast": "true"}, want: true},
		{name: "upper case", query: map[string]string{"cast": "TRUE"}, want: false},
		{name: "title case", query: map[string]string{"cast": "True"}, want: false},
		{name: "one", query: map[string]string{"cast": "1"}, want: false},
		{name: "empty", query: map[string]string{"cast": ""}, want: false},
		{name: "false", query: map[string]string{"cast": "false"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IncludeCast(tt.query))
		})
	}
}

func TestRespond(t *testing.T) {
	resp := respond(201, messageBody{Message: "ok"})

	assert.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["content-type"])
	assert.JSONEq(t, `{"message":"ok"}`, resp.Body)
}

func TestRespond_EncodeFailure(t *testing.T) {
	resp := respond(200, map[string]any{"bad": make(chan int)})

	assert.Equal(t, 500, resp.StatusCode)
	assert.JSONEq(t, fallbackBody, resp.Body)
	assert.Equal(t, "application/json", resp.Headers["content-type"])
}

func TestErrorBody_OmitsEmptyDetails(t *testing.T) {
	resp := respond(500, errorBody{Error: errFetchFailed})
	assert.JSONEq(t, `{"error":"Internal server error"}`, resp.Body)
}
