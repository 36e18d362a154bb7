package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorEnvelope(t *testing.T) {
	cases := []struct {
		respond func(http.ResponseWriter)
		status  int
		message string
	}{
		{RespondBadRequest, http.StatusBadRequest, "Bad Request"},
		{RespondNotFound, http.StatusNotFound, "Resource Not Found"},
		{RespondMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{RespondUnprocessable, http.StatusUnprocessableEntity, "Unprocessable"},
		{RespondInternalError, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.respond(rec)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.status, body.Error)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestMessageFallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "Conflict", Message(http.StatusConflict))
}
