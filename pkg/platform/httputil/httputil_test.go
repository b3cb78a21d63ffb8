package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "creditlines/pkg/domain-errors"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"staticId": "dcl-1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dcl-1", body["staticId"])
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code dErrors.Code
		want int
	}{
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeInvalidInput, http.StatusBadRequest},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		{dErrors.CodeForbidden, http.StatusForbidden},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeConfigMissing, http.StatusInternalServerError},
		{dErrors.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(tc.code, "boom"))
		assert.Equal(t, tc.want, w.Code, "code %s", tc.code)
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, dErrors.New(dErrors.CodeNotFound, "disclosed credit line not found"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(dErrors.CodeNotFound), body["error"])
	assert.Equal(t, "disclosed credit line not found", body["message"])
}

func TestWriteErrorUntypedError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
