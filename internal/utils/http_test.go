package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteData_WrapsPayloadInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteData(rec, map[string]string{"hello": "world"}, 200)
	require.NoError(t, err)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "world", body.Data["hello"])
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteError(rec, "wrong password provided", 401, "password mismatch")
	require.NoError(t, err)

	assert.Equal(t, 401, rec.Code)

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "wrong password provided", body.Message)
	assert.Equal(t, []string{"password mismatch"}, body.Errors)
}

func TestWriteError_NoDetails_EmptyArray(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteError(rec, "internal error", 500)
	require.NoError(t, err)

	// errors must serialise as [] rather than null
	assert.JSONEq(t, `{"message":"internal error","errors":[]}`, rec.Body.String())
}
