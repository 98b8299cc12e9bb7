package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "github.com/servepupil/api/pkg/errors"
)

func TestSuccessAndErrorResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"foo": "bar"}, "ok")
	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, true, body["success"])
	require.Equal(t, float64(200), body["statusCode"]) // json numbers decode to float64
	require.Equal(t, "ok", body["message"])
	require.Contains(t, body, "data")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	var bodyErr map[string]any
	err = json.Unmarshal(w.Body.Bytes(), &bodyErr)
	require.NoError(t, err)
	require.Equal(t, false, bodyErr["success"])
	require.Equal(t, float64(400), bodyErr["statusCode"])
	require.Equal(t, "bad request", bodyErr["message"])
	require.Equal(t, "BAD_REQ", bodyErr["code"])
}

func TestFromErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.ErrValidation, 400, "VALIDATION_FAILED"},
		{apperrors.ErrUnauthorized, 401, "AUTH_REQUIRED"},
		{apperrors.ErrBlocked, 403, "ACCOUNT_BLOCKED"},
		{apperrors.ErrNotRegistered, 403, "NOT_REGISTERED"},
		{apperrors.ErrNotFound, 404, "NOT_FOUND"},
		{apperrors.ErrAlreadyReported, 409, "ALREADY_REPORTED"},
		{apperrors.Partial(apperrors.ErrInternal), 500, "PARTIAL_FAILURE"},
		{apperrors.Remote(apperrors.ErrInternal), 502, "REMOTE_OPERATION_FAILED"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, tc.err)
		require.Equal(t, tc.status, w.Code, tc.err.Error())

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, tc.code, body["code"], tc.err.Error())
	}
}

func TestAcceptedCarriesCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Accepted(c, nil, "ALREADY_REPORTED", "content was already reported")
	require.Equal(t, 200, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, true, body["success"])
	require.Equal(t, "ALREADY_REPORTED", body["code"])
}
