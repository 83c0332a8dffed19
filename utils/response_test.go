package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/posts", nil)

	ValidationError(ctx, errors.New("Key: 'title' Error:Field validation\nfor 'title' failed"))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, float64(10422), envelope["status_code"])
	assert.NotContains(t, envelope["message"], "\n")
	val, present := envelope["data"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	Error(ctx, http.StatusInternalServerError, 50011, "failed to create post")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":50011,"message":"failed to create post"}`, w.Body.String())
}

func TestSanitizeKeepsPlainText(t *testing.T) {
	assert.Equal(t, "Hi", Sanitize("Hi"))
	assert.NotContains(t, Sanitize(`<script>alert(1)</script>hello`), "script")
}
