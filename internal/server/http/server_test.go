package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sakewinkel/console/internal/config"
	"github.com/sakewinkel/console/pkg/errorbank"
)

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewEcho_Health(t *testing.T) {
	e := NewEcho(config.Config{}, nil, zap.NewNop())

	rec := serve(e, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(e, "/missing").Code)
}

func TestNewEcho_ErrorHandler(t *testing.T) {
	e := NewEcho(config.Config{}, nil, zap.NewNop())
	e.GET("/unavailable", func(echo.Context) error {
		return errorbank.Unavailable("store offline", errorbank.WithCause(errors.New("dial tcp")))
	})
	e.GET("/panic", func(echo.Context) error { panic("boom") })

	rec := serve(e, "/unavailable")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "unavailable", body.Error.Kind)
	assert.Equal(t, "store offline", body.Error.Message)

	assert.Equal(t, http.StatusInternalServerError, serve(e, "/panic").Code)
}
