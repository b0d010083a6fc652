package errorbank

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestAppError_Mappings(t *testing.T) {
	tests := []struct {
		err      *AppError
		wantHTTP int
		wantGRPC codes.Code
	}{
		{BadRequest("bad"), http.StatusBadRequest, codes.InvalidArgument},
		{New(KindConflict, "dup"), http.StatusConflict, codes.AlreadyExists},
		{NotFound("missing"), http.StatusNotFound, codes.NotFound},
		{New(KindUnprocessableEntity, "nope"), http.StatusUnprocessableEntity, codes.FailedPrecondition},
		{Unavailable("down"), http.StatusServiceUnavailable, codes.Unavailable},
		{Internal("boom"), http.StatusInternalServerError, codes.Internal},
		{New(Kind("teapot"), ""), http.StatusInternalServerError, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Kind()), func(t *testing.T) {
			assert.Equal(t, tt.wantHTTP, tt.err.StatusCode())
			assert.Equal(t, tt.wantGRPC, tt.err.GRPCCode())
		})
	}
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	cause := errors.New("dial tcp: refused")
	wrapped := fmt.Errorf("load: %w", Unavailable("store unreachable", WithCause(cause)))
	appErr := From(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, KindUnavailable, appErr.Kind())
	assert.ErrorIs(t, appErr, cause)

	plain := From(errors.New("oops"))
	assert.Equal(t, KindInternal, plain.Kind())
	assert.Equal(t, "internal error: oops", plain.Error())
}

func TestNoticeFrom(t *testing.T) {
	assert.Nil(t, NoticeFrom("title", nil))

	n := NoticeFrom("Error fetching order statistics", Unavailable("store unreachable", WithCause(errors.New("timeout"))))
	require.NotNil(t, n)
	assert.Equal(t, "Error fetching order statistics", n.Title)
	assert.Equal(t, "store unreachable: timeout", n.Message)
	assert.Equal(t, KindUnavailable, n.Kind)

	n = NoticeFrom("t", NotFound("order not found", WithDetail("id", 4)))
	assert.Equal(t, "order not found", n.Message)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("order not found"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindUnavailable))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}
