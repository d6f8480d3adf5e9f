package thttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outofforest/euid/pkg/test"
)

func newRequest(ctx context.Context) *http.Request {
	return httptest.NewRequest(http.MethodPost, "http://localhost", nil).WithContext(ctx)
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func TestRecover(t *testing.T) {
	ctx := test.Context(t)

	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("oops")
	}))

	w := newRecorder()
	handler.ServeHTTP(w, newRequest(ctx))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
