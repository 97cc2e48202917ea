package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"inkwell/services"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	return ctx, w
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("post: %w", services.ErrNotFound), http.StatusNotFound},
		{"conflict", services.ErrConflict, http.StatusConflict},
		{"unauthorized", services.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, w := testContext()
			respondServiceError(ctx, tc.err, 50099, "operation failed")
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRespondServiceErrorIncludesDetailOutsideRelease(t *testing.T) {
	ctx, w := testContext()
	respondServiceError(ctx, errors.New("boom"), 50099, "operation failed")
	assert.Contains(t, w.Body.String(), "boom")
}

func TestParsePagination(t *testing.T) {
	page, size := parsePagination("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = parsePagination("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)

	// out-of-range and junk values fall back to defaults
	page, size = parsePagination("-1", "500")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	page, size = parsePagination("abc", "0")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}

func TestPaginationPayload(t *testing.T) {
	payload := paginationPayload(2, 10, 35)
	assert.Equal(t, 2, payload["page"])
	assert.Equal(t, 10, payload["page_size"])
	assert.Equal(t, int64(35), payload["total"])
	assert.Equal(t, 4, payload["total_pages"])

	payload = paginationPayload(1, 10, 0)
	assert.Equal(t, 0, payload["total_pages"])
}
