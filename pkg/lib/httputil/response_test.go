package httputil_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/pkg/lib/httputil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	err := httputil.JSONResponse(w, http.StatusCreated, map[string]int{"count": 3})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	httputil.ErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "product not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body httputil.ErrorBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "product not found", body.Error)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
