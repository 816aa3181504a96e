package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusCreated, map[string]float64{"score": 1.5})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"score": 1.5}`, rec.Body.String())

	// A body that cannot be encoded must not become an empty 200
	rec = httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]float64{"score": math.Inf(1)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "Failed to encode response"}`, rec.Body.String())
}
