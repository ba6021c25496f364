package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Acme", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme","extra":1}`))
	assert.Error(t, DecodeJSON(req, &dst))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondNotFound(rec, "не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "не найдено", body.Error)
}

func TestRespondJSON_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestRespondFile(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondFile(rec, "bookings.ics", "text/calendar", []byte("BEGIN:VCALENDAR"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bookings.ics"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "BEGIN:VCALENDAR", rec.Body.String())
}
