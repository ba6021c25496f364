package export_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type stubService struct {
	format     string
	publicOnly bool
	req        *models.ListBookingsRequest
}

func (s *stubService) ExportXLSX(ctx context.Context, req *models.ListBookingsRequest, publicOnly bool) (*bookings.ExportFile, error) {
	s.format, s.publicOnly, s.req = "xlsx", publicOnly, req
	return &bookings.ExportFile{Name: "bookings.xlsx", ContentType: "application/xlsx", Data: []byte("PK")}, nil
}

func (s *stubService) ExportICS(ctx context.Context, req *models.ListBookingsRequest, publicOnly bool) (*bookings.ExportFile, error) {
	s.format, s.publicOnly, s.req = "ics", publicOnly, req
	return &bookings.ExportFile{Name: "public-requests.ics", ContentType: "text/calendar", Data: []byte("BEGIN:VCALENDAR")}, nil
}

func TestHandle_DefaultsToXLSX(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/export?status=Done", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "xlsx", svc.format)
	assert.False(t, svc.publicOnly)
	assert.Equal(t, "Done", svc.req.Status)
	assert.Equal(t, `attachment; filename="bookings.xlsx"`, rec.Header().Get("Content-Disposition"))
}

func TestHandle_PublicRequestsCalendar(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/export?format=ics&publicOnly=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ics", svc.format)
	assert.True(t, svc.publicOnly)
	assert.Equal(t, "BEGIN:VCALENDAR", rec.Body.String())
}

func TestHandle_UnknownFormat(t *testing.T) {
	svc := &stubService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/export?format=pdf", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.format)
}
