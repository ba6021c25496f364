package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type stubService struct {
	gotRole string
	gotID   string
}

func (s *stubService) Delete(ctx context.Context, role, id string) error {
	s.gotRole, s.gotID = role, id
	if role != domain.RoleAdmin {
		return bookings.ErrAccessDenied
	}
	if id == "TKT-missing" {
		return bookings.ErrBookingNotFound
	}
	return nil
}

func newRouter(svc *stubService) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodDelete)
	return r
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		role       string
		wantStatus int
	}{
		{name: "admin deletes", id: "TKT-1", role: "admin", wantStatus: http.StatusNoContent},
		{name: "staff is forbidden", id: "TKT-1", role: "staff", wantStatus: http.StatusForbidden},
		{name: "missing role is staff", id: "TKT-1", wantStatus: http.StatusForbidden},
		{name: "not found", id: "TKT-missing", role: "admin", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+tt.id, nil)
			req.Header.Set(middleware.HeaderUserName, "Dana")
			if tt.role != "" {
				req.Header.Set(middleware.HeaderUserRole, tt.role)
			}
			rec := httptest.NewRecorder()

			newRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.id, svc.gotID)
		})
	}
}
