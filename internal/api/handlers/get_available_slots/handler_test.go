package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-TrainingDesk/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type stubUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return s.resp, s.err
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:         "2024-06-10",
		UsesDefaults: true,
		Slots: []getAvailableSlots.Slot{
			{ID: "virtual-2024-06-10-0", Time: "10:00 AM", Capacity: 2, Remaining: 2},
			{ID: "virtual-2024-06-10-1", Time: "12:00 PM", Capacity: 2, Remaining: 0, IsFull: true},
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?date=2024-06-10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.UsesDefaults)
	require.Len(t, body.Slots, 2)
	assert.True(t, body.Slots[0].Bookable)
	assert.False(t, body.Slots[1].Bookable)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{name: "missing date", url: "/api/v1/public/slots", wantStatus: http.StatusBadRequest},
		{name: "invalid date", url: "/api/v1/public/slots?date=10-06-2024", err: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "past date", url: "/api/v1/public/slots?date=2020-01-01", err: getAvailableSlots.ErrDateInPast, wantStatus: http.StatusBadRequest},
		{name: "internal", url: "/api/v1/public/slots?date=2024-06-10", err: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
