package create_public_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createPublicBooking "github.com/m04kA/SMC-TrainingDesk/internal/usecase/create_public_booking"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type stubUseCase struct {
	got  *createPublicBooking.Request
	resp *createPublicBooking.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context, req *createPublicBooking.Request) (*createPublicBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

const validBody = `{"date":"2024-06-10","slotId":"virtual-2024-06-10-2","companyName":"Acme","phoneNumber":"+62 811 000"}`

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createPublicBooking.Response{
		ID:        "REQ-00012345-007",
		Date:      "2024-06-10",
		StartTime: "03:00 PM",
		Status:    "Pending",
		State:     createPublicBooking.StateSuccess,
		Degraded:  true,
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/public/bookings", strings.NewReader(validBody)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Acme", uc.got.CompanyName)
	assert.Equal(t, "virtual-2024-06-10-2", uc.got.SlotID)

	var body PublicBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "REQ-00012345-007", body.ID)
	assert.Equal(t, "success", body.State)
	assert.True(t, body.Degraded)
	assert.True(t, body.RefreshSlots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "broken body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: validBody, err: fmt.Errorf("%w: phone number is required", createPublicBooking.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "invalid date", body: validBody, err: createPublicBooking.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "slot not found", body: validBody, err: createPublicBooking.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "slot full", body: validBody, err: fmt.Errorf("%w: slot is full", createPublicBooking.ErrSlotNotAvailable), wantStatus: http.StatusConflict},
		{name: "insert failed", body: validBody, err: createPublicBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/public/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
