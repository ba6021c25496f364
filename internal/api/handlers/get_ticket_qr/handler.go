package get_ticket_qr

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
)

const (
	msgInvalidSize = "некорректный размер изображения"
	msgNotFound    = "заявка не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/bookings/{bookingId}/qr
// Query params: size (px, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		var err error
		if size, err = strconv.Atoi(s); err != nil || size < 0 {
			h.logger.Warn("GET /public/bookings/{id}/qr - Invalid size: %q", s)
			handlers.RespondBadRequest(w, msgInvalidSize)
			return
		}
	}

	png, err := h.service.TicketQR(r.Context(), bookingID, size)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /public/bookings/{id}/qr - Booking not found: id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /public/bookings/{id}/qr - Failed to render QR: id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /public/bookings/{id}/qr - QR rendered: id=%s, bytes=%d", bookingID, len(png))
	handlers.RespondFile(w, "", "image/png", png)
}
