package export_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers/list_bookings"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings"
)

const (
	formatXLSX = "xlsx"
	formatICS  = "ics"

	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidFormat = "формат выгрузки должен быть xlsx или ics"
	msgExportFailed  = "не удалось сформировать файл"
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

// Handle GET /api/v1/bookings/export
// Query params: format (xlsx|ics, по умолчанию xlsx), publicOnly, фильтры списка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	serviceReq, err := list_bookings.ToServiceRequest(q)
	if err != nil {
		h.logger.Warn("GET /bookings/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	publicOnly := false
	if s := q.Get("publicOnly"); s != "" {
		if publicOnly, err = strconv.ParseBool(s); err != nil {
			h.logger.Warn("GET /bookings/export - Invalid publicOnly: %q", s)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	format := q.Get("format")
	if format == "" {
		format = formatXLSX
	}

	var file *bookings.ExportFile
	switch format {
	case formatXLSX:
		file, err = h.service.ExportXLSX(r.Context(), serviceReq, publicOnly)
	case formatICS:
		file, err = h.service.ExportICS(r.Context(), serviceReq, publicOnly)
	default:
		h.logger.Warn("GET /bookings/export - Unknown format: %q", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrExport):
			h.logger.Error("GET /bookings/export - Export failed: format=%s, error=%v", format, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgExportFailed)

		default:
			h.logger.Error("GET /bookings/export - Failed to export bookings: format=%s, error=%v", format, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/export - Exported: file=%s, size=%d", file.Name, len(file.Data))
	handlers.RespondFile(w, file.Name, file.ContentType, file.Data)
}
