package manage_kams

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TrainingDesk/internal/api/handlers"
	"github.com/m04kA/SMC-TrainingDesk/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректное имя KAM"
	msgNotFound           = "KAM не найден"
	msgAlreadyExists      = "KAM с таким именем уже существует"
	msgForbidden          = "управлять списком KAM может только администратор"
)

// Handler справочник KAM
type Handler struct {
	service DirectoryService
	logger  Logger
}

func NewHandler(service DirectoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/kams
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListKAMs(r.Context())
	if err != nil {
		h.respondError(w, "GET /kams", err)
		return
	}

	h.logger.Info("GET /kams - KAMs retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/kams
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.KAMRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /kams - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorRole = middleware.GetRole(r.Context())

	result, err := h.service.CreateKAM(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /kams", err)
		return
	}

	h.logger.Info("POST /kams - KAM created: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Rename PUT /api/v1/kams/{kamId}
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	kamID := mux.Vars(r)["kamId"]

	var req models.KAMRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /kams/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorRole = middleware.GetRole(r.Context())

	if err := h.service.RenameKAM(r.Context(), kamID, &req); err != nil {
		h.respondError(w, "PUT /kams/{id}", err)
		return
	}

	h.logger.Info("PUT /kams/{id} - KAM renamed: id=%s", kamID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// Delete DELETE /api/v1/kams/{kamId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	kamID := mux.Vars(r)["kamId"]

	if err := h.service.DeleteKAM(r.Context(), middleware.GetRole(r.Context()), kamID); err != nil {
		h.respondError(w, "DELETE /kams/{id}", err)
		return
	}

	h.logger.Info("DELETE /kams/{id} - KAM deleted: id=%s", kamID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, directory.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, directory.ErrNotFound):
		h.logger.Warn("%s - KAM not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, directory.ErrAlreadyExists):
		h.logger.Warn("%s - KAM already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, directory.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Directory error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
