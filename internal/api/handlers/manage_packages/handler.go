package manage_packages

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
	msgInvalidData        = "некорректные данные пакета"
	msgNotFound           = "пакет не найден"
	msgAlreadyExists      = "пакет с таким названием уже существует"
	msgForbidden          = "управлять пакетами может только администратор"
)

// Handler справочник пакетов тренингов
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

// List GET /api/v1/packages
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPackages(r.Context())
	if err != nil {
		h.respondError(w, "GET /packages", err)
		return
	}

	h.logger.Info("GET /packages - Packages retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/packages
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorRole = middleware.GetRole(r.Context())

	result, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /packages", err)
		return
	}

	h.logger.Info("POST /packages - Package created: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/packages/{packageId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	packageID := mux.Vars(r)["packageId"]

	var req models.PackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /packages/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorRole = middleware.GetRole(r.Context())

	result, err := h.service.UpdatePackage(r.Context(), packageID, &req)
	if err != nil {
		h.respondError(w, "PUT /packages/{id}", err)
		return
	}

	h.logger.Info("PUT /packages/{id} - Package updated: id=%s", packageID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/packages/{packageId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	packageID := mux.Vars(r)["packageId"]

	if err := h.service.DeletePackage(r.Context(), middleware.GetRole(r.Context()), packageID); err != nil {
		h.respondError(w, "DELETE /packages/{id}", err)
		return
	}

	h.logger.Info("DELETE /packages/{id} - Package deleted: id=%s", packageID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, directory.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, directory.ErrNotFound):
		h.logger.Warn("%s - Package not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, directory.ErrAlreadyExists):
		h.logger.Warn("%s - Package already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, directory.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Directory error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
