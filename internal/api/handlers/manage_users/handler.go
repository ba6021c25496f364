package manage_users

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
	msgInvalidData        = "некорректные данные пользователя"
	msgNotFound           = "пользователь не найден"
	msgAlreadyExists      = "пользователь с таким email уже существует"
	msgForbidden          = "управлять пользователями может только администратор"
)

// Handler CRUD сотрудников
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

// List GET /api/v1/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, "GET /users", err)
		return
	}

	h.logger.Info("GET /users - Users retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/v1/users/{userId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	result, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /users/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorRole = middleware.GetRole(r.Context())

	result, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /users", err)
		return
	}

	h.logger.Info("POST /users - User created: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/users/{userId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var req models.UserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorRole = middleware.GetRole(r.Context())

	result, err := h.service.UpdateUser(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "PUT /users/{id}", err)
		return
	}

	h.logger.Info("PUT /users/{id} - User updated: id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/users/{userId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := h.service.DeleteUser(r.Context(), middleware.GetRole(r.Context()), userID); err != nil {
		h.respondError(w, "DELETE /users/{id}", err)
		return
	}

	h.logger.Info("DELETE /users/{id} - User deleted: id=%s", userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, directory.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, directory.ErrNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, directory.ErrAlreadyExists):
		h.logger.Warn("%s - User already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, directory.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	default:
		h.logger.Error("%s - Directory error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
