package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/avezina/todostack/internal/auth"
	"github.com/avezina/todostack/internal/models"
	"github.com/avezina/todostack/internal/services"
)

// TodoHandler handles HTTP requests for todo management. Every route is
// behind auth.Middleware, so handlers can rely on claims being present.
type TodoHandler struct {
	service services.TodoServiceProvider
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(service services.TodoServiceProvider) *TodoHandler {
	return &TodoHandler{service: service}
}

// CreateTodoPayload defines the structure for todo creation requests.
type CreateTodoPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ownerFromContext pulls the verified owner identity out of the request.
func ownerFromContext(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		// Only reachable if a route was registered outside the middleware.
		log.Error().Str("path", r.URL.Path).Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return nil, false
	}
	return claims, true
}

// Create handles todo creation for the authenticated owner.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var payload CreateTodoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	todo, err := h.service.Create(claims.UUID, payload.Title, payload.Description)
	if err != nil {
		log.Error().Err(err).Str("owner", claims.UUID).Msg("Failed to create todo")
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// List returns all todos owned by the authenticated user, newest first.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	todos, err := h.service.ListByOwner(claims.UUID)
	if err != nil {
		log.Error().Err(err).Str("owner", claims.UUID).Msg("Failed to list todos")
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// Update applies a partial update to one of the caller's todos.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	var update models.TodoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if update.Status != nil && !models.ValidStatus(*update.Status) {
		writeMessage(w, http.StatusBadRequest, "Status must be \"todo\" or \"done\"")
		return
	}
	if update.Title != nil && *update.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}

	todo, err := h.service.Update(id, claims.UUID, update)
	if err != nil {
		log.Warn().Err(err).Int64("id", id).Str("owner", claims.UUID).Msg("Failed to update todo")
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Delete removes one of the caller's todos.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	if err := h.service.Delete(id, claims.UUID); err != nil {
		log.Warn().Err(err).Int64("id", id).Str("owner", claims.UUID).Msg("Failed to delete todo")
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
