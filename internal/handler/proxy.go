package handler

import (
	"io"
	"net/http"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/pagination"
)

// GetDirectoryUsers proxies the upstream user directory, reshaping each
// element and paginating the fetched list.
func (h *Handler) GetDirectoryUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directory.FetchUsers(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pagination.Paginate(r, h.pager, users))
}

// CreateDirectoryUser forwards the caller's body to the upstream create
// endpoint and returns the reshaped response. Staff only.
func (h *Handler) CreateDirectoryUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	caller, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !caller.IsStaff {
		h.respondError(w, apperr.Forbidden("you do not have permission to perform this action"))
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, apperr.Validation("invalid request body", nil))
		return
	}

	created, err := h.directory.CreateUser(r.Context(), payload)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, created)
}

// ListCameras proxies the camera-management API, reshaping and paginating
// the camera list.
func (h *Handler) ListCameras(w http.ResponseWriter, r *http.Request) {
	cameras, err := h.cameras.ListCameras(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, pagination.Paginate(r, h.pager, cameras))
}
