package handler

import (
	"net/http"
)

type updateTagRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// ListTags returns the caller's tags in reverse lexical order
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	tags, err := h.svc.ListTags(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tags)
}

// UpdateTag renames one of the caller's tags
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	tagID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req updateTagRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, err)
		return
	}

	tag, err := h.svc.UpdateTag(r.Context(), userID, tagID, req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tag)
}

// DeleteTag removes one of the caller's tags
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	tagID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.DeleteTag(r.Context(), userID, tagID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
