package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/integrations/camera"
	"github.com/beetdev/recipe-service/internal/integrations/directory"
	"github.com/beetdev/recipe-service/internal/middleware"
	"github.com/beetdev/recipe-service/internal/pagination"
	"github.com/beetdev/recipe-service/internal/service"
	"github.com/beetdev/recipe-service/internal/validation"
)

// DirectoryClient is the directory-proxy surface the handler needs.
type DirectoryClient interface {
	FetchUsers(ctx context.Context) ([]directory.User, error)
	CreateUser(ctx context.Context, payload []byte) (*directory.User, error)
}

// CameraClient is the camera-proxy surface the handler needs.
type CameraClient interface {
	ListCameras(ctx context.Context) ([]camera.Camera, error)
}

type Handler struct {
	svc       *service.Service
	directory DirectoryClient
	cameras   CameraClient
	pager     pagination.Config
	validate  *validation.Validator
	log       *logrus.Logger
}

func NewHandler(
	svc *service.Service,
	directoryClient DirectoryClient,
	cameraClient CameraClient,
	pager pagination.Config,
	validate *validation.Validator,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		svc:       svc,
		directory: directoryClient,
		cameras:   cameraClient,
		pager:     pager,
		validate:  validate,
		log:       log,
	}
}

// MethodNotAllowed is wired as the router's fallback for matched paths with
// unmatched verbs.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusMethodNotAllowed,
		apperr.New(apperr.CodeMethodNotAllowed, "method \""+r.Method+"\" not allowed"))
}

// NotFound is wired as the router's fallback for unmatched paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusNotFound, apperr.NotFound("not found"))
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	if appErr.Code == apperr.CodeInternal || appErr.Code == apperr.CodeUpstream {
		h.log.Errorf("Request failed: %v", err)
	}
	h.respondJSON(w, appErr.Code.HTTPStatus(), appErr)
}

// decodeJSON decodes the request body into dst, reporting malformed JSON as
// a validation error.
func (h *Handler) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid JSON body", nil)
	}
	return nil
}

// callerID pulls the authenticated user id set by the auth middleware.
func callerID(r *http.Request) (int64, error) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return 0, apperr.Unauthorized("authentication credentials were not provided")
	}
	return id, nil
}
