package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/beetdev/recipe-service/internal/config"
	"github.com/beetdev/recipe-service/internal/middleware"
)

// Routes builds the full API router.
func (h *Handler) Routes(cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/user/create/", h.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/user/token/", h.CreateToken).Methods(http.MethodPost)
	api.HandleFunc("/get-data/", h.GetDirectoryUsers).Methods(http.MethodGet)
	api.HandleFunc("/cameras/", h.ListCameras).Methods(http.MethodGet)

	// Protected routes
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.HandleFunc("/user/me/", h.Me).Methods(http.MethodGet)
	authed.HandleFunc("/user/me/", h.UpdateMe).Methods(http.MethodPatch)
	authed.HandleFunc("/recipe/recipes/", h.ListRecipes).Methods(http.MethodGet)
	authed.HandleFunc("/recipe/recipes/", h.CreateRecipe).Methods(http.MethodPost)
	authed.HandleFunc("/recipe/recipes/{id:[0-9]+}/", h.GetRecipe).Methods(http.MethodGet)
	authed.HandleFunc("/recipe/recipes/{id:[0-9]+}/", h.UpdateRecipe).Methods(http.MethodPatch)
	authed.HandleFunc("/recipe/recipes/{id:[0-9]+}/", h.ReplaceRecipe).Methods(http.MethodPut)
	authed.HandleFunc("/recipe/recipes/{id:[0-9]+}/", h.DeleteRecipe).Methods(http.MethodDelete)
	authed.HandleFunc("/recipe/tags/", h.ListTags).Methods(http.MethodGet)
	authed.HandleFunc("/recipe/tags/{id:[0-9]+}/", h.UpdateTag).Methods(http.MethodPatch)
	authed.HandleFunc("/recipe/tags/{id:[0-9]+}/", h.DeleteTag).Methods(http.MethodDelete)
	authed.HandleFunc("/create/", h.CreateDirectoryUser).Methods(http.MethodPost)

	return r
}
