package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/models"
	"github.com/beetdev/recipe-service/internal/service"
)

type tagDescriptor struct {
	Name string `json:"name" validate:"required,max=100"`
}

type recipeRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description *string         `json:"description"`
	TimeMinutes *int            `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *string         `json:"price" validate:"omitempty,price"`
	Link        *string         `json:"link" validate:"omitempty,max=255"`
	Tags        []tagDescriptor `json:"tags" validate:"omitempty,dive"`
}

type recipePatchRequest struct {
	Title       *string         `json:"title" validate:"omitempty,max=255"`
	Description *string         `json:"description"`
	TimeMinutes *int            `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *string         `json:"price" validate:"omitempty,price"`
	Link        *string         `json:"link" validate:"omitempty,max=255"`
	Tags        []tagDescriptor `json:"tags" validate:"omitempty,dive"`
}

// recipeListItem is the collection shape; the description only appears on
// detail responses.
type recipeListItem struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	TimeMinutes *int         `json:"time_minutes"`
	Price       *string      `json:"price"`
	Link        *string      `json:"link"`
	Tags        []models.Tag `json:"tags"`
}

type recipeDetail struct {
	recipeListItem
	Description *string `json:"description"`
}

func toListItem(recipe *models.Recipe) recipeListItem {
	return recipeListItem{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        recipe.Tags,
	}
}

func toDetail(recipe *models.Recipe) recipeDetail {
	return recipeDetail{
		recipeListItem: toListItem(recipe),
		Description:    recipe.Description,
	}
}

func toTagInputs(tags []tagDescriptor) []service.TagInput {
	if tags == nil {
		return nil
	}
	inputs := make([]service.TagInput, 0, len(tags))
	for _, tag := range tags {
		inputs = append(inputs, service.TagInput{Name: tag.Name})
	}
	return inputs
}

// pathID extracts the numeric {id} path variable.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.NotFound("not found")
	}
	return id, nil
}

// ListRecipes returns the caller's recipes newest-first
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	recipes, err := h.svc.ListRecipes(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	items := make([]recipeListItem, 0, len(recipes))
	for i := range recipes {
		items = append(items, toListItem(&recipes[i]))
	}
	h.respondJSON(w, http.StatusOK, items)
}

// CreateRecipe creates a recipe for the caller
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req recipeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, err)
		return
	}

	recipe, err := h.svc.CreateRecipe(r.Context(), userID, service.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        toTagInputs(req.Tags),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toDetail(recipe))
}

// GetRecipe returns one of the caller's recipes
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	recipeID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	recipe, err := h.svc.GetRecipe(r.Context(), userID, recipeID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toDetail(recipe))
}

// UpdateRecipe applies a partial update to the caller's recipe
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	recipeID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req recipePatchRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, err)
		return
	}

	recipe, err := h.svc.UpdateRecipe(r.Context(), userID, recipeID, service.RecipePatch{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        toTagInputs(req.Tags),
		TagsSet:     req.Tags != nil,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toDetail(recipe))
}

// ReplaceRecipe overwrites the caller's recipe
func (h *Handler) ReplaceRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	recipeID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req recipeRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, err)
		return
	}

	recipe, err := h.svc.ReplaceRecipe(r.Context(), userID, recipeID, service.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        toTagInputs(req.Tags),
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toDetail(recipe))
}

// DeleteRecipe removes the caller's recipe
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	recipeID, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.DeleteRecipe(r.Context(), userID, recipeID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
