package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagURL(id int64) string {
	return fmt.Sprintf("/api/recipe/tags/%d/", id)
}

func seedTaggedRecipe(t *testing.T, env *testEnv, token string, names ...string) recipeBody {
	t.Helper()
	tags := make([]map[string]string, 0, len(names))
	for _, name := range names {
		tags = append(tags, map[string]string{"name": name})
	}
	w := env.do(t, http.MethodPost, "/api/recipe/recipes/", token, map[string]any{
		"title": "Seed",
		"tags":  tags,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody[recipeBody](t, w)
}

func TestTagsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/recipe/tags/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTagsReverseLexical(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	token := env.token(t, "a@x.com", "pw12345")
	seedTaggedRecipe(t, env, token, "Breakfast", "Vegan", "Dinner")

	w := env.do(t, http.MethodGet, "/api/recipe/tags/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	tags := decodeBody[[]tagBody](t, w)
	require.Len(t, tags, 3)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dinner", tags[1].Name)
	assert.Equal(t, "Breakfast", tags[2].Name)
}

func TestListTagsScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	env.register(t, "b@x.com", "pw12345", "B")
	tokenA := env.token(t, "a@x.com", "pw12345")
	tokenB := env.token(t, "b@x.com", "pw12345")
	seedTaggedRecipe(t, env, tokenA, "Indian")

	w := env.do(t, http.MethodGet, "/api/recipe/tags/", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tags := decodeBody[[]tagBody](t, w)
	assert.Empty(t, tags)
}

func TestUpdateTag(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	token := env.token(t, "a@x.com", "pw12345")
	recipe := seedTaggedRecipe(t, env, token, "Diner")

	w := env.do(t, http.MethodPatch, tagURL(recipe.Tags[0].ID), token, map[string]string{
		"name": "Dinner",
	})
	require.Equal(t, http.StatusOK, w.Code)
	tag := decodeBody[tagBody](t, w)
	assert.Equal(t, "Dinner", tag.Name)
	assert.Equal(t, recipe.Tags[0].ID, tag.ID)
}

func TestUpdateTagCrossOwnerIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	env.register(t, "b@x.com", "pw12345", "B")
	tokenA := env.token(t, "a@x.com", "pw12345")
	tokenB := env.token(t, "b@x.com", "pw12345")
	recipe := seedTaggedRecipe(t, env, tokenA, "Indian")

	w := env.do(t, http.MethodPatch, tagURL(recipe.Tags[0].ID), tokenB, map[string]string{
		"name": "Stolen",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTagKeepsRecipe(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	token := env.token(t, "a@x.com", "pw12345")
	recipe := seedTaggedRecipe(t, env, token, "Indian", "Dinner")

	w := env.do(t, http.MethodDelete, tagURL(recipe.Tags[0].ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, recipeURL(recipe.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[recipeBody](t, w)
	require.Len(t, body.Tags, 1)
}

func TestDeleteTagCrossOwnerIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	env.register(t, "b@x.com", "pw12345", "B")
	tokenA := env.token(t, "a@x.com", "pw12345")
	tokenB := env.token(t, "b@x.com", "pw12345")
	recipe := seedTaggedRecipe(t, env, tokenA, "Indian")

	w := env.do(t, http.MethodDelete, tagURL(recipe.Tags[0].ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagCreateEndpointAbsent(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "a@x.com", "pw12345", "A")
	token := env.token(t, "a@x.com", "pw12345")

	w := env.do(t, http.MethodPost, "/api/recipe/tags/", token, map[string]string{"name": "Direct"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
