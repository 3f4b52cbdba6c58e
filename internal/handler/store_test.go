package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/beetdev/recipe-service/internal/config"
	"github.com/beetdev/recipe-service/internal/models"
	"github.com/beetdev/recipe-service/internal/pagination"
	"github.com/beetdev/recipe-service/internal/repository"
	"github.com/beetdev/recipe-service/internal/service"
	"github.com/beetdev/recipe-service/internal/validation"
)

// memStore is an in-memory service.Store with the same ownership and
// uniqueness behavior as the SQL repository.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]*models.User
	tags       map[int64]*models.Tag
	recipes    map[int64]*models.Recipe
	recipeTags map[int64][]int64
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[int64]*models.User),
		tags:       make(map[int64]*models.Tag),
		recipes:    make(map[int64]*models.Recipe),
		recipeTags: make(map[int64][]int64),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = m.id()
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memStore) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range m.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.UpdatedAt = time.Now()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memStore) ListTags(ctx context.Context, userID int64) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tags := []models.Tag{}
	for _, tag := range m.tags {
		if tag.UserID == userID {
			tags = append(tags, *tag)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name > tags[j].Name })
	return tags, nil
}

func (m *memStore) UpdateTag(ctx context.Context, userID, tagID int64, name string) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.tags[tagID]
	if !ok || tag.UserID != userID {
		return nil, repository.ErrNotFound
	}
	for id, other := range m.tags {
		if id != tagID && other.UserID == userID && other.Name == name {
			return nil, repository.ErrDuplicate
		}
	}
	tag.Name = name
	clone := *tag
	return &clone, nil
}

func (m *memStore) DeleteTag(ctx context.Context, userID, tagID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tag, ok := m.tags[tagID]
	if !ok || tag.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.tags, tagID)
	for recipeID, ids := range m.recipeTags {
		kept := ids[:0]
		for _, id := range ids {
			if id != tagID {
				kept = append(kept, id)
			}
		}
		m.recipeTags[recipeID] = kept
	}
	return nil
}

func (m *memStore) ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recipes := []models.Recipe{}
	for _, recipe := range m.recipes {
		if recipe.UserID == userID {
			clone := *recipe
			clone.Tags = m.attachedTags(recipe.ID)
			recipes = append(recipes, clone)
		}
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID > recipes[j].ID })
	return recipes, nil
}

func (m *memStore) GetRecipe(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recipe, ok := m.recipes[recipeID]
	if !ok || recipe.UserID != userID {
		return nil, repository.ErrNotFound
	}
	clone := *recipe
	clone.Tags = m.attachedTags(recipeID)
	return &clone, nil
}

func (m *memStore) CreateRecipe(ctx context.Context, recipe *models.Recipe, tagNames []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recipe.ID = m.id()
	recipe.CreatedAt = time.Now()
	recipe.UpdatedAt = recipe.CreatedAt
	clone := *recipe
	m.recipes[recipe.ID] = &clone
	m.attach(recipe.ID, recipe.UserID, tagNames)
	recipe.Tags = m.attachedTags(recipe.ID)
	return nil
}

func (m *memStore) UpdateRecipe(ctx context.Context, recipe *models.Recipe, tagNames []string, replaceTags bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.recipes[recipe.ID]
	if !ok || stored.UserID != recipe.UserID {
		return repository.ErrNotFound
	}
	stored.Title = recipe.Title
	stored.Description = recipe.Description
	stored.TimeMinutes = recipe.TimeMinutes
	stored.Price = recipe.Price
	stored.Link = recipe.Link
	stored.UpdatedAt = time.Now()
	if replaceTags {
		m.recipeTags[recipe.ID] = nil
		m.attach(recipe.ID, recipe.UserID, tagNames)
	}
	recipe.Tags = m.attachedTags(recipe.ID)
	return nil
}

func (m *memStore) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	recipe, ok := m.recipes[recipeID]
	if !ok || recipe.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.recipes, recipeID)
	delete(m.recipeTags, recipeID)
	return nil
}

func (m *memStore) attach(recipeID, userID int64, tagNames []string) {
	for _, name := range tagNames {
		var tag *models.Tag
		for _, t := range m.tags {
			if t.UserID == userID && t.Name == name {
				tag = t
				break
			}
		}
		if tag == nil {
			tag = &models.Tag{ID: m.id(), UserID: userID, Name: name}
			m.tags[tag.ID] = tag
		}
		attached := false
		for _, id := range m.recipeTags[recipeID] {
			if id == tag.ID {
				attached = true
				break
			}
		}
		if !attached {
			m.recipeTags[recipeID] = append(m.recipeTags[recipeID], tag.ID)
		}
	}
}

func (m *memStore) attachedTags(recipeID int64) []models.Tag {
	ids := append([]int64{}, m.recipeTags[recipeID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	tags := []models.Tag{}
	for _, id := range ids {
		if tag, ok := m.tags[id]; ok {
			tags = append(tags, *tag)
		}
	}
	return tags
}

// tagCount reports how many tags a user owns, for uniqueness assertions.
func (m *memStore) tagCount(userID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, tag := range m.tags {
		if tag.UserID == userID {
			n++
		}
	}
	return n
}

type testEnv struct {
	router *mux.Router
	store  *memStore
	svc    *service.Service
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithClients(t, nil, nil)
}

func newTestEnvWithClients(t *testing.T, directoryClient DirectoryClient, cameraClient CameraClient) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		TokenTTL:         time.Hour,
		PageDefaultLimit: 3,
		PageMaxLimit:     8,
	}
	store := newMemStore()
	svc := service.NewService(store, logger, cfg, nil)
	pager := pagination.Config{DefaultLimit: cfg.PageDefaultLimit, MaxLimit: cfg.PageMaxLimit}
	h := NewHandler(svc, directoryClient, cameraClient, pager, validation.New(), logger)

	return &testEnv{router: h.Routes(cfg), store: store, svc: svc, cfg: cfg}
}

func (e *testEnv) register(t *testing.T, email, password, name string) *models.User {
	t.Helper()
	user, err := e.svc.Register(context.Background(), email, password, name)
	require.NoError(t, err)
	return user
}

func (e *testEnv) token(t *testing.T, email, password string) string {
	t.Helper()
	token, err := e.svc.Login(context.Background(), email, password)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
