package directory

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/config"
	"github.com/beetdev/recipe-service/internal/validation"
)

const validUser = `{
	"id": 1,
	"name": "Leanne Graham",
	"username": "Bret",
	"email": "leanne@april.biz",
	"address": {
		"street": "Kulas Light",
		"suite": "Apt. 556",
		"city": "Gwenborough",
		"zipcode": "92998-3874",
		"geo": {"lat": "-37.3159", "lng": "81.1496"}
	},
	"phone": "1-770-736-8031",
	"website": "hildegard.org",
	"company": {
		"name": "Romaguera-Crona",
		"catchPhrase": "Multi-layered client-server neural-net",
		"bs": "harness real-time e-markets"
	}
}`

func testClient(t *testing.T, listURL, createURL string) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{DirectoryListURL: listURL, DirectoryCreateURL: createURL}
	return NewClient(cfg, validation.New(), logger)
}

func TestFetchUsersSkipsInvalidElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		// Second element is missing most required fields.
		io.WriteString(w, `[`+validUser+`, {"id": 2, "name": "Broken"}, `+validUser+`]`)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, srv.URL)
	users, err := client.FetchUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "Bret", users[0].Username)
	assert.Equal(t, "81.1496", users[0].Address.Geo.Lng)
}

func TestFetchUsersAcceptsZeroID(t *testing.T) {
	zeroID := strings.Replace(validUser, `"id": 1`, `"id": 0`, 1)
	noID := strings.Replace(validUser, `"id": 1,`, ``, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[`+zeroID+`, `+noID+`]`)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, srv.URL)
	users, err := client.FetchUsers(context.Background())
	require.NoError(t, err)

	// id 0 is a present value; an absent id fails the schema.
	require.Len(t, users, 1)
	require.NotNil(t, users[0].ID)
	assert.Equal(t, 0, *users[0].ID)
}

func TestFetchUsersUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, srv.URL)
	_, err := client.FetchUsers(context.Background())

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeUpstream, appErr.Code)
}

func TestFetchUsersUnreachable(t *testing.T) {
	client := testClient(t, "http://127.0.0.1:1/users", "http://127.0.0.1:1/posts")
	_, err := client.FetchUsers(context.Background())

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeUpstream, appErr.Code)
}

func TestCreateUserForwardsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"hello": "world"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, validUser)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, srv.URL)
	user, err := client.CreateUser(context.Background(), []byte(`{"hello": "world"}`))
	require.NoError(t, err)
	assert.Equal(t, "Leanne Graham", user.Name)
}

func TestCreateUserInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 3, "name": "No Email", "username": "noemail"}`)
	}))
	defer srv.Close()

	client := testClient(t, srv.URL, srv.URL)
	_, err := client.CreateUser(context.Background(), []byte(`{}`))

	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "email")
}
