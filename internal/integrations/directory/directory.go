// Package directory integrates with the public user-directory API. Responses
// are reshaped through a fixed schema; list elements that fail the schema are
// skipped and logged rather than failing the whole request.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/beetdev/recipe-service/internal/apperr"
	"github.com/beetdev/recipe-service/internal/config"
	"github.com/beetdev/recipe-service/internal/validation"
)

// Geo holds a coordinate pair.
type Geo struct {
	Lat string `json:"lat" validate:"required"`
	Lng string `json:"lng" validate:"required"`
}

// Address is a directory user's postal address.
type Address struct {
	Street  string `json:"street" validate:"required"`
	Suite   string `json:"suite" validate:"required"`
	City    string `json:"city" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required"`
	Geo     Geo    `json:"geo"`
}

// Company is a directory user's employer.
type Company struct {
	Name        string `json:"name" validate:"required"`
	CatchPhrase string `json:"catchPhrase" validate:"required"`
	BS          string `json:"bs" validate:"required"`
}

// User is the fixed reshape schema for directory users. ID is a pointer so a
// legitimate upstream id of 0 still counts as present.
type User struct {
	ID       *int    `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone" validate:"required"`
	Website  string  `json:"website" validate:"required"`
	Company  Company `json:"company"`
}

// Client calls the directory API.
type Client struct {
	listURL   string
	createURL string
	client    *http.Client
	validate  *validation.Validator
	log       *logrus.Logger
}

// NewClient initializes a new directory client
func NewClient(cfg *config.Config, validate *validation.Validator, log *logrus.Logger) *Client {
	return &Client{
		listURL:   cfg.DirectoryListURL,
		createURL: cfg.DirectoryCreateURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		validate: validate,
		log:      log,
	}
}

// FetchUsers retrieves the full upstream user list and returns the elements
// that pass the reshape schema. Invalid elements are logged and dropped.
func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream("directory api unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(fmt.Sprintf("directory api returned status %d", resp.StatusCode), nil)
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperr.Upstream("failed to decode directory response", err)
	}

	users := make([]User, 0, len(raw))
	for i, element := range raw {
		var user User
		if err := json.Unmarshal(element, &user); err != nil {
			c.log.Warnf("Skipping directory user %d: %v", i, err)
			continue
		}
		if err := c.validate.Validate(user); err != nil {
			c.log.Warnf("Skipping directory user %d: %v", i, err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// CreateUser forwards the caller's raw JSON body to the upstream create
// endpoint and validates the upstream's response against the user schema.
// A schema failure comes back as a validation error with field details.
func (c *Client) CreateUser(ctx context.Context, payload []byte) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.createURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream("directory api unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apperr.Upstream(fmt.Sprintf("directory api returned status %d", resp.StatusCode), nil)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperr.Upstream("failed to decode directory response", err)
	}
	if err := c.validate.Validate(user); err != nil {
		return nil, err
	}
	return &user, nil
}
