// Package camera integrates with the camera-management API. The upstream
// wraps its payload in a "cameras" list; each element is reshaped through a
// fixed flat schema and dropped with a log line when it fails.
package camera

import (
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

// Camera is the fixed reshape schema for camera objects. List fields default
// to empty rather than null; the booleans are pointers so an absent key fails
// the required check while an explicit false passes it.
type Camera struct {
	AccessPoint      string   `json:"accessPoint" validate:"required"`
	Archives         []string `json:"archives"`
	AudioStreams     string   `json:"audioStreams" validate:"required"`
	Azimuth          string   `json:"azimuth" validate:"required"`
	CameraAccess     string   `json:"camera_access" validate:"required"`
	Comment          string   `json:"comment" validate:"required"`
	Detectors        []string `json:"detectors"`
	DisplayID        string   `json:"displayId" validate:"required"`
	DisplayName      string   `json:"displayName" validate:"required"`
	Enabled          *bool    `json:"enabled" validate:"required"`
	Groups           []string `json:"groups"`
	IPAddress        string   `json:"ipAddress" validate:"required"`
	IsActivated      *bool    `json:"isActivated" validate:"required"`
	Latitude         string   `json:"latitude" validate:"required"`
	Longitude        string   `json:"longitude" validate:"required"`
	Model            string   `json:"model" validate:"required"`
	OfflineDetectors string   `json:"offlineDetectors" validate:"required"`
	Panomorph        *bool    `json:"panomorph" validate:"required"`
	PTZs             []string `json:"ptzs"`
	Rays             []string `json:"rays"`
	TextSources      []string `json:"textSources"`
	Vendor           string   `json:"vendor" validate:"required"`
	VideoStreams     string   `json:"videoStreams" validate:"required"`
}

// Client calls the camera-management API.
type Client struct {
	baseURL  string
	sid      string
	key      string
	client   *http.Client
	validate *validation.Validator
	log      *logrus.Logger
}

// NewClient initializes a new camera client
func NewClient(cfg *config.Config, validate *validation.Validator, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.CameraBaseURL,
		sid:     cfg.CameraSID,
		key:     cfg.CameraKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		validate: validate,
		log:      log,
	}
}

// ListCameras retrieves the camera list and returns the elements that pass
// the reshape schema. Invalid cameras are logged and dropped.
func (c *Client) ListCameras(ctx context.Context) ([]Camera, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/camera/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.sid, c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream("camera api unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(fmt.Sprintf("camera api returned status %d", resp.StatusCode), nil)
	}

	var payload struct {
		Cameras []json.RawMessage `json:"cameras"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Upstream("failed to decode camera response", err)
	}

	cameras := make([]Camera, 0, len(payload.Cameras))
	for i, element := range payload.Cameras {
		var cam Camera
		if err := json.Unmarshal(element, &cam); err != nil {
			c.log.Warnf("Skipping camera %d: %v", i, err)
			continue
		}
		if err := c.validate.Validate(cam); err != nil {
			c.log.Warnf("Skipping camera %d: %v", i, err)
			continue
		}
		normalizeLists(&cam)
		cameras = append(cameras, cam)
	}
	return cameras, nil
}

func normalizeLists(cam *Camera) {
	if cam.Archives == nil {
		cam.Archives = []string{}
	}
	if cam.Detectors == nil {
		cam.Detectors = []string{}
	}
	if cam.Groups == nil {
		cam.Groups = []string{}
	}
	if cam.PTZs == nil {
		cam.PTZs = []string{}
	}
	if cam.Rays == nil {
		cam.Rays = []string{}
	}
	if cam.TextSources == nil {
		cam.TextSources = []string{}
	}
}
