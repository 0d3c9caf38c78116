// ABOUTME: Client for the ExerciseDB web API used to discover new exercises.
// ABOUTME: Any failure degrades to an empty result and a logged warning.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/harperreed/ironlog/internal/logging"
	"github.com/harperreed/ironlog/internal/models"
)

const (
	DefaultBaseURL = "https://exercisedb.p.rapidapi.com"
	DefaultHost    = "exercisedb.p.rapidapi.com"

	nameSearchLimit = 30
	bodyPartLimit   = 50
	defaultTimeout  = 15 * time.Second
)

// RemoteConfig holds the ExerciseDB connection settings.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Host    string
}

// WebExercise is the ExerciseDB wire shape.
type WebExercise struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BodyPart     string   `json:"bodyPart"`
	Target       string   `json:"target"`
	Equipment    string   `json:"equipment"`
	GIFURL       string   `json:"gifUrl"`
	Instructions []string `json:"instructions"`
}

// ToExercise converts a web result into a catalog entry with a "web-" ID.
func (w WebExercise) ToExercise() models.Exercise {
	title := cases.Title(language.English)
	return models.Exercise{
		ID:           "web-" + w.ID,
		Name:         title.String(w.Name),
		MuscleGroup:  title.String(w.BodyPart),
		TargetMuscle: w.Target,
		Equipment:    w.Equipment,
		GIFURL:       w.GIFURL,
		Instructions: w.Instructions,
		FormSteps:    w.Instructions,
		Source:       models.SourceWeb,
	}
}

// RemoteClient searches the ExerciseDB API.
type RemoteClient struct {
	cfg        RemoteConfig
	httpClient *http.Client
	logger     *log.Logger
}

// RemoteOption customizes the client.
type RemoteOption func(*RemoteClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(c *RemoteClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger sets the logger for degraded responses.
func WithLogger(l *log.Logger) RemoteOption {
	return func(c *RemoteClient) {
		c.logger = logging.OrDiscard(l)
	}
}

// NewRemoteClient builds a client, filling unset fields with the public defaults.
func NewRemoteClient(cfg RemoteConfig, opts ...RemoteOption) *RemoteClient {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	c := &RemoteClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByName returns exercises whose name matches query.
func (c *RemoteClient) SearchByName(ctx context.Context, query string) []WebExercise {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []WebExercise{}
	}
	path := "/exercises/name/" + url.PathEscape(query)
	return c.list(ctx, path, nameSearchLimit, "name search")
}

// ListByBodyPart returns exercises for an API body part, e.g. "upper legs".
func (c *RemoteClient) ListByBodyPart(ctx context.Context, bodyPart string) []WebExercise {
	bodyPart = strings.ToLower(strings.TrimSpace(bodyPart))
	if bodyPart == "" {
		return []WebExercise{}
	}
	path := "/exercises/bodyPart/" + url.PathEscape(bodyPart)
	return c.list(ctx, path, bodyPartLimit, "body part filter")
}

func (c *RemoteClient) list(ctx context.Context, path string, limit int, op string) []WebExercise {
	out, err := c.get(ctx, path, limit)
	if err != nil {
		c.logger.Warn("exercise lookup failed", "op", op, "err", err)
		return []WebExercise{}
	}
	return out
}

func (c *RemoteClient) get(ctx context.Context, path string, limit int) ([]WebExercise, error) {
	u := fmt.Sprintf("%s%s?limit=%d", c.cfg.BaseURL, path, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out []WebExercise
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if out == nil {
		out = []WebExercise{}
	}
	return out, nil
}

// MapFilterToBodyPart translates a UI muscle filter to an ExerciseDB body
// part. Unknown filters pass through lower-cased.
func MapFilterToBodyPart(filter string) string {
	switch f := strings.ToLower(strings.TrimSpace(filter)); f {
	case "legs":
		return "upper legs"
	case "arms":
		return "upper arms"
	case "abs":
		return "waist"
	default:
		return f
	}
}
