package rmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"proflens/internal/logging"
	"proflens/internal/ratelimit"
)

const (
	defaultTimeout = 10 * time.Second
)

// Searcher defines the rating API operations used by resolution.
type Searcher interface {
	SearchTeachers(ctx context.Context, text, schoolID string) []Teacher
	TeacherByID(ctx context.Context, id string) *Teacher
}

// Client wraps the rating service's GraphQL endpoint. Both queries funnel
// through a shared rate limiter, and all transport or application errors are
// absorbed at this boundary: callers receive empty results, never errors,
// because badge rendering and recommendations must degrade instead of crash.
type Client struct {
	endpoint   string
	authToken  string
	referer    string
	limiter    *ratelimit.Limiter
	logger     *slog.Logger
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithReferer sets the Referer header sent with every query.
func WithReferer(referer string) Option {
	return func(c *Client) {
		c.referer = strings.TrimSpace(referer)
	}
}

// WithTimeout overrides the default HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a rating API client. The limiter is required: every outbound
// call must respect the shared pacing budget.
func New(endpoint, authToken string, limiter *ratelimit.Limiter, logger *slog.Logger, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("rmp endpoint required")
	}
	if limiter == nil {
		return nil, errors.New("rate limiter required")
	}
	client := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		authToken:  strings.TrimSpace(authToken),
		limiter:    limiter,
		logger:     logging.NewComponentLogger(logger, "rmp"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchTeachers runs a free-text teacher search, optionally scoped to a
// school. Failures of any kind are logged and reported as no results.
func (c *Client) SearchTeachers(ctx context.Context, text, schoolID string) []Teacher {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	variables := map[string]any{"text": text}
	if strings.TrimSpace(schoolID) != "" {
		variables["schoolID"] = schoolID
	} else {
		variables["schoolID"] = nil
	}

	var payload searchTeachersData
	if err := c.query(ctx, searchTeachersQuery, variables, &payload); err != nil {
		c.logger.Warn("teacher search failed",
			logging.String(logging.FieldEventType, "rmp_search_failed"),
			logging.String("text", text),
			logging.Error(err),
			logging.String(logging.FieldImpact, "treating as no results"))
		return nil
	}

	edges := payload.NewSearch.Teachers.Edges
	teachers := make([]Teacher, 0, len(edges))
	for _, edge := range edges {
		teachers = append(teachers, edge.Node)
	}
	return teachers
}

// TeacherByID fetches a single record by its opaque id. Returns nil on
// failure or absence.
func (c *Client) TeacherByID(ctx context.Context, id string) *Teacher {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	var payload teacherSummaryData
	if err := c.query(ctx, teacherSummaryQuery, map[string]any{"id": id}, &payload); err != nil {
		c.logger.Warn("teacher fetch failed",
			logging.String(logging.FieldEventType, "rmp_fetch_failed"),
			logging.String("teacher_id", id),
			logging.Error(err),
			logging.String(logging.FieldImpact, "treating as not found"))
		return nil
	}
	return payload.Node
}

// query posts a GraphQL document through the rate limiter and decodes the
// data payload into out. Unlike the exported calls it returns errors.
func (c *Client) query(ctx context.Context, document string, variables map[string]any, out any) error {
	return c.limiter.Do(ctx, func() error {
		body, err := json.Marshal(map[string]any{
			"query":     document,
			"variables": variables,
		})
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "*/*")
		if c.authToken != "" {
			req.Header.Set("Authorization", "Basic "+c.authToken)
		}
		if c.referer != "" {
			req.Header.Set("Referer", c.referer)
		}

		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err != nil {
			return fmt.Errorf("execute request (latency=%v): %w", latency, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
			return fmt.Errorf("graphql returned %d (latency=%v): %s", resp.StatusCode, latency, strings.TrimSpace(string(snippet)))
		}

		var envelope struct {
			Data   json.RawMessage `json:"data"`
			Errors []struct {
				Message string `json:"message"`
			} `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		if len(envelope.Errors) > 0 {
			return fmt.Errorf("graphql errors: %s", envelope.Errors[0].Message)
		}
		if len(envelope.Data) == 0 {
			return errors.New("graphql response missing data")
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data payload: %w", err)
		}
		return nil
	})
}
