// Package remote is a client for the learning API's course, trail and
// certificate endpoints. Responses are validated as snapshots before they are
// converted to domain values. Trail entries that cannot be joined are dropped
// rather than failing the response.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/learntrail/internal/domain"
	"github.com/alexanderramin/learntrail/internal/snapshot"
)

// Client talks to one learning API deployment.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
	}
}

// CourseMeta fetches a course with its chapter/activity tree.
func (c *Client) CourseMeta(ctx context.Context, courseUUID string) (*domain.Course, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/courses/"+url.PathEscape(courseUUID)+"/meta")
	if err != nil {
		return nil, err
	}
	s, err := snapshot.DecodeCourse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := snapshot.JoinErrors("course", snapshot.ValidateCourse(s)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return s.ToDomain(), nil
}

// Trail fetches the caller's trail within the configured organization.
func (c *Client) Trail(ctx context.Context) (*domain.Trail, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/trail/org/"+url.PathEscape(c.cfg.Org)+"/trail")
	if err != nil {
		return nil, err
	}
	return c.decodeTrail(body)
}

// AddActivity marks an activity complete and returns the refreshed trail.
func (c *Client) AddActivity(ctx context.Context, activityUUID string) (*domain.Trail, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/trail/add_activity/"+url.PathEscape(activityUUID))
	if err != nil {
		return nil, err
	}
	return c.decodeTrail(body)
}

// RemoveCourse quits a course and returns the refreshed trail.
func (c *Client) RemoveCourse(ctx context.Context, courseUUID string) (*domain.Trail, error) {
	body, err := c.do(ctx, http.MethodDelete, "/api/v1/trail/remove_course/"+url.PathEscape(courseUUID))
	if err != nil {
		return nil, err
	}
	return c.decodeTrail(body)
}

// Certificate verifies an issued certificate by its readable id.
func (c *Client) Certificate(ctx context.Context, userCertificationUUID string) (*domain.IssuedCertificate, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/certifications/certificate/"+url.PathEscape(userCertificationUUID))
	if err != nil {
		return nil, err
	}
	s, err := snapshot.DecodeCertificate(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if s.CertificateUser.UserCertificationUUID == "" {
		return nil, fmt.Errorf("%w: certificate without user_certification_uuid", ErrInvalidResponse)
	}
	return s.ToDomain(), nil
}

func (c *Client) decodeTrail(body []byte) (*domain.Trail, error) {
	s, err := snapshot.DecodeTrail(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	for _, note := range snapshot.PruneTrail(s) {
		c.cfg.Logger.Warn("dropped trail entry", zap.Error(note))
	}
	t := s.ToDomain()
	t.UserID = c.cfg.UserID
	return t, nil
}

// statusError carries a non-2xx response. 5xx responses are retried.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

// do sends one logical request, retrying transport errors and 5xx
// responses up to MaxRetries times. Each attempt has its own timeout.
func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	var lastErr error
	backoff := c.cfg.Backoff
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		if i > 0 && backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		body, err := c.attempt(ctx, method, path)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) {
			switch {
			case se.code == http.StatusNotFound:
				return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
			case se.code < 500:
				return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnexpectedStatus, se)
			}
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, lastErr)
}

func (c *Client) attempt(ctx context.Context, method, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if c.cfg.UserID > 0 {
		req.Header.Set("X-User-ID", strconv.FormatInt(c.cfg.UserID, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
