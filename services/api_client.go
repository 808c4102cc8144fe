package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"complaint-portal/config"
	"complaint-portal/models"

	"github.com/sirupsen/logrus"
)

// ComplaintAPI is the remote complaint backend as the client sees it.
type ComplaintAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	ListComplaints(ctx context.Context, token string) ([]models.Complaint, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	CreateComplaint(ctx context.Context, token string, req models.CreateComplaintRequest) (*models.CreateComplaintResponse, error)
	GetAnonymousComplaint(ctx context.Context, id string) (*models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, token, id string, req models.UpdateStatusRequest) error
}

// APIError is a non-2xx answer from the complaint API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("complaint api: status %d: %s", e.StatusCode, e.Detail)
}

// Is lets callers test for models.ErrNotFound and models.ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	switch target {
	case models.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case models.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// APIClient talks JSON to the complaint API.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
}

var apiClient ComplaintAPI

// InitAPIClient builds the shared client from the loaded configuration.
func InitAPIClient() {
	apiClient = NewAPIClient(config.APIURL, &http.Client{Timeout: config.RequestTimeout})
	config.Log.WithField("base_url", config.APIURL).Info("complaint api client initialized")
}

// SetAPI replaces the shared client.
func SetAPI(api ComplaintAPI) {
	apiClient = api
}

// API returns the shared client.
func API() ComplaintAPI {
	return apiClient
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = config.DefaultAPIURL
	}
	return &APIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *APIClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) ListComplaints(ctx context.Context, token string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := c.do(ctx, http.MethodGet, "/complaints", token, nil, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (c *APIClient) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := c.do(ctx, http.MethodGet, "/departments", "", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (c *APIClient) CreateComplaint(ctx context.Context, token string, req models.CreateComplaintRequest) (*models.CreateComplaintResponse, error) {
	var resp models.CreateComplaintResponse
	if err := c.do(ctx, http.MethodPost, "/complaints", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) GetAnonymousComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := c.do(ctx, http.MethodGet, "/complaints/anonymous/"+url.PathEscape(id), "", nil, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *APIClient) UpdateComplaintStatus(ctx context.Context, token, id string, req models.UpdateStatusRequest) error {
	return c.do(ctx, http.MethodPut, "/complaints/"+url.PathEscape(id), token, req, nil)
}

// do sends one request. The token goes into Authorization verbatim, the way
// the API expects it. out may be nil when the body is not needed.
func (c *APIClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	requestID := RequestIDFromContext(ctx)
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	entry := config.Log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Warn("complaint api unreachable")
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	entry.WithField("status", resp.StatusCode).Debug("complaint api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(resp.StatusCode, data)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// parseDetail pulls the human message out of an error body. The API answers
// {"detail": "..."} for its own errors and {"detail": [{"msg": "..."}]} when
// the request body fails its schema.
func parseDetail(status int, data []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Detail) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil && text != "" {
			return text
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			var msgs []string
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if text := strings.TrimSpace(string(data)); text != "" && !json.Valid(data) && len(text) < 200 {
		return text
	}
	return http.StatusText(status)
}

// IsAPIError reports whether err came back from the API as a non-2xx answer.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
