package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/onboarding/internal/domain/errors"
	"github.com/polkiloo/onboarding/internal/domain/model"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-successful backend answer.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// UserMessage returns the text that may be shown to the applicant: the
// error message of a 2xx envelope with success false. Any other failure
// yields an empty string.
func (e *APIError) UserMessage() string {
	if e.Status < http.StatusOK || e.Status >= http.StatusMultipleChoices || e.Code == "" {
		return ""
	}
	return e.Message
}

// Client exposes the backend operations used by the wizard.
type Client interface {
	CreateAccount(ctx context.Context, req model.AccountRequest, docs []model.Document) (*model.SubmissionResult, error)
	GetApplication(ctx context.Context, referenceCode string) (*model.ApplicationDetails, error)
	SubmitApplication(ctx context.Context, req model.AuthorizationRequest) error
}

// Options tunes the HTTP client.
type Options struct {
	Timeout time.Duration
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates the backend client. A zero timeout means 10s.
func NewHTTPClient(baseURL string, opts Options, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("backend url must be absolute")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateAccount posts the multipart submission: one "documents" part per
// file and a "json" field with the aggregated wizard data.
func (c *HTTPClient) CreateAccount(ctx context.Context, req model.AccountRequest, docs []model.Document) (*model.SubmissionResult, error) {
	body, contentType, err := encodeAccount(req, docs)
	if err != nil {
		return nil, err
	}

	env, status, err := c.do(ctx, http.MethodPost, c.endpoint("account", nil), body, contentType)
	if err != nil {
		return nil, err
	}
	if apiErr := failure(env, status); apiErr != nil {
		if status == http.StatusConflict {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrDuplicateAccount, apiErr)
		}
		return nil, apiErr
	}

	var result model.SubmissionResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("decode account response: %w", err)
	}
	if result.ReferenceCode == "" {
		return nil, &APIError{Status: status, Message: "response carries no reference code"}
	}
	return &result, nil
}

// GetApplication fetches the application behind a reference code.
func (c *HTTPClient) GetApplication(ctx context.Context, referenceCode string) (*model.ApplicationDetails, error) {
	query := url.Values{"referenceCode": {referenceCode}}
	env, status, err := c.do(ctx, http.MethodGet, c.endpoint("application", query), nil, "")
	if err != nil {
		return nil, err
	}
	if apiErr := failure(env, status); apiErr != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", domainErrors.ErrNotFound, apiErr)
		}
		return nil, apiErr
	}

	var details model.ApplicationDetails
	if err := json.Unmarshal(env.Data, &details); err != nil {
		return nil, fmt.Errorf("decode application: %w", err)
	}
	return &details, nil
}

// SubmitApplication posts the medical director's authorization.
func (c *HTTPClient) SubmitApplication(ctx context.Context, req model.AuthorizationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	env, status, err := c.do(ctx, http.MethodPost, c.endpoint("application", nil), bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	if apiErr := failure(env, status); apiErr != nil {
		return apiErr
	}
	return nil
}

func (c *HTTPClient) endpoint(resource string, query url.Values) string {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, resource)
	endpoint.RawQuery = query.Encode()
	return endpoint.String()
}

// do sends the request and decodes the envelope. Transport failures wrap
// ErrBackendUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*envelope, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", slog.String("method", method), slog.String("url", endpoint), slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("%w: %w", domainErrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %w", domainErrors.ErrBackendUnavailable, err)
	}

	c.logger.Debug("backend request",
		slog.String("method", method),
		slog.String("url", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(started)),
	)

	env, err := decodeEnvelope(raw)
	if err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &envelope{}, resp.StatusCode, nil
		}
		c.logger.Error("backend returned malformed body", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: err.Error()}
	}
	return env, resp.StatusCode, nil
}

// failure returns the APIError for a non-2xx status or a false success
// flag, nil otherwise.
func failure(env *envelope, status int) *APIError {
	if status >= http.StatusOK && status < http.StatusMultipleChoices && env.Success {
		return nil
	}
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	if env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeAccount(req model.AccountRequest, docs []model.Document) (io.Reader, string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, "", fmt.Errorf("encode account: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, doc := range docs {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="documents"; filename="%s"`, quoteEscaper.Replace(doc.Name)))
		header.Set("Content-Type", doc.ContentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(doc.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.WriteField("json", string(payload)); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// IsAPIError reports whether err carries an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
