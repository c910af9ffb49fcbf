package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

const tracerName = "github.com/dmitrijs2005/userdir/internal/client/client"

// maxErrorBody bounds how much of an error response is read for diagnostics.
const maxErrorBody = 4 << 10

// HTTPClient implements Client over the directory service's JSON API.
type HTTPClient struct {
	baseURL      *url.URL
	http         *http.Client
	session      *session.Session
	apiKey       string
	logger       logging.Logger
	tracer       trace.Tracer
	newRequestID func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout sets a per-request timeout on the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http.Timeout = d }
}

// WithSession makes every request carry the session's bearer token.
func WithSession(s *session.Session) Option {
	return func(h *HTTPClient) { h.session = s }
}

// WithAPIKey sets the x-api-key header. Empty disables it.
func WithAPIKey(key string) Option {
	return func(h *HTTPClient) { h.apiKey = key }
}

// WithTracerProvider traces calls with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *HTTPClient) { h.tracer = tp.Tracer(tracerName) }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.logger = l }
}

// NewHTTPClient builds a client rooted at baseURL (e.g. https://reqres.in/api).
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL:      u,
		http:         &http.Client{Timeout: 10 * time.Second},
		logger:       logging.Discard(),
		tracer:       otel.Tracer(tracerName),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login exchanges credentials for a session token.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	var resp loginResponse
	req := loginRequest{Email: email, Password: string(password)}

	status, err := c.do(ctx, "login", http.MethodPost, "/login", nil, req, &resp)
	if err != nil {
		// The service answers rejected credentials with 400.
		if status == http.StatusBadRequest {
			return "", fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response without token", ErrUnexpectedStatus)
	}
	return resp.Token, nil
}

// ListUsers fetches one page. page must be at least 1.
func (c *HTTPClient) ListUsers(ctx context.Context, page int) (models.Page, error) {
	if page < 1 {
		return models.Page{}, fmt.Errorf("list users: invalid page %d", page)
	}

	var resp listUsersResponse
	q := url.Values{"page": []string{strconv.Itoa(page)}}
	if _, err := c.do(ctx, "list_users", http.MethodGet, "/users", q, nil, &resp); err != nil {
		return models.Page{}, err
	}

	p := models.Page{
		Number:     resp.Page,
		TotalPages: resp.TotalPages,
		PerPage:    resp.PerPage,
		Total:      resp.Total,
		Items:      make([]models.User, 0, len(resp.Data)),
	}
	if p.Number < 1 {
		p.Number = page
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	for _, d := range resp.Data {
		p.Items = append(p.Items, d.toModel())
	}
	return p, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int) (models.User, error) {
	var resp getUserResponse
	if _, err := c.do(ctx, "get_user", http.MethodGet, userPath(id), nil, nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.Data.toModel(), nil
}

// UpdateUser replaces the editable attributes of user id. Any 2xx is success;
// fields echoed back by the service win over the submitted patch.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (models.User, error) {
	var resp updateUserResponse
	if _, err := c.do(ctx, "update_user", http.MethodPut, userPath(id), nil, patchToDTO(patch), &resp); err != nil {
		return models.User{}, err
	}

	u := patch.Apply(models.User{ID: id})
	if resp.FirstName != "" {
		u.FirstName = resp.FirstName
	}
	if resp.LastName != "" {
		u.LastName = resp.LastName
	}
	if resp.Email != "" {
		u.Email = resp.Email
	}
	if resp.Avatar != "" {
		u.AvatarURL = resp.Avatar
	}
	return u, nil
}

// DeleteUser succeeds only on 204 No Content.
func (c *HTTPClient) DeleteUser(ctx context.Context, id int) error {
	status, err := c.do(ctx, "delete_user", http.MethodDelete, userPath(id), nil, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("%w: delete returned %d", ErrUnexpectedStatus, status)
	}
	return nil
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}

// do sends one request and decodes a 2xx JSON body into out (when out is
// non-nil and the body is not empty). It returns the HTTP status.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, query url.Values, in, out any) (int, error) {
	ctx, span := c.tracer.Start(ctx, "directory."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	requestID := c.newRequestID()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.String("request.id", requestID),
	)

	req, err := c.newRequest(ctx, method, path, query, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := c.logger.With("op", op, "method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		err = transportError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn(ctx, "request failed", "error", err, "duration", time.Since(start))
		return 0, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := mapStatus(resp.StatusCode, readAPIError(resp.Body))
		span.SetStatus(codes.Error, err.Error())
		return resp.StatusCode, err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = transportError(err)
		span.RecordError(err)
		return resp.StatusCode, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		err = fmt.Errorf("%w: decode %s %s: %v", ErrUnexpectedStatus, method, path, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, in any) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

func readAPIError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var e apiError
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(b))
}

func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// mapStatus translates a non-2xx status into a sentinel error.
func mapStatus(status int, message string) error {
	var base error
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		base = ErrUnauthorized
	case status == http.StatusNotFound:
		base = ErrNotFound
	case status >= 400 && status < 500:
		base = ErrRejected
	case status >= 500:
		base = ErrUnavailable
	default:
		base = ErrUnexpectedStatus
	}
	if message == "" {
		return fmt.Errorf("%w (status %d)", base, status)
	}
	return fmt.Errorf("%w (status %d): %s", base, status, message)
}
