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
	"strings"
	"time"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/client/session"
	"github.com/dmitrijs2005/pharmadmin/internal/common"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

const maxResponseBytes = 10 << 20

// envelope is the response wrapper every API endpoint uses.
type envelope struct {
	Success    *bool              `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Message    string             `json:"message"`
	Error      string             `json:"error"`
}

func (e *envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

type RESTClient struct {
	baseURL *url.URL
	http    *http.Client
	session *session.Session
	logger  logging.Logger
}

type Option func(*RESTClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *RESTClient) { c.http = h }
}

// WithTimeout bounds every request, including body transfer.
func WithTimeout(d time.Duration) Option {
	return func(c *RESTClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *RESTClient) { c.logger = l }
}

// NewRESTClient creates a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8080/api/". sess supplies the bearer token and is
// invalidated when the server answers 401.
func NewRESTClient(baseURL string, sess *session.Session, opts ...Option) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if sess == nil {
		sess = session.New(nil)
	}

	c := &RESTClient{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *RESTClient) endpoint(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *RESTClient) Login(ctx context.Context, email string, password []byte) (*models.LoginResult, error) {
	body, err := json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, string(password)})
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	var res models.LoginResult
	if _, err := c.do(ctx, http.MethodPost, "auth/login", nil, bytes.NewReader(body), "application/json", &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &APIError{Kind: ErrUnavailable, Message: "sign-in response carried no token"}
	}
	return &res, nil
}

func (c *RESTClient) Me(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if _, err := c.do(ctx, http.MethodGet, "auth/me", nil, nil, "", &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *RESTClient) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var st models.DashboardStats
	if _, err := c.do(ctx, http.MethodGet, "dashboard/stats", nil, nil, "", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *RESTClient) List(ctx context.Context, resource models.Resource, query url.Values, out any) (*models.Pagination, error) {
	return c.do(ctx, http.MethodGet, resource.String(), query, nil, "", out)
}

func (c *RESTClient) Get(ctx context.Context, resource models.Resource, id string, out any) error {
	_, err := c.do(ctx, http.MethodGet, resource.String()+"/"+url.PathEscape(id), nil, nil, "", out)
	return err
}

func (c *RESTClient) Create(ctx context.Context, resource models.Resource, body any, out any) error {
	return c.send(ctx, http.MethodPost, resource.String(), body, out)
}

func (c *RESTClient) Update(ctx context.Context, resource models.Resource, id string, body any, out any) error {
	return c.send(ctx, http.MethodPut, resource.String()+"/"+url.PathEscape(id), body, out)
}

func (c *RESTClient) Delete(ctx context.Context, resource models.Resource, id string) error {
	_, err := c.do(ctx, http.MethodDelete, resource.String()+"/"+url.PathEscape(id), nil, nil, "", nil)
	return err
}

func (c *RESTClient) send(ctx context.Context, method, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	_, err = c.do(ctx, method, path, nil, bytes.NewReader(data), "application/json", out)
	return err
}

// do performs one request and decodes the envelope's data member into out.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) (*models.Pagination, error) {
	token := c.session.Token()
	if token != "" && !c.session.Authenticated() {
		c.session.Invalidate(ctx)
		return nil, &APIError{Kind: ErrUnauthorized, Message: msgUnauthorized}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "api request failed", "method", method, "path", path, "error", err)
		return nil, &APIError{Kind: ErrUnavailable, Message: msgTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &APIError{Kind: ErrUnavailable, Status: resp.StatusCode, Message: msgTransport, Err: err}
	}
	c.logger.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := kindForStatus(resp.StatusCode)
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.Invalidate(ctx)
		}
		msg := env.message()
		if decodeErr != nil || msg == "" || kind == ErrUnavailable {
			msg = defaultMessage(kind)
		}
		return nil, &APIError{Kind: kind, Status: resp.StatusCode, Message: msg}
	}

	// 204 and other bodiless successes carry no envelope.
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if decodeErr != nil {
		return nil, &APIError{Kind: ErrUnavailable, Status: resp.StatusCode, Message: "invalid server response", Err: decodeErr}
	}
	if env.Success != nil && !*env.Success {
		msg := env.message()
		if msg == "" {
			msg = msgRejected
		}
		return nil, &APIError{Kind: ErrValidation, Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &APIError{Kind: ErrUnavailable, Status: resp.StatusCode, Message: "invalid server response", Err: err}
		}
	}
	return env.Pagination, nil
}

// IsAuthError reports whether err requires the user to sign in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
