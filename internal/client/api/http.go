package api

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

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

const (
	DefaultPrefix  = "/api"
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 10 << 20
)

// Options configures HTTPClient. Only BaseURL is required.
type Options struct {
	BaseURL      string
	Prefix       string
	MessageRoute MessageRoute
	Timeout      time.Duration
	// RequestsPerSecond caps outgoing calls; zero disables the limiter.
	RequestsPerSecond float64
	Tokens            TokenSource
	Logger            logging.Logger
	// Transport is the underlying RoundTripper, http.DefaultTransport if nil.
	Transport http.RoundTripper
}

type HTTPClient struct {
	baseURL string
	prefix  string
	route   MessageRoute
	http    *http.Client
	limiter *rate.Limiter
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	prefix := opts.Prefix
	if prefix != "" {
		prefix = "/" + strings.Trim(prefix, "/")
	}

	route := opts.MessageRoute
	switch route {
	case "":
		route = RouteNested
	case RouteNested, RouteFlat:
	default:
		return nil, fmt.Errorf("unknown message route %q", route)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	c := &HTTPClient{
		baseURL: base,
		prefix:  prefix,
		route:   route,
		http: &http.Client{
			Timeout:   timeout,
			Transport: newBearerTransport(opts.Transport, opts.Tokens),
		},
		log: log.With("component", "api"),
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c, nil
}

func (c *HTTPClient) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString(c.prefix)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	body, err := c.do(ctx, http.MethodPost, c.endpoint("auth", "login"), req)
	if err != nil {
		return AuthResponse{}, err
	}
	return decodeAuth(body)
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (AuthResponse, error) {
	req := struct {
		Username string `json:"username,omitempty"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{username, email, password}

	body, err := c.do(ctx, http.MethodPost, c.endpoint("auth", "register"), req)
	if err != nil {
		return AuthResponse{}, err
	}
	return decodeAuth(body)
}

func (c *HTTPClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	body, err := c.do(ctx, http.MethodGet, c.endpoint("chat"), nil)
	if err != nil {
		return nil, err
	}
	return decodeConversationList(body)
}

func (c *HTTPClient) CreateConversation(ctx context.Context) (models.Conversation, error) {
	body, err := c.do(ctx, http.MethodPost, c.endpoint("chat"), struct{}{})
	if err != nil {
		return models.Conversation{}, err
	}
	return decodeConversation(body)
}

func (c *HTTPClient) SendMessage(ctx context.Context, conversationID, text string) (models.Conversation, error) {
	if conversationID == "" {
		return models.Conversation{}, errors.New("conversation id is required")
	}

	var (
		target  string
		payload any
	)
	switch c.route {
	case RouteFlat:
		target = c.endpoint("chat", "message")
		payload = struct {
			ChatID  string `json:"chatId"`
			Message string `json:"message"`
		}{conversationID, text}
	default:
		target = c.endpoint("chat", url.PathEscape(conversationID), "messages")
		payload = struct {
			Message string `json:"message"`
		}{text}
	}

	body, err := c.do(ctx, http.MethodPost, target, payload)
	if err != nil {
		return models.Conversation{}, err
	}
	conv, err := decodeConversation(body)
	if err != nil {
		return models.Conversation{}, err
	}
	if conv.ID != conversationID {
		return models.Conversation{}, unexpected("reply for %s while sending to %s", conv.ID, conversationID)
	}
	return conv, nil
}

// do sends one JSON request and returns the raw body of a 2xx answer.
func (c *HTTPClient) do(ctx context.Context, method, target string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Warn(ctx, "request failed", "method", method, "url", target, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", requestID(resp),
		"elapsed", time.Since(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapStatus(resp.StatusCode, body)
	}
	return body, nil
}

func requestID(resp *http.Response) string {
	if resp.Request == nil {
		return ""
	}
	return resp.Request.Header.Get(common.RequestIDHeader)
}
