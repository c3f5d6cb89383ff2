// Package calcapi реализует клиент расчётного эндпоинта налога на транспорт.
package calcapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/domain/ports"
)

const (
	// TokenField имя поля формы с анти-CSRF токеном
	TokenField = "csrfmiddlewaretoken"
	// TokenHeader заголовок, дублирующий токен
	TokenHeader = "X-CSRFToken"
	// tokenCookie cookie, в которой сервер выдаёт токен
	tokenCookie = "csrftoken"

	maxResponseSize = 4 << 20
)

// Config настройки клиента.
type Config struct {
	Endpoint  string
	CSRFToken string
	Timeout   time.Duration
	Logger    func(string)
}

// HTTPDoer минимальный интерфейс HTTP-клиента (для тестов).
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client отправляет форму на расчётный эндпоинт и разбирает JSON-ответ.
type Client struct {
	cfg      Config
	endpoint *url.URL
	http     HTTPDoer
	jar      http.CookieJar
}

// New создает клиент со своим cookie jar (сервер может выдать CSRF-токен в cookie).
func New(cfg Config) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout, Jar: jar})
}

// NewWithHTTPClient создает клиент с пользовательским HTTP-клиентом.
func NewWithHTTPClient(cfg Config, doer HTTPDoer) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, ErrNoEndpoint
	}
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}

	c := &Client{cfg: cfg, endpoint: endpoint, http: doer}
	if hc, ok := doer.(*http.Client); ok {
		c.jar = hc.Jar
	}
	return c, nil
}

var _ ports.Calculator = (*Client)(nil)

// Calculate отправляет форму POST-запросом (application/x-www-form-urlencoded).
// Сбой транспорта, не-JSON ответ и не-2xx без разбираемого тела возвращаются ошибкой,
// обёрнутой в ErrTransport. Ответ success=false возвращается как есть.
func (c *Client) Calculate(ctx context.Context, form url.Values) (*models.CalculationResponse, error) {
	payload := cloneValues(form)
	token := c.token()
	if token != "" {
		payload.Set(TokenField, token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(payload.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	c.log(fmt.Sprintf("POST %s (request %s, %d fields)", c.endpoint.Redacted(), requestID, len(form)))

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log(fmt.Sprintf("request %s failed: %v", requestID, err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	c.log(fmt.Sprintf("request %s: HTTP %d, %d bytes in %s", requestID, resp.StatusCode, len(body), time.Since(started)))

	var out models.CalculationResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Разбираемое тело с отказом сервера передаём как бизнес-ошибку
		if decodeErr == nil && !out.Success && (out.Error != "" || len(out.Errors) > 0) {
			return &out, nil
		}
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w: %v", ErrTransport, ErrMalformedResponse, decodeErr)
	}
	if out.Success && out.Result == nil {
		return nil, fmt.Errorf("%w: %w: success without result", ErrTransport, ErrMalformedResponse)
	}

	return &out, nil
}

// token возвращает токен из конфигурации или из cookie, выданной сервером.
func (c *Client) token() string {
	if c.cfg.CSRFToken != "" {
		return c.cfg.CSRFToken
	}
	if c.jar == nil {
		return ""
	}
	for _, cookie := range c.jar.Cookies(c.endpoint) {
		if cookie.Name == tokenCookie {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) log(msg string) {
	if c.cfg.Logger != nil {
		c.cfg.Logger(msg)
	}
}

// readBody читает тело ответа, перекодируя его в UTF-8 по заголовку Content-Type.
func readBody(resp *http.Response) ([]byte, error) {
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxResponseSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response charset: %w", err)
	}
	return io.ReadAll(reader)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
