package hoyolab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/starrail-profile-cli/internal/domain"
	"github.com/bnema/starrail-profile-cli/internal/ports"
)

const (
	DefaultBaseURL        = "https://api-takumi-record.mihoyo.com"
	DefaultRolePath       = "/game_record/app/hkrpg/api/role"
	DefaultCharactersPath = "/game_record/app/hkrpg/api/avatar/info"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) miHoYoBBS/2.0.0"
	DefaultRequestTimeout = 30 * time.Second

	maxResponseBytes = 8 << 20
	maxErrorDetail   = 256
)

type API struct {
	BaseURL        string
	RolePath       string
	CharactersPath string
}

func DefaultAPI(baseURL string) API {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	return API{
		BaseURL:        baseURL,
		RolePath:       DefaultRolePath,
		CharactersPath: DefaultCharactersPath,
	}
}

// Client reads the game-record endpoints with cookie authentication.
type Client struct {
	API            API
	HTTPClient     *http.Client
	UserAgent      string
	Region         string
	RequestTimeout time.Duration
}

var _ ports.ProfileSource = Client{}

func (c Client) FetchRoleSummary(ctx context.Context, creds domain.Credentials) (domain.RoleSummary, error) {
	body, err := c.get(ctx, c.API.RolePath, creds)
	if err != nil {
		return domain.RoleSummary{}, err
	}

	return decodeRoleSummary(c.API.RolePath, body)
}

func (c Client) FetchCharacters(ctx context.Context, creds domain.Credentials) ([]domain.Character, error) {
	body, err := c.get(ctx, c.API.CharactersPath, creds)
	if err != nil {
		return nil, err
	}

	return decodeCharacters(c.API.CharactersPath, body)
}

func (c Client) get(ctx context.Context, path string, creds domain.Credentials) ([]byte, error) {
	endpoint, err := c.endpointURL(path, creds.Identifier)
	if err != nil {
		return nil, domain.NewNetworkError(path, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewNetworkError(path, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Cookie", creds.Cookie())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, domain.NewNetworkError(path, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.NewHTTPStatusError(path, resp.StatusCode, truncateDetail(string(body)))
	}

	return body, nil
}

func (c Client) endpointURL(path string, uid domain.UID) (string, error) {
	base, err := parseBaseURL(c.API.BaseURL)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	endpoint := base.JoinPath(path)
	q := endpoint.Query()
	q.Set("uid", string(uid))
	if region := strings.TrimSpace(c.Region); region != "" {
		q.Set("server", region)
	}
	endpoint.RawQuery = q.Encode()

	return endpoint.String(), nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) userAgent() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return DefaultUserAgent
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	return parsed, nil
}

func truncateDetail(body string) string {
	trimmed := strings.TrimSpace(body)
	if len(trimmed) <= maxErrorDetail {
		return trimmed
	}
	return trimmed[:maxErrorDetail] + "..."
}
