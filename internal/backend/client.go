package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hmade-storefront/internal/auth"
	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/metrics"

	"go.uber.org/zap"
)

const maxResponseBytes = 4 << 20

// Client talks to the storefront REST backend. Every authenticated method
// takes the caller's session explicitly; an expired session fails before any
// request is built.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	metrics    *metrics.Metrics
	now        func() time.Time
}

// ----------------- Constructor -----------------

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		now:        time.Now,
	}, nil
}

type call struct {
	name     string
	method   string
	path     string
	query    url.Values
	rawQuery string
	body     any

	// sess is nil for public endpoints.
	sess *auth.Session
}

// ----------------- Round trip -----------------

func (c *Client) do(ctx context.Context, rc call, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("component", "backend"),
		zap.String("endpoint", rc.name),
		zap.String("method", rc.method),
	)

	if rc.sess != nil {
		if err := rc.sess.Check(c.now()); err != nil {
			log.Info("refusing backend call with expired session", zap.String("user_id", rc.sess.UserID))
			return err
		}
	}

	rel, err := url.Parse(rc.path)
	if err != nil {
		return fmt.Errorf("%s: bad path: %w", rc.name, err)
	}
	if rc.rawQuery != "" {
		rel.RawQuery = rc.rawQuery
	} else if len(rc.query) > 0 {
		rel.RawQuery = rc.query.Encode()
	}
	target := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if rc.body != nil {
		b, err := json.Marshal(rc.body)
		if err != nil {
			log.Error("failed to marshal backend request", zap.Error(err))
			return fmt.Errorf("marshal %s request: %w", rc.name, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, target.String(), reqBody)
	if err != nil {
		log.Error("failed creating backend request", zap.Error(err))
		return err
	}
	req.Header.Set("Accept", "application/json")
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.sess != nil {
		req.Header.Set("Authorization", "Bearer "+rc.sess.Token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}

	timer := metrics.StartTimer()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(rc.name, 0, timer.Duration())
		log.Error("backend request failed", zap.Error(err))
		return fmt.Errorf("%s: %w", rc.name, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(rc.name, resp.StatusCode, timer.Duration())

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error("failed to read backend response", zap.Error(err))
		return fmt.Errorf("read %s response: %w", rc.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Endpoint: rc.name,
			Status:   resp.StatusCode,
			Detail:   parseDetail(bodyBytes),
		}
		if resp.StatusCode >= 500 {
			log.Error("backend returned server error",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("response", bodyBytes),
			)
		} else {
			log.Warn("backend returned non-success status",
				zap.Int("status", resp.StatusCode),
				zap.String("detail", apiErr.Detail),
			)
		}
		return apiErr
	}

	log.Debug("backend request done",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", timer.Duration()),
	)

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("failed to decode backend response", zap.Error(err))
		return fmt.Errorf("decode %s response: %w", rc.name, err)
	}
	return nil
}

func authed(sess auth.Session) *auth.Session {
	return &sess
}

func escaped(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return url.PathEscape(id), nil
}
