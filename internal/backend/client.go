package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/observability"
	apperrors "github.com/spec-kit/leave-portal/pkg/util"
)

// UnauthorizedHook runs when the backend rejects a call as unauthenticated.
// The portal wires it to clear the calling session; the hook fires at most
// once per failing call and never for the login or register endpoints.
type UnauthorizedHook func(ctx context.Context)

// Client is the single REST access layer for the leave backend. It attaches
// the session's bearer token to every outbound call and funnels auth
// failures through the unauthorized hook.
type Client struct {
	baseURL        string
	http           *http.Client
	logger         *zap.Logger
	metrics        *observability.Metrics
	onUnauthorized UnauthorizedHook
}

// NewClient constructs the client. hook may be nil.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, metrics *observability.Metrics, hook UnauthorizedHook) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: cfg.Timeout()},
		logger:         logger,
		metrics:        metrics,
		onUnauthorized: hook,
	}
}

type tokenKey struct{}

// WithToken stashes the session's bearer token for outbound calls made with
// the returned context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext retrieves the bearer token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

type callOptions struct {
	skipUnauthorizedHook bool
}

type callOption func(*callOptions)

// asCredentialCall marks login/register calls: their 401s mean bad
// credentials, not an expired session, and must not clear anything.
func asCredentialCall() callOption {
	return func(o *callOptions) { o.skipUnauthorizedHook = true }
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...callOption) error {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend call failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return apperrors.NewUnavailable(err)
	}
	defer resp.Body.Close()

	if c.metrics != nil {
		c.metrics.RecordUpstream(path, method, resp.StatusCode)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			if err == io.EOF {
				return nil
			}
			return apperrors.NewInternalError(fmt.Errorf("decode %s %s: %w", method, path, err))
		}
		return nil
	}

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode == http.StatusUnauthorized && !options.skipUnauthorizedHook {
		c.logger.Info("backend returned unauthorized, clearing session",
			zap.String("method", method), zap.String("path", path))
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return apperrors.NewUnauthorized("session expired")
	}

	message := extractMessage(payload)
	c.logger.Warn("backend error response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message))
	return apperrors.NewUpstreamError(resp.StatusCode, message)
}

// extractMessage pulls a display message out of a structured error payload,
// falling back to empty when the expected shape is absent.
func extractMessage(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	if len(envelope.Error) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Error, &text); err == nil && text != "" {
			return text
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return envelope.Message
}
