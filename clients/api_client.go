package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	awspkg "storefront-service/pkg/aws"
)

// maxBodySize caps how much of an upstream body is read.
const maxBodySize = 4 << 20

// APIClient sends JSON requests to the commerce API.
type APIClient struct {
	baseURL string
	client  *http.Client
	metrics *awspkg.MetricsClient
}

// NewAPIClient builds a client for baseURL (scheme and host, without the /api/v1 prefix).
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		client:  &http.Client{Timeout: timeout},
	}
}

// WithMetrics reports the latency of every upstream call.
func (a *APIClient) WithMetrics(m *awspkg.MetricsClient) *APIClient {
	a.metrics = m
	return a
}

// UpstreamError is a non-2xx answer from the commerce API.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status=%d message=%s", e.Status, e.Message)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Status == http.StatusNotFound
}

// IsClientError reports whether the API rejected the request itself (4xx).
func IsClientError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Status >= 400 && ue.Status < 500
}

// Do sends one request. token goes in the API's "token" header when non-empty and body,
// when non-nil, is sent as JSON.
func (a *APIClient) Do(ctx context.Context, method, path string, query url.Values, token string, body any) (*http.Response, error) {
	u := a.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("token", token)
	}

	start := time.Now()
	resp, err := a.client.Do(req)
	if a.metrics.IsEnabled() {
		elapsed := time.Since(start)
		go func() {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = a.metrics.RecordLatency(mctx, awspkg.MetricUpstreamLatency, elapsed, map[string]string{"Method": method})
		}()
	}
	return resp, err
}

// ReadBody drains resp and turns any status >= 400 into an *UpstreamError.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: upstreamMessage(body, resp.Status)}
	}
	return body, nil
}

// DecodeJSON reads resp into out, see ReadBody for error semantics.
func DecodeJSON(resp *http.Response, out any) error {
	body, err := ReadBody(resp)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode upstream body: %w", err)
	}
	return nil
}

// upstreamMessage digs the human message out of the API's error shapes:
// {"message": "..."} and {"message": "fail", "errors": {"msg": "..."}}.
func upstreamMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Errors  struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}
	if payload.Errors.Msg != "" {
		return payload.Errors.Msg
	}
	if payload.Message != "" {
		return payload.Message
	}
	return fallback
}
