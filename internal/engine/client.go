package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/acadsync/timetable-api/internal/dto"
	"github.com/acadsync/timetable-api/pkg/config"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

// Client talks to the external scheduling engine over HTTP. The engine's
// search may be slow, so every call carries the configured timeout; callers
// must not block past it.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *zap.Logger
}

// New constructs a Client with sane defaults.
func New(cfg config.EngineConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	url := cfg.URL
	if url == "" {
		url = "http://localhost:8000/generate"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     logger,
	}
}

// Solve posts the compiled request and decodes the engine's answer. An HTTP
// 400 from the engine means the constraints were infeasible; every other
// non-2xx status and every undecodable body is an integration fault.
func (c *Client) Solve(ctx context.Context, request *dto.EngineRequest) (*dto.EngineResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode engine request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build engine request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrEngineUnavailable.Code, appErrors.ErrEngineUnavailable.Status, "scheduling engine call failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Info("engine responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Int("requirements", len(request.Requirements)),
	)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		// The engine signals infeasibility with a 400 and a detail message.
		detail := readDetail(resp.Body)
		return nil, appErrors.Clone(appErrors.ErrNoFeasibleSchedule, detail)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, appErrors.Clone(appErrors.ErrEngineUnavailable, fmt.Sprintf("engine returned HTTP %d", resp.StatusCode))
	}

	var decoded dto.EngineResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedResult.Code, appErrors.ErrMalformedResult.Status, "failed to decode engine response")
	}
	return &decoded, nil
}

func readDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Detail == "" {
		return "engine found no feasible schedule"
	}
	return payload.Detail
}
