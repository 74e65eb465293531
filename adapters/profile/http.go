package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prismaticcrm/teacher-assistant/domain"
	"github.com/prismaticcrm/teacher-assistant/utils/log"
	"go.uber.org/zap"
)

// HTTPFetcher retrieves instructor profiles over HTTP. A single GET,
// no retries; the client timeout bounds the whole call.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.WithCtx(ctx).Warn("profile fetch failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: fetching instructor profile: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading instructor profile: %v", domain.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithCtx(ctx).Warn("profile service returned error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return nil, &domain.RemoteError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: instructor profile is not valid JSON", domain.ErrRemoteUnavailable)
	}

	return json.RawMessage(body), nil
}
