package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/traveller-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// New returns a client for provider calls that transparently retries
// transient failures up to maxRetries times: connection errors and 5xx
// answers to idempotent requests, immediately, without backoff. Timeouts
// and 4xx (including 429) are returned as is.
func New(maxRetries int, timeout time.Duration, log *zap.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.RetryWaitMin = 0
	rc.RetryWaitMax = 0
	rc.Backoff = noBackoff
	rc.CheckRetry = checkRetry
	rc.Logger = logger.NewLeveled(log.Named("http"))
	rc.HTTPClient.Timeout = timeout

	return rc.StandardClient()
}

func noBackoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return 0
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
		return resp.Request == nil || idempotent(resp.Request.Method), nil
	}

	return false, nil
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}
