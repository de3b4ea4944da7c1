package llm

import (
	"net/http"
	"time"

	"smart-blog-be/pkg/httputil"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// NewHTTPClient returns a client that retries connection errors, 429 and 5xx
// responses with exponential backoff.
func NewHTTPClient(timeout time.Duration, retries int, logger *zap.Logger) *http.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = retries
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 5 * time.Second
	c.HTTPClient.Timeout = timeout
	c.Logger = retryablehttp.LeveledLogger(httputil.NewLeveledZap(logger))
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return c.StandardClient()
}
