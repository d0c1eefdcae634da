package openai

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewSDKClient builds an SDK client for config. Retries are disabled unless
// configured so a call maps to exactly one upstream request.
func NewSDKClient(config Config) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(max(config.MaxRetries, 0)),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(config.Timeout))
	}

	if config.HTTPReferer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", config.HTTPReferer))
	}

	if config.AppTitle != "" {
		opts = append(opts, option.WithHeader("X-Title", config.AppTitle))
	}

	return openai.NewClient(opts...)
}

// HeaderOptions converts per-call headers into request options.
func HeaderOptions(headers map[string]string) []option.RequestOption {
	opts := make([]option.RequestOption, 0, len(headers))
	for name, value := range headers {
		opts = append(opts, option.WithHeader(name, value))
	}
	return opts
}

// IsExpectedError reports whether err is a failure the upstream call is known
// to produce: an API error status, a transport error, a timeout or a cancellation.
func IsExpectedError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
