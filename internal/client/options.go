package client

import (
	"net/http"
	"time"
)

type options struct {
	apiKey     string
	httpClient *http.Client
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return o, nil
}

type Option func(o *options) error

// WithAPIKey sets the key sent on create, update and delete calls.
func WithAPIKey(
	apiKey string,
) Option {
	return func(o *options) error {
		o.apiKey = apiKey
		return nil
	}
}

func WithHTTPClient(
	httpClient *http.Client,
) Option {
	return func(o *options) error {
		o.httpClient = httpClient
		return nil
	}
}
