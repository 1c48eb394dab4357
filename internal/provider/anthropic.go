// Package provider constructs the Anthropic Messages API client.
package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// NewAnthropicClient returns a client authenticated with apiKey.
// SDK retries are disabled: a failed call is reported once and not repeated.
// opts are applied last so callers (tests) can swap the HTTP client.
func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *anthropic.Client {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	c := anthropic.NewClient(append(base, opts...)...)
	return &c
}
