// Package sips wraps the macOS sips CLI used to decode HEIC images into an
// intermediate JPEG before WebP encoding.
package sips

import (
	"context"
	"errors"
	"strings"

	"webpify/internal/services"
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps sips CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs a sips client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("sips binary required")
	}
	client := &Client{binary: binary, exec: services.NewExecutor()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// DecodeJPEG converts src into a JPEG file at dst.
func (c *Client) DecodeJPEG(ctx context.Context, src, dst string) error {
	args := []string{"-s", "format", "jpeg", src, "--out", dst}
	if _, err := c.exec.Run(ctx, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "sips", "decode", src, err)
	}
	return nil
}
