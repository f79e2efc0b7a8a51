// Package cwebp wraps the WebP encoder CLI. Every invocation carries the
// configured quality factor and requests full metadata carry-through.
package cwebp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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

// Client wraps cwebp CLI interactions.
type Client struct {
	binary  string
	quality int
	exec    services.Executor
}

// New constructs a cwebp client with a fixed quality on the 0-100 scale.
func New(binary string, quality int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("cwebp binary required")
	}
	if quality < 0 || quality > 100 {
		return nil, fmt.Errorf("cwebp quality must be between 0 and 100, got %d", quality)
	}
	client := &Client{binary: binary, quality: quality, exec: services.NewExecutor()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Quality reports the configured quality factor.
func (c *Client) Quality() int {
	return c.quality
}

// Encode compresses src into a WebP file at dst, asking the encoder to carry
// all embedded metadata through.
func (c *Client) Encode(ctx context.Context, src, dst string) error {
	args := []string{"-q", strconv.Itoa(c.quality), "-metadata", "all", src, "-o", dst}
	if _, err := c.exec.Run(ctx, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "cwebp", "encode", src, err)
	}
	return nil
}
