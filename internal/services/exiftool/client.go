package exiftool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"webpify/internal/services"
)

// TagSet is the opaque tag name to value map exiftool reports for one file.
// Values are never interpreted beyond existence checks.
type TagSet map[string]any

// DateTags are the tags re-copied in a dedicated second pass after the bulk
// copy. The bulk -all:all copy does not reliably set filesystem-level date
// attributes, so these are force-written again.
var DateTags = []string{
	"-CreateDate",
	"-ModifyDate",
	"-DateTimeOriginal",
	"-FileCreateDate",
	"-FileModifyDate",
}

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

// Client wraps exiftool CLI interactions.
type Client struct {
	binary string
	exec   services.Executor
}

// New constructs an exiftool client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	client := &Client{binary: binary, exec: services.NewExecutor()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Probe runs the version query once. A nil return means the tool is present
// and executable; any failure means metadata propagation must be skipped.
func (c *Client) Probe(ctx context.Context) error {
	if _, err := c.exec.Run(ctx, c.binary, "-ver"); err != nil {
		return services.Wrap(services.ErrNotFound, "exiftool", "probe", "", err)
	}
	return nil
}

// ReadTags returns all tags of path as an opaque structured record.
func (c *Client) ReadTags(ctx context.Context, path string) (TagSet, error) {
	result, err := c.exec.Run(ctx, c.binary, "-j", path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "read tags", path, err)
	}

	var payload []TagSet
	if err := json.Unmarshal([]byte(result.Stdout), &payload); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "read tags", "decode output", err)
	}
	if len(payload) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "exiftool", "read tags", fmt.Sprintf("no records for %s", path), nil)
	}
	return payload[0], nil
}

// CopyAllTags copies every tag from src onto dst, overwriting dst in place.
func (c *Client) CopyAllTags(ctx context.Context, src, dst string) error {
	args := []string{"-TagsFromFile", src, "-all:all", "-overwrite_original", dst}
	if _, err := c.exec.Run(ctx, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "exiftool", "copy all tags", "", err)
	}
	return nil
}

// CopyDateTags copies only the DateTags subset from src onto dst,
// overwriting dst in place.
func (c *Client) CopyDateTags(ctx context.Context, src, dst string) error {
	args := make([]string, 0, len(DateTags)+4)
	args = append(args, "-TagsFromFile", src)
	args = append(args, DateTags...)
	args = append(args, "-overwrite_original", dst)
	if _, err := c.exec.Run(ctx, c.binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "exiftool", "copy date tags", "", err)
	}
	return nil
}
