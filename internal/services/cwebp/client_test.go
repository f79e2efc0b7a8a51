package cwebp

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"webpify/internal/services"
)

type recordingExecutor struct {
	calls [][]string
	err   error
}

func (r *recordingExecutor) Run(ctx context.Context, binary string, args ...string) (services.CommandResult, error) {
	r.calls = append(r.calls, append([]string{binary}, args...))
	return services.CommandResult{Binary: binary, Args: args}, r.err
}

func TestEncodeArguments(t *testing.T) {
	rec := &recordingExecutor{}
	client, err := New("cwebp", 80, WithExecutor(rec))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.Encode(context.Background(), "x.png", "webp_output/x.webp"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []string{"cwebp", "-q", "80", "-metadata", "all", "x.png", "-o", "webp_output/x.webp"}
	if !reflect.DeepEqual(rec.calls[0], want) {
		t.Fatalf("expected %v, got %v", want, rec.calls[0])
	}
}

func TestEncodeFailureTagged(t *testing.T) {
	rec := &recordingExecutor{err: services.Wrap(services.ErrExternalTool, "cwebp", "fake", "", errors.New("boom"))}
	client, _ := New("cwebp", 80, WithExecutor(rec))

	err := client.Encode(context.Background(), "x.png", "out.webp")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestNewRejectsBadQuality(t *testing.T) {
	if _, err := New("cwebp", 101); err == nil {
		t.Fatal("expected error for quality 101")
	}
	if _, err := New("cwebp", -1); err == nil {
		t.Fatal("expected error for negative quality")
	}
}
