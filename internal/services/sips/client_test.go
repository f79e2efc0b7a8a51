package sips

import (
	"context"
	"reflect"
	"testing"

	"webpify/internal/services"
)

type recordingExecutor struct {
	calls [][]string
}

func (r *recordingExecutor) Run(ctx context.Context, binary string, args ...string) (services.CommandResult, error) {
	r.calls = append(r.calls, append([]string{binary}, args...))
	return services.CommandResult{Binary: binary, Args: args}, nil
}

func TestDecodeJPEGArguments(t *testing.T) {
	rec := &recordingExecutor{}
	client, err := New("sips", WithExecutor(rec))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.DecodeJPEG(context.Background(), "y.HEIC", "webp_output/y_tmp.jpg"); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"sips", "-s", "format", "jpeg", "y.HEIC", "--out", "webp_output/y_tmp.jpg"}
	if !reflect.DeepEqual(rec.calls[0], want) {
		t.Fatalf("expected %v, got %v", want, rec.calls[0])
	}
}
