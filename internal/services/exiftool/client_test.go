package exiftool

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"webpify/internal/services"
)

type fakeExecutor struct {
	calls   [][]string
	results map[string]fakeResult
}

type fakeResult struct {
	stdout string
	fail   bool
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args ...string) (services.CommandResult, error) {
	call := append([]string{binary}, args...)
	f.calls = append(f.calls, call)
	result := services.CommandResult{Binary: binary, Args: args}
	scripted, ok := f.results[args[0]]
	if ok {
		result.Stdout = scripted.stdout
		if scripted.fail {
			result.ExitCode = 1
			return result, services.Wrap(services.ErrExternalTool, "exiftool", "fake", "", errors.New("scripted failure"))
		}
	}
	return result, nil
}

func TestProbeInvokesVersionQuery(t *testing.T) {
	fake := &fakeExecutor{}
	client, err := New("exiftool", WithExecutor(fake))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.Probe(context.Background()); err != nil {
		t.Fatalf("probe: %v", err)
	}
	want := []string{"exiftool", "-ver"}
	if len(fake.calls) != 1 || !reflect.DeepEqual(fake.calls[0], want) {
		t.Fatalf("expected %v, got %v", want, fake.calls)
	}
}

func TestProbeFailureIsNotFound(t *testing.T) {
	fake := &fakeExecutor{results: map[string]fakeResult{"-ver": {fail: true}}}
	client, _ := New("exiftool", WithExecutor(fake))

	err := client.Probe(context.Background())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadTagsDecodesFirstRecord(t *testing.T) {
	fake := &fakeExecutor{results: map[string]fakeResult{
		"-j": {stdout: `[{"SourceFile":"a.jpg","Make":"Apple","CreateDate":"2023:04:01 10:00:00"}]`},
	}}
	client, _ := New("exiftool", WithExecutor(fake))

	tags, err := client.ReadTags(context.Background(), "a.jpg")
	if err != nil {
		t.Fatalf("read tags: %v", err)
	}
	if tags["Make"] != "Apple" {
		t.Fatalf("expected opaque tag passthrough, got %v", tags)
	}
}

func TestCopyAllTagsArguments(t *testing.T) {
	fake := &fakeExecutor{}
	client, _ := New("exiftool", WithExecutor(fake))

	if err := client.CopyAllTags(context.Background(), "src.heic", "out.webp"); err != nil {
		t.Fatalf("copy all tags: %v", err)
	}
	want := []string{"exiftool", "-TagsFromFile", "src.heic", "-all:all", "-overwrite_original", "out.webp"}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Fatalf("expected %v, got %v", want, fake.calls[0])
	}
}

func TestCopyDateTagsArguments(t *testing.T) {
	fake := &fakeExecutor{}
	client, _ := New("exiftool", WithExecutor(fake))

	if err := client.CopyDateTags(context.Background(), "src.jpg", "out.webp"); err != nil {
		t.Fatalf("copy date tags: %v", err)
	}
	want := []string{
		"exiftool", "-TagsFromFile", "src.jpg",
		"-CreateDate", "-ModifyDate", "-DateTimeOriginal", "-FileCreateDate", "-FileModifyDate",
		"-overwrite_original", "out.webp",
	}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Fatalf("expected %v, got %v", want, fake.calls[0])
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
