package present

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"

	"github.com/df07/whitted-raytracer/pkg/core"
	"github.com/df07/whitted-raytracer/pkg/renderer"
)

// fakeS3 records uploads instead of sending them
type fakeS3 struct {
	s3iface.S3API
	keys   []string
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(input.Body)
	f.keys = append(f.keys, aws.StringValue(input.Key))
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

// recordingLogger collects log lines
type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestFilePublisher_Publish(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	publisher := NewFilePublisher(dir)

	img := ToImage(renderer.NewFramebuffer(8, 4))
	location, err := publisher.Publish(context.Background(), "render", img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if location != filepath.Join(dir, "render.png") {
		t.Errorf("Unexpected location %s", location)
	}

	saved, err := imaging.Open(location)
	if err != nil {
		t.Fatalf("Failed to open saved image: %v", err)
	}
	if saved.Bounds().Dx() != 8 || saved.Bounds().Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %v", saved.Bounds())
	}
}

func TestS3Publisher_Publish(t *testing.T) {
	client := &fakeS3{}
	publisher := newS3Publisher(client, S3Config{Bucket: "renders", Prefix: "whitted"})

	img := ToImage(renderer.NewFramebuffer(4, 4))
	location, err := publisher.Publish(context.Background(), "frame", img)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if location != "s3://renders/whitted/frame.png" {
		t.Errorf("Unexpected location %s", location)
	}
	if len(client.keys) != 1 || client.keys[0] != "whitted/frame.png" {
		t.Errorf("Unexpected uploaded keys %v", client.keys)
	}
	if len(client.bodies[0]) == 0 || !strings.HasPrefix(string(client.bodies[0]), "\x89PNG") {
		t.Error("Expected PNG body")
	}
}

func TestS3Publisher_PublishError(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	publisher := newS3Publisher(client, S3Config{Bucket: "renders"})

	_, err := publisher.Publish(context.Background(), "frame", image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestS3Config_Enabled(t *testing.T) {
	if (S3Config{}).Enabled() {
		t.Error("Expected empty config to be disabled")
	}
	if !(S3Config{Bucket: "b"}).Enabled() {
		t.Error("Expected config with bucket to be enabled")
	}
}

func TestPresenter_Present(t *testing.T) {
	dir := t.TempDir()
	client := &fakeS3{}
	logger := &recordingLogger{}
	presenter := NewPresenter(4, logger,
		NewFilePublisher(dir),
		newS3Publisher(client, S3Config{Bucket: "renders"}),
	)

	fb := renderer.NewFramebuffer(16, 8)
	fb.Set(0, 0, core.NewVec3(1, 1, 1))

	locations, err := presenter.Present(context.Background(), "scene", fb)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "scene.png"),
		filepath.Join(dir, "scene_preview.png"),
		"s3://renders/scene.png",
		"s3://renders/scene_preview.png",
	}
	if len(locations) != len(expected) {
		t.Fatalf("Expected %d locations, got %v", len(expected), locations)
	}
	for i := range expected {
		if locations[i] != expected[i] {
			t.Errorf("Location %d: expected %s, got %s", i, expected[i], locations[i])
		}
	}

	for _, name := range []string{"scene.png", "scene_preview.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
	if len(logger.lines) != 4 {
		t.Errorf("Expected 4 log lines, got %d", len(logger.lines))
	}
}
