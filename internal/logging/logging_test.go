package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNewFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w, err := NewFileWriter(dir)
	if err != nil {
		t.Fatalf("Expected writable directory, got %v", err)
	}
	defer w.Close()

	if w.Filename != filepath.Join(dir, FileName) {
		t.Errorf("Unexpected log file %s", w.Filename)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Errorf("Expected the write probe to be removed")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	ctx := WithRequestID(context.Background(), "abc-123")
	FromContext(ctx).Info().Msg("hello")

	if !strings.Contains(buf.String(), `"request_id":"abc-123"`) {
		t.Errorf("Expected request id in %q", buf.String())
	}

	buf.Reset()
	FromContext(context.Background()).Info().Msg("plain")
	if strings.Contains(buf.String(), "request_id") || !strings.Contains(buf.String(), "plain") {
		t.Errorf("Expected the global logger without request id, got %q", buf.String())
	}
}
