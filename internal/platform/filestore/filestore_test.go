package filestore

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStoreAndOpen(t *testing.T) {
	fs := New(t.TempDir())

	ref, err := fs.Store(context.Background(), "report.pdf", []byte("artifact"))
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if !strings.HasSuffix(ref, "report.pdf") {
		t.Fatalf("reference should keep the original name, got %s", ref)
	}

	data, err := fs.Open(context.Background(), ref)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !bytes.Equal(data, []byte("artifact")) {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestStoreSanitizesNames(t *testing.T) {
	fs := New(t.TempDir())

	ref, err := fs.Store(context.Background(), "../../etc/passwd", []byte("x"))
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if strings.Contains(ref, "..") || strings.Contains(ref, "/") {
		t.Fatalf("reference must not contain path elements, got %s", ref)
	}
}
