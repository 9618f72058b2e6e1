package storage_test

import (
	"io"
	"strings"
	"testing"

	"edupath/pkg/storage"
)

func TestFSStorePutAndOpen(t *testing.T) {
	s, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := s.Put("photo_1.jpg", strings.NewReader("first")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put("photo_1.jpg", strings.NewReader("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	rc, err := s.Open("photo_1.jpg")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "second" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	s, _ := storage.NewFSStore(t.TempDir())
	for _, key := range []string{"", "../escape.jpg", "a/../../b"} {
		if _, err := s.Put(key, strings.NewReader("x")); err == nil {
			t.Fatalf("expected %q to be rejected", key)
		}
	}
}
