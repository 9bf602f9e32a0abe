package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

var (
	pngData  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	jpegData = []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0}
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "160301001.png"), pngData)
	writeFile(t, filepath.Join(dir, "Blue-Eyes-White-Dragon.jpg"), jpegData)
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("not an image"))
	writeFile(t, filepath.Join(dir, "nested", "Dark-Magician.jpg"), jpegData)

	idx, err := BuildIndex(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	if len(idx) != 3 {
		t.Fatalf("index size = %d, want 3: %v", len(idx), idx)
	}
	for _, key := range []string{"160301001", "Blue-Eyes-White-Dragon", "Dark-Magician"} {
		if _, ok := idx.Lookup(key); !ok {
			t.Errorf("key %q missing", key)
		}
	}
	if _, ok := idx.Lookup("notes"); ok {
		t.Error("non-image file indexed")
	}
}

func TestBuildIndexDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Card.jpg"), jpegData)
	writeFile(t, filepath.Join(dir, "Card.png"), pngData)

	idx, err := BuildIndex(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	path, ok := idx.Lookup("Card")
	if !ok {
		t.Fatal("key missing")
	}
	if filepath.Ext(path) != ".jpg" {
		t.Errorf("naturally-first file must win, got %s", path)
	}
}

func TestBuildIndexMissingDir(t *testing.T) {
	if _, err := BuildIndex(filepath.Join(t.TempDir(), "nope"), zaptest.NewLogger(t)); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/art/900001.jpg":
			w.Write(pngData) // extension lies, content decides
		case "/art/900002.jpg":
			w.Write([]byte("<html>not found page</html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "900003.jpg"), jpegData)

	f := NewFetcher(dir, []string{srv.URL + "/art/%s.jpg"}, zaptest.NewLogger(t))
	stored, err := f.Fetch(context.Background(), []string{"900001", "900002", "900003", ""})
	if stored != 1 {
		t.Fatalf("stored = %d, want 1", stored)
	}
	if err == nil {
		t.Fatal("expected accumulated error for the non-image response")
	}

	// sniffed as png despite the .jpg URL
	if _, statErr := os.Stat(filepath.Join(dir, "900001.png")); statErr != nil {
		t.Errorf("downloaded art missing: %v", statErr)
	}
	// present file is left alone
	if data, readErr := os.ReadFile(filepath.Join(dir, "900003.jpg")); readErr != nil || string(data) != string(jpegData) {
		t.Error("existing art was touched")
	}
}
