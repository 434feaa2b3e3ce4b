package dashboard

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudvault/cloudvault-cli/internal/models"
)

type fakeLister struct {
	listing *models.FileListing
	err     error
}

func (f *fakeLister) ListFiles(ctx context.Context) (*models.FileListing, error) {
	return f.listing, f.err
}

func TestRefreshReplacesCacheWholesale(t *testing.T) {
	lister := &fakeLister{listing: &models.FileListing{
		Files: []models.FileRecord{{Name: "a.pdf"}, {Name: "b.txt"}},
	}}
	ctrl := New(lister, &bytes.Buffer{})

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(ctrl.Files()) != 2 {
		t.Fatalf("cache = %d files, want 2", len(ctrl.Files()))
	}

	// The next refresh replaces everything; nothing from the old cache
	// survives.
	lister.listing = &models.FileListing{Files: []models.FileRecord{{Name: "c.zip"}}}
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	files := ctrl.Files()
	if len(files) != 1 || files[0].Name != "c.zip" {
		t.Errorf("cache = %+v, want only c.zip", files)
	}
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	lister := &fakeLister{listing: &models.FileListing{
		Files: []models.FileRecord{{Name: "a.pdf"}},
	}}
	ctrl := New(lister, &bytes.Buffer{})
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	lister.err = errors.New("boom")
	if err := ctrl.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() should propagate the error")
	}
	if len(ctrl.Files()) != 1 {
		t.Error("a failed refresh must leave the cache untouched")
	}
}

func TestRenderUsesFullCacheForStorageBar(t *testing.T) {
	lister := &fakeLister{listing: &models.FileListing{
		Files: []models.FileRecord{{Name: "a.pdf", SizeKB: 10}, {Name: "b.txt", SizeKB: 10}},
	}}
	var buf bytes.Buffer
	ctrl := New(lister, &buf)
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	// A filtered view renders one card, but the bar still counts both.
	ctrl.Render(Search(ctrl.Files(), "a.pdf"))
	out := buf.String()
	if !strings.Contains(out, "2 files") {
		t.Errorf("storage line should reflect the full cache, got %q", out)
	}
	if strings.Contains(out, "b.txt") {
		t.Errorf("filtered view should not render b.txt, got %q", out)
	}
}
