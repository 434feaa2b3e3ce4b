// Package dashboard owns the client-side view of the user's stored files:
// the cached listing, search and sort over it, and text rendering of the
// file cards and the storage usage bar.
package dashboard

import (
	"context"
	"io"

	"github.com/cloudvault/cloudvault-cli/internal/models"
)

// QuotaMB is the account storage quota. The bar renders usage against it.
const QuotaMB = 200.0

// Lister fetches the account's file listing.
type Lister interface {
	ListFiles(ctx context.Context) (*models.FileListing, error)
}

// Controller holds the cached file list between renders. The cache is
// replaced wholesale on every refresh, never patched, so search and sort
// always see exactly what the backend last reported.
type Controller struct {
	api     Lister
	out     io.Writer
	files   []models.FileRecord
	storage *models.StorageSummary
}

// New creates a controller rendering to out.
func New(api Lister, out io.Writer) *Controller {
	return &Controller{api: api, out: out}
}

// Refresh fetches the listing and replaces the cache. On failure the cache
// is left untouched; api.ErrUnauthorized passes through for the caller to
// clear the session.
func (c *Controller) Refresh(ctx context.Context) error {
	listing, err := c.api.ListFiles(ctx)
	if err != nil {
		return err
	}
	c.files = listing.Files
	c.storage = listing.Storage
	return nil
}

// Files returns the cached listing.
func (c *Controller) Files() []models.FileRecord {
	return c.files
}

// Render writes the file cards and the storage bar for the given view,
// which is usually the cache or a searched/sorted derivation of it. The
// storage bar always reflects the full cache, matching the backend's
// account-wide numbers even when the card view is filtered.
func (c *Controller) Render(view []models.FileRecord) {
	RenderFiles(c.out, view)
	RenderStorageBar(c.out, c.storage, c.files)
}

// RenderAll renders the unfiltered cache.
func (c *Controller) RenderAll() {
	c.Render(c.files)
}
