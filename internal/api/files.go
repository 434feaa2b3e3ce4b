package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/cloudvault/cloudvault-cli/internal/models"
)

// ListFiles fetches the account's file listing. A 401 comes back as
// ErrUnauthorized so callers can clear the stored session.
func (c *Client) ListFiles(ctx context.Context) (*models.FileListing, error) {
	resp, err := c.doJSON(ctx, "GET", "/files", nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == nethttp.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != nethttp.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "failed to load files")}
	}

	var listing models.FileListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode file listing: %w", err)
	}
	return &listing, nil
}

// ProgressFunc receives transfer progress. total is the full body size in
// bytes; it is always known for uploads since the multipart body is built
// before the request starts.
type ProgressFunc func(sent, total int64)

// progressReader counts bytes as the transport consumes them.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}

// Upload sends one local file as a multipart form under the field "file".
// The backend treats 200 as the only success status for uploads; the
// response body is parsed for an error string regardless of status.
func (c *Client) Upload(ctx context.Context, path string, fn ProgressFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	// The advisory size cap keeps this buffer small enough to build in
	// memory, which also gives the progress bar an exact total.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish upload form: %w", err)
	}

	total := int64(body.Len())
	req, err := nethttp.NewRequestWithContext(ctx, "POST", c.baseURL+"/upload",
		&progressReader{r: &body, total: total, fn: fn})
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.ContentLength = total

	resp, err := c.transferClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != nethttp.StatusOK {
		return &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "upload failed")}
	}
	return nil
}

// Delete removes one stored file by name.
func (c *Client) Delete(ctx context.Context, name string) error {
	resp, err := c.doJSON(ctx, "DELETE", "/delete/"+url.PathEscape(name), nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(resp.Body)
	return &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "delete failed")}
}

// ResolveDownload asks the backend for a temporary, self-authorizing URL
// for the named file. The API call never streams file bytes itself.
func (c *Client) ResolveDownload(ctx context.Context, name string) (string, error) {
	resp, err := c.doJSON(ctx, "GET", "/download/"+url.PathEscape(name), nil, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &result); err == nil && result.URL != "" {
		return result.URL, nil
	}
	return "", &Error{StatusCode: resp.StatusCode, Message: serverMessage(data, "download failed")}
}

// FetchTo streams a resolved temporary URL into w. No Authorization header
// is sent; the URL carries its own grant. total passed to fn is -1 when the
// server does not announce a content length.
func (c *Client) FetchTo(ctx context.Context, rawURL string, w io.Writer, fn ProgressFunc) error {
	req, err := nethttp.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.transferClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return &Error{StatusCode: resp.StatusCode, Message: "download failed"}
	}

	src := io.Reader(resp.Body)
	if fn != nil {
		src = &progressReader{r: resp.Body, total: resp.ContentLength, fn: fn}
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("download interrupted: %w", err)
	}
	return nil
}
