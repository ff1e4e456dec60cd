package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/promanager/promanager/internal/model"
)

// ListFiles fetches the files shared on a project.
func (c *Client) ListFiles(ctx context.Context, projetID int64) ([]model.File, error) {
	var payloads []filePayload
	path := fmt.Sprintf("/fichiers/?projet=%d", projetID)
	if err := c.Get(ctx, path, &payloads); err != nil {
		return nil, fmt.Errorf("fetching files for project %d: %w", projetID, err)
	}

	files := make([]model.File, 0, len(payloads))
	for _, p := range payloads {
		files = append(files, p.toModel())
	}
	return files, nil
}

// UploadFile shares a local file on a project. The backend stores the
// binary and returns the created record.
func (c *Client) UploadFile(ctx context.Context, projetID int64, path string) (*model.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("projet", fmt.Sprintf("%d", projetID)); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	part, err := w.CreateFormFile("fichier", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	var payload filePayload
	if err := c.doRaw(ctx, http.MethodPost, "/fichiers/", w.FormDataContentType(), &buf, &payload); err != nil {
		return nil, fmt.Errorf("uploading %s: %w", filepath.Base(path), err)
	}
	file := payload.toModel()
	return &file, nil
}

// DownloadFile fetches a file's binary content into destDir, named
// after the shared file. It returns the path written.
func (c *Client) DownloadFile(ctx context.Context, file model.File, destDir string) (string, error) {
	url := file.URL
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = strings.TrimSuffix(c.baseURL, "/api") + "/" + strings.TrimLeft(url, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", file.Nom, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", &AuthError{Message: "jeton invalide ou expiré"}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, file.Nom)
	}

	dest := filepath.Join(destDir, filepath.Base(file.Nom))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

// DeleteFile removes a shared file's record; the stored binary is
// cleaned up server-side.
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	if err := c.Delete(ctx, fmt.Sprintf("/fichiers/%d/", id)); err != nil {
		return fmt.Errorf("deleting file %d: %w", id, err)
	}
	return nil
}
