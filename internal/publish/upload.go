// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/sheetpub/internal/httputil"
)

// upload PUTs the JSON artifact to the configured URL. Any non-2xx answer
// after retries is an error carrying the start of the response body.
func (p *Publisher) upload(ctx context.Context, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.cfg.UploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.UploadToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.UploadToken)
	}

	resp, err := httputil.DoWithRetry(ctx, p.client, req, p.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("uploading to %s: %w", p.cfg.UploadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("uploading to %s: %s: %s", p.cfg.UploadURL, resp.Status, bytes.TrimSpace(snippet))
	}
	p.logger.Debugf("upload accepted with %s", resp.Status)
	return nil
}
