package webhook

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/Mavwarf/favicon/internal/httputil"
)

// Send posts body to url. contentType defaults to text/plain; custom
// headers are applied afterwards, so callers can override it. Header
// values are expanded with os.ExpandEnv to support $VAR secrets.
func Send(ctx context.Context, url, body, contentType string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: new request: %w", err)
	}
	if contentType == "" {
		contentType = "text/plain"
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, os.ExpandEnv(v))
	}

	resp, err := httputil.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "webhook")
}
