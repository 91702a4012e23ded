package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a shared HTTP client with a 30-second timeout, used by hook
// senders to avoid indefinite hangs on unresponsive servers.
var Client = &http.Client{Timeout: 30 * time.Second}

// PostJSON marshals v and POSTs it to endpoint. prefix names the target
// in errors (e.g. "slack").
func PostJSON(ctx context.Context, endpoint string, v any, prefix string) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", prefix, err)
	}
	return post(ctx, endpoint, "application/json", bytes.NewReader(body), prefix)
}

// PostForm POSTs url-encoded form values to endpoint.
func PostForm(ctx context.Context, endpoint string, values url.Values, prefix string) error {
	return post(ctx, endpoint, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()), prefix)
}

func post(ctx context.Context, endpoint, contentType string, body io.Reader, prefix string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", prefix, err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: post: %w", prefix, err)
	}
	defer resp.Body.Close()
	return CheckStatus(resp, prefix)
}

// CheckStatus returns an error if the response status code is not 2xx.
// The prefix is included in the error message for context (e.g. "webhook").
func CheckStatus(resp *http.Response, prefix string) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %d: %s", prefix, resp.StatusCode, ReadSnippet(resp.Body))
	}
	return nil
}

// ReadSnippet reads up to 200 bytes from r for inclusion in error messages.
func ReadSnippet(r io.Reader) string {
	buf := make([]byte, 200)
	n, _ := io.ReadFull(r, buf)
	if n == 0 {
		return "(empty body)"
	}
	s := string(buf[:n])
	if n == 200 {
		s += "..."
	}
	return s
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON decodes a request body of at most 1 MiB into v. An empty
// body leaves v unchanged.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
