// Package slack posts generation results to a Slack incoming webhook.
package slack

import (
	"context"

	"github.com/Mavwarf/favicon/internal/httputil"
)

type payload struct {
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
}

// Send posts message to a Slack channel via incoming webhook URL.
func Send(ctx context.Context, webhookURL, message string) error {
	return httputil.PostJSON(ctx, webhookURL, payload{Text: message, Username: "favicon"}, "slack: webhook")
}
