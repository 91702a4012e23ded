// Package discord posts generation results to a Discord channel webhook.
package discord

import (
	"context"

	"github.com/Mavwarf/favicon/internal/httputil"
)

// Discord rejects message content longer than this.
const maxContent = 2000

type payload struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

// Send posts message to a Discord channel via webhook URL. Messages over
// the Discord limit are truncated.
func Send(ctx context.Context, webhookURL, message string) error {
	if r := []rune(message); len(r) > maxContent {
		message = string(r[:maxContent-1]) + "…"
	}
	return httputil.PostJSON(ctx, webhookURL, payload{Content: message, Username: "favicon"}, "discord: webhook")
}
