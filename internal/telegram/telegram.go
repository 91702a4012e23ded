// Package telegram sends generation results through the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Mavwarf/favicon/internal/httputil"
)

// apiBase is replaced in tests.
var apiBase = "https://api.telegram.org"

// Send posts message to a Telegram chat via the Bot API.
func Send(ctx context.Context, token, chatID, message string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", apiBase, token)
	return httputil.PostForm(ctx, endpoint, url.Values{
		"chat_id":                  {chatID},
		"text":                     {message},
		"disable_web_page_preview": {"true"},
	}, "telegram: API")
}
