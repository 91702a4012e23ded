// Package hooks runs the configured completion hooks after a generation,
// successful or not.
package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/cooldown"
	"github.com/Mavwarf/favicon/internal/discord"
	"github.com/Mavwarf/favicon/internal/eventlog"
	"github.com/Mavwarf/favicon/internal/mqtt"
	"github.com/Mavwarf/favicon/internal/plugin"
	"github.com/Mavwarf/favicon/internal/slack"
	"github.com/Mavwarf/favicon/internal/telegram"
	"github.com/Mavwarf/favicon/internal/tmpl"
	"github.com/Mavwarf/favicon/internal/toast"
	"github.com/Mavwarf/favicon/internal/webhook"
)

// showToast is replaced in tests.
var showToast = toast.Show

// VarsFor builds template variables from a history entry.
func VarsFor(e eventlog.Entry) tmpl.Vars {
	return tmpl.Vars{
		Mode:   e.Mode,
		Output: e.OutputDir,
		Source: e.Source,
		Count:  e.Files,
		Bytes:  e.Bytes,
		Status: e.Status,
		Error:  e.Error,
	}
}

// Enabled reports whether any hook is configured.
func Enabled(h config.Hooks) bool {
	return h.MQTT != nil || h.Webhook != nil || h.Slack != nil || h.Discord != nil ||
		h.Telegram != nil || h.Command != nil || h.Desktop
}

// OnCooldown reports whether hooks for e's output directory fired within
// h.CooldownSeconds.
func OnCooldown(h config.Hooks, e eventlog.Entry) bool {
	return cooldown.Active(e.OutputDir, h.CooldownSeconds)
}

// Run fires every configured hook in parallel and waits for all of them.
// The first error, if any, is returned; the others are still attempted.
func Run(ctx context.Context, h config.Hooks, e eventlog.Entry) error {
	vars := VarsFor(e)

	var jobs []func() error
	if m := h.MQTT; m != nil {
		jobs = append(jobs, func() error {
			return publishMQTT(m, vars)
		})
	}
	if w := h.Webhook; w != nil {
		jobs = append(jobs, func() error {
			return sendWebhook(ctx, w, vars, e)
		})
	}
	if c := h.Slack; c != nil {
		jobs = append(jobs, func() error {
			return wrap("slack hook", slack.Send(ctx, c.Webhook, tmpl.Expand(message(c.Message, vars), vars)))
		})
	}
	if c := h.Discord; c != nil {
		jobs = append(jobs, func() error {
			return wrap("discord hook", discord.Send(ctx, c.Webhook, tmpl.Expand(message(c.Message, vars), vars)))
		})
	}
	if tg := h.Telegram; tg != nil {
		jobs = append(jobs, func() error {
			return wrap("telegram hook", telegram.Send(ctx, tg.Token, tg.ChatID, tmpl.Expand(message(tg.Message, vars), vars)))
		})
	}
	if c := h.Command; c != nil {
		jobs = append(jobs, func() error {
			return wrap("command hook", plugin.Run(ctx, c.Command, c.Timeout, vars))
		})
	}
	if h.Desktop {
		jobs = append(jobs, func() error {
			return wrap("desktop hook", showToast("favicon", tmpl.Expand(tmpl.DefaultFor(vars.Status), vars)))
		})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	for _, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := job(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if h.CooldownSeconds > 0 {
		cooldown.Record(e.OutputDir)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func wrap(prefix string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	return nil
}

func message(custom string, vars tmpl.Vars) string {
	if custom == "" {
		return tmpl.DefaultFor(vars.Status)
	}
	return custom
}

func publishMQTT(m *config.MQTTHook, vars tmpl.Vars) error {
	target := mqtt.Target{
		Broker:   m.Broker,
		ClientID: m.ClientID,
		Topic:    m.Topic,
		QoS:      byte(m.QoS),
		Retain:   m.Retain,
		Username: m.Username,
		Password: m.Password,
	}
	if err := mqtt.Publish(target, tmpl.Expand(message(m.Message, vars), vars)); err != nil {
		return fmt.Errorf("mqtt hook: %w", err)
	}
	return nil
}

// webhookPayload is sent when the webhook has no custom message.
type webhookPayload struct {
	Message string         `json:"message"`
	Run     eventlog.Entry `json:"run"`
}

func sendWebhook(ctx context.Context, w *config.WebhookHook, vars tmpl.Vars, e eventlog.Entry) error {
	var err error
	if w.Message != "" {
		err = webhook.Send(ctx, w.URL, tmpl.Expand(w.Message, vars), "", w.Headers)
	} else {
		body, jerr := json.Marshal(webhookPayload{Message: tmpl.Expand(tmpl.DefaultFor(vars.Status), vars), Run: e})
		if jerr != nil {
			return fmt.Errorf("webhook hook: %w", jerr)
		}
		err = webhook.Send(ctx, w.URL, string(body), "application/json", w.Headers)
	}
	if err != nil {
		return fmt.Errorf("webhook hook: %w", err)
	}
	return nil
}
